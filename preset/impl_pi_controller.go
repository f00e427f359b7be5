package preset

import (
	"github.com/arolan/ssflow/block"
	"github.com/arolan/ssflow/sim"
)

// buildPIController wires a setpoint/feedback error into parallel
// proportional and integral branches, summed into Scope("out"):
//
//	error    = setpoint - feedback
//	pTerm    = kp * error
//	iTerm    = integral(ki * error)
//	out      = pTerm + iTerm
//
// setpoint and feedback are held constant here; a closed loop (feedback
// driven from the controller's own output through a process model) is left
// to the caller by wiring further blocks with AddBlock/AddConnection.
func buildPIController(dt float64, cfg config) (*sim.Simulation, error) {
	setpoint := block.NewConstant("setpoint", "setpoint", block.Literal(cfg.setpoint))
	feedback := block.NewConstant("feedback", "feedback", block.Literal(cfg.feedback))
	negFeedback := block.NewInverter("neg_feedback", "neg_feedback")
	errSum := block.NewAdder("error", "error")
	pTerm := block.NewAmplifier("p_term", "p_term", block.Literal(cfg.kp))
	kiAmp := block.NewAmplifier("ki_gain", "ki_gain", block.Literal(cfg.ki))
	iTerm := block.NewIntegrator("i_term", "i_term", block.Literal(cfg.initial))
	outSum := block.NewAdder("output", "output")
	scope := block.NewScope("scope", "out")

	conns := []block.Connection{
		{Target: negFeedback, TargetInput: "input", Source: feedback},
		{Target: errSum, TargetInput: "in1", Source: setpoint},
		{Target: errSum, TargetInput: "in2", Source: negFeedback},
		{Target: pTerm, TargetInput: "input", Source: errSum},
		{Target: kiAmp, TargetInput: "input", Source: errSum},
		{Target: iTerm, TargetInput: "input", Source: kiAmp},
		{Target: outSum, TargetInput: "in1", Source: pTerm},
		{Target: outSum, TargetInput: "in2", Source: iTerm},
		{Target: scope, TargetInput: "input", Source: outSum},
	}

	blocks := []*block.Block{setpoint, feedback, negFeedback, errSum, pTerm, kiAmp, iTerm, outSum, scope}

	return sim.New(blocks, conns, dt, 0, nil, nil)
}

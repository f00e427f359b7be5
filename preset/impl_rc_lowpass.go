package preset

import (
	"fmt"

	"github.com/arolan/ssflow/block"
	"github.com/arolan/ssflow/expr"
	"github.com/arolan/ssflow/sim"
)

// buildRCLowPass wires Generator(inputExpr) -> ODE(dx/dt = (y-x)/tau) ->
// Scope("out"): a first-order low-pass filter with time constant tau,
// driven by an arbitrary input signal (default a unit step).
func buildRCLowPass(dt float64, cfg config) (*sim.Simulation, error) {
	input, err := expr.Parse(cfg.inputExpr)
	if err != nil {
		return nil, fmt.Errorf("preset: RCLowPass: input expression: %w", err)
	}

	f, err := expr.Parse(fmt.Sprintf("(y-x)/%g", cfg.timeConstant))
	if err != nil {
		return nil, fmt.Errorf("preset: RCLowPass: derivative expression: %w", err)
	}

	gen := block.NewGenerator("u", "u", input)
	ode := block.NewODE("rc", "rc", block.Literal(cfg.initial), f, nil)
	scope := block.NewScope("scope", "out")

	conns := []block.Connection{
		{Target: ode, TargetInput: "input", Source: gen},
		{Target: scope, TargetInput: "input", Source: ode},
	}

	return sim.New([]*block.Block{gen, ode, scope}, conns, dt, 0, nil, nil)
}


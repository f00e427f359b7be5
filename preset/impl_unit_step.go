package preset

import (
	"github.com/arolan/ssflow/block"
	"github.com/arolan/ssflow/sim"
)

// buildUnitStepIntegrator wires Constant(1) -> Integrator(initial) ->
// Scope("out"): scenario S2.
func buildUnitStepIntegrator(dt float64, cfg config) (*sim.Simulation, error) {
	c := block.NewConstant("c", "c", block.Literal(1))
	integ := block.NewIntegrator("i", "i", block.Literal(cfg.initial))
	scope := block.NewScope("s", "out")

	conns := []block.Connection{
		{Target: integ, TargetInput: "input", Source: c},
		{Target: scope, TargetInput: "input", Source: integ},
	}

	return sim.New([]*block.Block{c, integ, scope}, conns, dt, 0, nil, nil)
}

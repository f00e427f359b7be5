package preset

import (
	"fmt"

	"github.com/arolan/ssflow/sim"
)

// Build resolves opts into a config and assembles kind's diagram at step
// size dt, returning a simulation ready for Update/Run. Every diagram
// surfaces its result on a Scope labeled "out".
func Build(kind Kind, dt float64, opts ...Option) (*sim.Simulation, error) {
	cfg := newConfig(opts...)

	switch kind {
	case UnitStepIntegrator:
		return buildUnitStepIntegrator(dt, cfg)
	case PIController:
		return buildPIController(dt, cfg)
	case RCLowPass:
		return buildRCLowPass(dt, cfg)
	default:
		return nil, fmt.Errorf("preset: unknown kind %d", kind)
	}
}

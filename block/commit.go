package block

import "fmt"

// Commit makes a memory block's scratch value visible by copying it into
// Output and advancing its input/state history (spec §4.4). For every
// other Kind, Commit is a no-op: their Output was already written
// directly by Compute.
func (b *Block) Commit() error {
	switch b.Kind {
	case KindIntegrator, KindDifferentiator:
		in, ok := b.inputs["input"]
		if !ok || in == nil {
			return fmt.Errorf("%w: block %q (id=%s) has no %q input connected", ErrMissingInput, b.Label, b.ID, "input")
		}
		b.output = b.tempOutput
		b.prevInput = in.output
		b.hasPrev = true

		return nil

	case KindODE:
		in, ok := b.inputs["input"]
		if !ok || in == nil {
			return fmt.Errorf("%w: block %q (id=%s) has no %q input connected", ErrMissingInput, b.Label, b.ID, "input")
		}

		b.prevState = b.state
		b.state = b.tempState
		b.prevInput = in.output
		b.hasPrev = true

		if b.odeG == nil {
			b.output = b.state
		} else {
			v, err := b.odeG.Eval(map[string]float64{"x": b.state, "y": in.output})
			if err != nil {
				return fmt.Errorf("block %q (id=%s): g: %w", b.Label, b.ID, err)
			}
			b.output = v
		}

		return nil

	case KindSubsystem:
		for _, inner := range b.innerBlocks {
			if err := inner.Commit(); err != nil {
				return fmt.Errorf("subsystem %q (id=%s): %w", b.Label, b.ID, err)
			}
		}
		if n := len(b.innerBlocks); n > 0 {
			b.output = b.innerBlocks[n-1].output
		}

		return nil

	default:
		// Combinational blocks already wrote Output in Compute.
		return nil
	}
}

package block

import "fmt"

// requireInput returns the named input block, or a wrapped
// ErrMissingInput naming this block's label/ID (spec §7 "Usage" error
// category).
func (b *Block) requireInput(name string) (*Block, error) {
	in, ok := b.inputs[name]
	if !ok || in == nil {
		return nil, fmt.Errorf("%w: block %q (id=%s) has no %q input connected", ErrMissingInput, b.Label, b.ID, name)
	}

	return in, nil
}

// Compute advances the block's instantaneous (combinational) behavior, or
// for memory blocks (Integrator, Differentiator, ODE) writes a scratch
// value while leaving Output unchanged (spec §4.3/§4.4). The fixed-point
// stepper in package sim calls Compute once per block per iteration, in
// topological order, possibly several times per tick.
func (b *Block) Compute(t, dt float64) error {
	switch b.Kind {
	case KindConstant:
		// emits its resolved value regardless of time; nothing to do.
		return nil

	case KindGenerator:
		v, err := b.fn.Eval(map[string]float64{"t": t})
		if err != nil {
			return fmt.Errorf("block %q (id=%s): %w", b.Label, b.ID, err)
		}
		b.output = v

		return nil

	case KindAmplifier:
		in, err := b.requireInput("input")
		if err != nil {
			return err
		}
		b.output = b.scalar * in.output

		return nil

	case KindInverter:
		in, err := b.requireInput("input")
		if err != nil {
			return err
		}
		b.output = -in.output

		return nil

	case KindAdder:
		if len(b.inputOrder) == 0 {
			return fmt.Errorf("%w: block %q (id=%s)", ErrNoInputs, b.Label, b.ID)
		}
		sum := 0.0
		for _, name := range b.inputOrder {
			sum += b.inputs[name].output
		}
		b.output = sum

		return nil

	case KindMultiplier:
		if len(b.inputOrder) == 0 {
			return fmt.Errorf("%w: block %q (id=%s)", ErrNoInputs, b.Label, b.ID)
		}
		prod := 1.0
		for _, name := range b.inputOrder {
			prod *= b.inputs[name].output
		}
		b.output = prod

		return nil

	case KindComparator:
		in, err := b.requireInput("input")
		if err != nil {
			return err
		}
		if in.output >= b.scalar {
			b.output = 1
		} else {
			b.output = 0
		}

		return nil

	case KindFunction:
		in, err := b.requireInput("input")
		if err != nil {
			return err
		}
		v, err := b.fn.Eval(map[string]float64{"x": in.output})
		if err != nil {
			return fmt.Errorf("block %q (id=%s): %w", b.Label, b.ID, err)
		}
		b.output = v

		return nil

	case KindIntegrator:
		in, err := b.requireInput("input")
		if err != nil {
			return err
		}
		if !b.hasPrev {
			b.tempOutput = b.output + in.output*dt // forward Euler
		} else {
			b.tempOutput = b.output + (in.output+b.prevInput)*dt/2 // trapezoidal
		}

		return nil

	case KindDifferentiator:
		in, err := b.requireInput("input")
		if err != nil {
			return err
		}
		if b.hasPrev {
			b.tempOutput = (in.output - b.prevInput) / dt
		}
		// else: leave tempOutput at its zero-initialized value.

		return nil

	case KindODE:
		in, err := b.requireInput("input")
		if err != nil {
			return err
		}
		env := map[string]float64{"x": b.state, "y": in.output}
		fNow, err := b.odeF.Eval(env)
		if err != nil {
			return fmt.Errorf("block %q (id=%s): f: %w", b.Label, b.ID, err)
		}
		if !b.hasPrev {
			b.tempState = b.state + dt*fNow
		} else {
			prevEnv := map[string]float64{"x": b.prevState, "y": b.prevInput}
			fPrev, err := b.odeF.Eval(prevEnv)
			if err != nil {
				return fmt.Errorf("block %q (id=%s): f: %w", b.Label, b.ID, err)
			}
			b.tempState = b.state + (dt/2)*(fNow+fPrev)
		}

		return nil

	case KindSwitch:
		in, err := b.requireInput("input")
		if err != nil {
			return err
		}
		ctrl, err := b.requireInput("control")
		if err != nil {
			return err
		}
		if ctrl.output > 0 {
			b.output = in.output
		} else {
			b.output = 0
		}

		return nil

	case KindScope:
		in, err := b.requireInput("input")
		if err != nil {
			return err
		}
		b.output = in.output

		return nil

	case KindSubsystem:
		for _, inner := range b.innerBlocks {
			if err := inner.Compute(t, dt); err != nil {
				return fmt.Errorf("subsystem %q (id=%s): %w", b.Label, b.ID, err)
			}
		}

		return nil

	default:
		return fmt.Errorf("%w: %v", ErrUnknownKind, b.Kind)
	}
}

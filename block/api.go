package block

import "github.com/arolan/ssflow/expr"

// ScalarArg is a block constructor argument that is either a literal
// value or a late-bound Parameter reference (spec §3 "Parameter"). Most
// constructors below take a ScalarArg for the one numeric argument that
// the text format (package format) may substitute a PARAMETER into
// (Amplifier's gain, Comparator's threshold, Constant's value,
// Integrator's/ODE's initial value).
type ScalarArg struct {
	literal float64
	param   *Parameter
}

// Literal wraps a plain numeric constructor argument.
func Literal(v float64) ScalarArg { return ScalarArg{literal: v} }

// FromParameter wraps a constructor argument that must be resolved from p
// before the block is used.
func FromParameter(p *Parameter) ScalarArg { return ScalarArg{param: p} }

// Resolve returns the argument's concrete value, resolving the backing
// Parameter if one was given.
func (s ScalarArg) Resolve() (float64, error) {
	if s.param != nil {
		return s.param.Value()
	}

	return s.literal, nil
}

func newBlock(kind Kind, id, label string) *Block {
	return &Block{Kind: kind, ID: id, Label: label}
}

// NewConstant builds a Constant(v) block: emits v regardless of time.
func NewConstant(id, label string, value ScalarArg) *Block {
	b := newBlock(KindConstant, id, label)
	b.scalarArg = value

	return b
}

// NewGenerator builds a Generator(f(t)) block: emits f evaluated at the
// current simulation time, f's sole variable being "t".
func NewGenerator(id, label string, f *expr.Expr) *Block {
	b := newBlock(KindGenerator, id, label)
	b.fn = f

	return b
}

// NewAmplifier builds an Amplifier(k) block: emits k * input.
func NewAmplifier(id, label string, gain ScalarArg) *Block {
	b := newBlock(KindAmplifier, id, label)
	b.scalarArg = gain

	return b
}

// NewInverter builds an Inverter block: emits -input.
func NewInverter(id, label string) *Block {
	return newBlock(KindInverter, id, label)
}

// NewAdder builds an Adder block: emits the sum of all connected inputs
// (any input count >= 1).
func NewAdder(id, label string) *Block {
	return newBlock(KindAdder, id, label)
}

// NewMultiplier builds a Multiplier block: emits the product of all
// connected inputs (any input count >= 1).
func NewMultiplier(id, label string) *Block {
	return newBlock(KindMultiplier, id, label)
}

// NewComparator builds a Comparator(theta) block: emits 1 if input >=
// theta, else 0.
func NewComparator(id, label string, threshold ScalarArg) *Block {
	b := newBlock(KindComparator, id, label)
	b.scalarArg = threshold

	return b
}

// NewFunction builds a Function(g) block: emits g(input), g's sole
// variable being "x".
func NewFunction(id, label string, g *expr.Expr) *Block {
	b := newBlock(KindFunction, id, label)
	b.fn = g

	return b
}

// NewIntegrator builds an Integrator(x0) block: trapezoidal integration of
// its input from the second committed step onward, forward Euler on the
// first.
func NewIntegrator(id, label string, initial ScalarArg) *Block {
	b := newBlock(KindIntegrator, id, label)
	b.scalarArg = initial

	return b
}

// NewDifferentiator builds a Differentiator block: emits
// (input-prevInput)/dt, zero until a previous sample exists.
func NewDifferentiator(id, label string) *Block {
	return newBlock(KindDifferentiator, id, label)
}

// NewODE builds an ODE(x0, f, g) block. f computes the state derivative
// ẋ = f(x, in) and g computes the output g(x, in); both are evaluated
// with env {"x": state, "y": input} per spec §4.5. A nil g means the
// output is simply the state x (identity transform).
func NewODE(id, label string, initial ScalarArg, f, g *expr.Expr) *Block {
	b := newBlock(KindODE, id, label)
	b.scalarArg = initial
	b.odeF = f
	b.odeG = g

	return b
}

// NewSwitch builds a Switch block: emits input if control > 0, else 0.
func NewSwitch(id, label string) *Block {
	return newBlock(KindSwitch, id, label)
}

// NewScope builds a Scope(label) block: pass-through, marking a signal to
// be surfaced by label via Simulation.GetOutputs.
func NewScope(id, label string) *Block {
	return newBlock(KindScope, id, label)
}

// NewSubsystem builds a composite block from inner blocks/connections
// already wired and topologically sorted by the caller (package format
// does both when loading a Subsystem file). The first inner block is the
// input port; the last is
// the output port (spec §4.8).
func NewSubsystem(id, label string, innerBlocks []*Block, innerConnections []Connection) *Block {
	b := newBlock(KindSubsystem, id, label)
	b.innerBlocks = innerBlocks
	b.innerConnections = innerConnections

	return b
}

// Scalar returns the block's resolved scalar argument (Amplifier's gain,
// Comparator's threshold, Constant's value, Integrator's/ODE's initial
// value), for serialization (package format). It is meaningless before
// ResolveParameters has run.
func (b *Block) Scalar() float64 { return b.scalar }

// FuncString renders a Generator's or Function's expression, for
// serialization (package format).
func (b *Block) FuncString() string { return b.fn.String() }

// ODEFString and ODEGString render an ODE block's state-derivative and
// output-transform expressions, for serialization (package format).
// ODEGString returns "" for an ODE constructed with a nil g (identity
// output transform).
func (b *Block) ODEFString() string { return b.odeF.String() }
func (b *Block) ODEGString() string { return b.odeG.String() }

// InnerBlocks returns the subsystem's sorted interior blocks, or nil for
// any non-Subsystem Kind.
func (b *Block) InnerBlocks() []*Block { return b.innerBlocks }

// InnerConnections returns the subsystem's interior connections, or nil
// for any non-Subsystem Kind.
func (b *Block) InnerConnections() []Connection { return b.innerConnections }

// ResolveParameters pulls the final literal value out of any ScalarArg
// this block holds, failing if the backing Parameter was never resolved.
// sim.New calls this once, after running any pre-run Equations, for every
// block in the simulation (spec §4.6/§4.7: "resolve each block's
// parameter references to literals").
func (b *Block) ResolveParameters() error {
	switch b.Kind {
	case KindConstant, KindAmplifier, KindComparator, KindIntegrator, KindODE:
		v, err := b.scalarArg.Resolve()
		if err != nil {
			return err
		}
		b.scalar = v

		if b.Kind == KindConstant {
			b.output = v
		}
		if b.Kind == KindIntegrator || b.Kind == KindODE {
			b.output = v
			b.tempOutput = v
			b.state = v
			b.tempState = v
		}

	case KindSubsystem:
		for _, inner := range b.innerBlocks {
			if err := inner.ResolveParameters(); err != nil {
				return err
			}
		}
	}

	return nil
}

package block

import (
	"errors"

	"github.com/arolan/ssflow/expr"
)

// Sentinel errors, wrapped with %w and the offending block's label/ID at
// the point of failure.
var (
	// ErrMissingInput indicates Compute was invoked on a block that
	// requires a named input ("input", "control", ...) that was never
	// wired via Connect.
	ErrMissingInput = errors.New("block: required input not connected")

	// ErrNoInputs indicates an Adder or Multiplier (which accept any
	// number of inputs, but require at least one) was computed with zero
	// wired inputs.
	ErrNoInputs = errors.New("block: no inputs connected")

	// ErrUnresolvedParameter indicates a Parameter-valued constructor
	// argument was never given a concrete value before the block was
	// used (see Parameter.Resolve).
	ErrUnresolvedParameter = errors.New("block: unresolved parameter")

	// ErrUnknownKind indicates a Kind value outside the closed variant
	// set, which can only happen from a malformed Block built outside
	// this package's constructors.
	ErrUnknownKind = errors.New("block: unknown block kind")
)

// Kind tags which of the closed set of block variants a Block is. The
// zero value is not a valid Kind; constructors always set it explicitly.
type Kind int

const (
	KindConstant Kind = iota + 1
	KindGenerator
	KindAmplifier
	KindInverter
	KindAdder
	KindMultiplier
	KindComparator
	KindFunction
	KindIntegrator
	KindDifferentiator
	KindODE
	KindSwitch
	KindScope
	KindSubsystem
)

// String renders the Kind using the same names the text format (package
// format) uses for BLOCK lines.
func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "Constant"
	case KindGenerator:
		return "Generator"
	case KindAmplifier:
		return "Amplifier"
	case KindInverter:
		return "Inverter"
	case KindAdder:
		return "Adder"
	case KindMultiplier:
		return "Multiplier"
	case KindComparator:
		return "Comparator"
	case KindFunction:
		return "Function"
	case KindIntegrator:
		return "Integrator"
	case KindDifferentiator:
		return "Differentiator"
	case KindODE:
		return "ODE"
	case KindSwitch:
		return "Switch"
	case KindScope:
		return "Scope"
	case KindSubsystem:
		return "Subsystem"
	default:
		return "Unknown"
	}
}

// Connection is the directed edge (target, target input name, source)
// described by spec §3/§9. Connection field order follows
// original_source/simulation.py's Connection(target, target_input,
// source) constructor order; it is intentionally independent of the text
// file grammar's CONNECTION <source> <target> <input> column order, which
// package format maps explicitly rather than relying on field alignment.
type Connection struct {
	Target      *Block
	TargetInput string
	Source      *Block
}

// Block is a single node of the signal-flow graph. Exported fields carry
// read-only identity and metadata; mutable simulation state lives behind
// unexported fields and the Compute/Commit/Output accessors so that no
// caller can observe a memory block's scratch value between Compute and
// Commit (spec invariant: only Output is visible between ticks).
type Block struct {
	Kind  Kind
	ID    string
	Label string

	inputs     map[string]*Block
	inputOrder []string

	output float64

	// Amplifier gain / Comparator threshold / Constant value / Integrator
	// and ODE initial value, resolved from a Parameter (if any) before
	// first use by ResolveParameters.
	scalarArg ScalarArg
	scalar    float64

	// Generator("t"), Function("x")
	fn *expr.Expr

	// Integrator / Differentiator two-phase scratch.
	tempOutput float64
	prevInput  float64
	hasPrev    bool

	// ODE state, distinct from the input-facing prevInput/hasPrev above:
	// an ODE tracks both its own state history and its input history.
	state      float64
	tempState  float64
	prevState  float64
	odeF       *expr.Expr // f(x, in): state derivative
	odeG       *expr.Expr // g(x, in): output transform; nil means g(x,in)=x

	// Subsystem interior, already topologically sorted by whoever built
	// it (package format sorts it when loading a Subsystem file).
	innerBlocks      []*Block
	innerConnections []Connection
}

// Output returns the block's last committed output. This is the only
// simulation value ever visible to other blocks or to callers between
// ticks.
func (b *Block) Output() float64 { return b.output }

// SetOutput forcibly overrides the block's committed output, used by
// sim.SetState and by Simulation.Reset to restore a snapshot. It also
// clears a memory block's commit history, so the next step starts as a
// first step (forward Euler for Integrator/ODE, zero for Differentiator);
// for an ODE block v also becomes the state x. It must only be called
// between ticks (never mid fixed-point-iteration).
func (b *Block) SetOutput(v float64) {
	b.output = v
	b.tempOutput = 0
	b.hasPrev = false
	if b.Kind == KindODE {
		b.state = v
		b.tempState = v
	}
}

// Inputs returns the block's wired inputs keyed by input name. The map
// itself has no order; use InputOrder for the deterministic first-connected
// order (spec §8 testable property 6: Adder/Multiplier iteration order must
// be reproducible across runs, which a plain Go map cannot guarantee).
func (b *Block) Inputs() map[string]*Block {
	return b.inputs
}

// InputOrder returns the input names in first-connected order.
func (b *Block) InputOrder() []string {
	return append([]string(nil), b.inputOrder...)
}

// Connect wires source as the named input of b, overwriting any prior
// source under the same name (spec §4.1). Subsystem overrides this to
// additionally forward to its own first inner block.
func (b *Block) Connect(inputName string, source *Block) {
	if b.Kind == KindSubsystem {
		b.connectSubsystem(inputName, source)
		return
	}

	b.rawConnect(inputName, source)
}

func (b *Block) rawConnect(inputName string, source *Block) {
	if b.inputs == nil {
		b.inputs = make(map[string]*Block)
	}
	if _, exists := b.inputs[inputName]; !exists {
		b.inputOrder = append(b.inputOrder, inputName)
	}
	b.inputs[inputName] = source
}

// connectSubsystem implements spec §4.8: forward to the input port (the
// first inner block), then re-apply every internal connection. Re-
// applying is a direct port of original_source/blocks.py's
// Subsystem.connect, which redoes its own wiring after every external
// connect call.
//
// It also records the connection on the wrapper block itself via
// rawConnect, even though Compute/Commit never read b.inputs for a
// Subsystem (they recurse into innerBlocks instead): topo.Sort only ever
// inspects a block's own Inputs()/InputOrder(), and without this the
// subsystem's true upstream dependency would be invisible to the outer
// graph's topological order.
func (b *Block) connectSubsystem(inputName string, source *Block) {
	b.rawConnect(inputName, source)

	if len(b.innerBlocks) > 0 {
		b.innerBlocks[0].Connect(inputName, source)
	}
	for _, c := range b.innerConnections {
		c.Target.Connect(c.TargetInput, c.Source)
	}
}

// Wire installs every connection into its target's input map. It is the
// shared helper used by Simulation construction, AddConnection, and
// Subsystem construction.
func Wire(connections []Connection) {
	for _, c := range connections {
		c.Target.Connect(c.TargetInput, c.Source)
	}
}

package format

import "errors"

// Sentinel errors, wrapped with %w and context at the point of failure:
// the offending line's number for errors found by Parse, the block or
// connection involved for errors found while building blocks.
var (
	// ErrUnknownBlockType indicates a BLOCK line named a type outside the
	// closed block.Kind set.
	ErrUnknownBlockType = errors.New("format: unknown block type")

	// ErrUnknownLinePrefix indicates a non-blank, non-comment line did not
	// begin with one of BLOCK, CONNECTION, STATE, PARAMETER, EQUATION, TIME.
	ErrUnknownLinePrefix = errors.New("format: unknown line prefix")

	// ErrMissingTime indicates a file contained no TIME line.
	ErrMissingTime = errors.New("format: missing TIME line")

	// ErrMalformedLine indicates a recognized line prefix did not carry
	// enough fields for its directive.
	ErrMalformedLine = errors.New("format: malformed line")

	// ErrUnknownBlockID indicates a CONNECTION line referenced a block ID
	// that no BLOCK line declared. An unknown ID on a STATE line is
	// reported by sim.Simulation.ApplyInitialState, without this sentinel.
	ErrUnknownBlockID = errors.New("format: unknown block id")
)

// File is the parsed, not-yet-constructed content of a simulation file:
// everything Parse extracts before Load wires it into a *sim.Simulation.
type File struct {
	Blocks      []*BlockSpec
	Connections []ConnectionSpec
	State       map[string]float64
	Parameters  []ParameterSpec
	Equations   []string
	Dt          float64

	// StartTime is the TIME line's second field: the simulation clock value
	// to resume from, per original_source/simulation.py's Simulation(blocks,
	// connections, dt, time) constructor — not a run-length duration, which
	// is always supplied to Run by the caller (spec §5).
	StartTime float64
	hasTime   bool

	// BaseDir is the directory Subsystem filenames are resolved against
	// (the directory containing the file this File was parsed from).
	BaseDir string
}

// BlockSpec is one parsed BLOCK line.
type BlockSpec struct {
	ID   string
	Type string
	Args []string
}

// ConnectionSpec is one parsed CONNECTION line.
type ConnectionSpec struct {
	SourceID    string
	TargetID    string
	TargetInput string
}

// ParameterSpec is one parsed PARAMETER line. HasValue is false for a
// parameter declared without an initial value, left to be bound by an
// EQUATION before the simulation runs.
type ParameterSpec struct {
	Name     string
	Value    float64
	HasValue bool
}

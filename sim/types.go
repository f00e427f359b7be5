package sim

import (
	"errors"
	"log"
	"os"

	"github.com/arolan/ssflow/block"
)

// Sentinel errors, wrapped with %w and context at the point of failure.
var (
	// ErrUnknownParameter indicates an Equation's left-hand side names a
	// parameter that was never declared in the simulation's parameter
	// table.
	ErrUnknownParameter = errors.New("sim: unknown parameter")

	// ErrMalformedEquation indicates an Equation string contained no "="
	// or had an empty left-hand side.
	ErrMalformedEquation = errors.New("sim: malformed equation")

	// ErrNilBlock indicates a nil *block.Block was passed to AddBlock or
	// appeared in a Connection.
	ErrNilBlock = errors.New("sim: nil block")
)

// DefaultMaxIterations and DefaultTolerance are the fixed-point stepper
// defaults from spec §4.3.
const (
	DefaultMaxIterations = 20
	DefaultTolerance     = 1e-6
)

// Simulation is the tuple (blocks, connections, dt, time, initial
// snapshot) of spec §3, plus the bookkeeping (parameters, equations, start
// time, logger) needed to drive it. The zero value is not usable; construct with New.
type Simulation struct {
	blocks      []*block.Block
	connections []block.Connection
	parameters  map[string]*block.Parameter
	equations   []*Equation

	dt        float64
	time      float64
	startTime float64

	initialSnapshot map[*block.Block]float64

	logger *log.Logger
}

// Option configures a Simulation at construction time, mirroring lvlath's
// functional-option convention (core.GraphOption, builder.BuilderOption).
type Option func(*Simulation)

// WithLogger overrides the diagnostic logger used for non-convergence and
// cycle-detected notices (spec §7: numerical non-convergence is warned,
// never fatal). The default logs to os.Stderr with standard flags.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

func defaultLogger() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}

// Time returns the simulation's current time.
func (s *Simulation) Time() float64 { return s.time }

// Dt returns the simulation's fixed step size.
func (s *Simulation) Dt() float64 { return s.dt }

// Blocks returns the simulation's blocks in their current topological
// order. The returned slice must not be mutated by the caller.
func (s *Simulation) Blocks() []*block.Block { return s.blocks }

// Connections returns the simulation's connection list, preserved
// verbatim from construction/AddConnection for serialization (spec
// §4.1).
func (s *Simulation) Connections() []block.Connection { return s.connections }

// Parameters returns the simulation's parameter table, keyed by name.
func (s *Simulation) Parameters() map[string]*block.Parameter { return s.parameters }

// Equations returns the simulation's pre-run equations, in application
// order, for serialization (package format).
func (s *Simulation) Equations() []*Equation { return s.equations }

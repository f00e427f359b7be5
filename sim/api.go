package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/arolan/ssflow/block"
	"github.com/arolan/ssflow/topo"
)

// New constructs a Simulation: wires connections, applies equations in
// order (binding Parameter values from already-resolved ones),
// resolves every block's remaining Parameter references to literals,
// computes the initial topological order, and snapshots the resulting
// state for Reset (spec §4.6).
func New(
	blocks []*block.Block,
	connections []block.Connection,
	dt float64,
	startTime float64,
	parameters []*block.Parameter,
	equations []*Equation,
	opts ...Option,
) (*Simulation, error) {
	s := &Simulation{
		dt:        dt,
		time:      startTime,
		startTime: startTime,
		logger:    defaultLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parameters = make(map[string]*block.Parameter, len(parameters))
	for _, p := range parameters {
		s.parameters[p.Name] = p
	}

	for _, c := range connections {
		if c.Target == nil || c.Source == nil {
			return nil, fmt.Errorf("%w: connection with target input %q", ErrNilBlock, c.TargetInput)
		}
	}
	block.Wire(connections)
	s.connections = connections

	if err := ApplyEquations(equations, s.parameters); err != nil {
		return nil, err
	}
	s.equations = equations

	for _, b := range blocks {
		if b == nil {
			return nil, ErrNilBlock
		}
		if err := b.ResolveParameters(); err != nil {
			return nil, fmt.Errorf("block %q (id=%s): %w", b.Label, b.ID, err)
		}
	}

	s.blocks = topo.Sort(blocks)
	if topo.HasCycle(s.blocks) {
		s.logger.Printf("sim: block graph contains a cycle; relying on fixed-point iteration to settle it")
	}

	s.initialSnapshot = s.snapshot()

	return s, nil
}

func (s *Simulation) snapshot() map[*block.Block]float64 {
	snap := make(map[*block.Block]float64, len(s.blocks))
	for _, b := range s.blocks {
		snap[b] = b.Output()
	}

	return snap
}

// AddBlock installs b into the simulation and re-sorts the topology
// (spec §4.6 "Adding a block... is permitted; the engine re-sorts
// topology").
func (s *Simulation) AddBlock(b *block.Block) error {
	if b == nil {
		return ErrNilBlock
	}
	if err := b.ResolveParameters(); err != nil {
		return fmt.Errorf("block %q (id=%s): %w", b.Label, b.ID, err)
	}

	s.blocks = append(s.blocks, b)
	s.blocks = topo.Sort(s.blocks)

	return nil
}

// AddConnection wires c and re-sorts the topology.
func (s *Simulation) AddConnection(c block.Connection) error {
	if c.Target == nil || c.Source == nil {
		return fmt.Errorf("%w: connection with target input %q", ErrNilBlock, c.TargetInput)
	}

	c.Target.Connect(c.TargetInput, c.Source)
	s.connections = append(s.connections, c)
	s.blocks = topo.Sort(s.blocks)

	return nil
}

// Update performs one fixed-point tick (spec §4.3): advance time by dt,
// iterate Compute across every block in topological order up to
// maxIterations times until the relative residual drops below
// tolerance, then Commit every block regardless of convergence.
// Non-convergence is logged, not returned as an error — only a
// structural/semantic failure from a block's Compute/Commit propagates.
func (s *Simulation) Update(maxIterations int, tolerance float64) error {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	s.time += s.dt

	converged := false

	for iter := 0; iter < maxIterations; iter++ {
		prev := s.snapshot()

		for _, b := range s.blocks {
			if err := b.Compute(s.time, s.dt); err != nil {
				return err
			}
		}

		if residual(s.blocks, prev) < tolerance {
			converged = true
			break
		}
	}

	for _, b := range s.blocks {
		if err := b.Commit(); err != nil {
			return err
		}
	}

	if !converged {
		s.logger.Printf("sim: steady state not reached at t=%g (max_iterations=%d, tolerance=%g)", s.time, maxIterations, tolerance)
	}

	return nil
}

// residual computes the relative deviation used by the fixed-point
// stepper to decide convergence (spec §4.3c): the maximum, over blocks
// whose current output is nonzero, of |(output-prev)/output|. Blocks
// resting at zero are excluded to avoid division by zero; if every
// block is at zero, the residual is zero (converged).
func residual(blocks []*block.Block, prev map[*block.Block]float64) float64 {
	maxRel := 0.0
	any := false

	for _, b := range blocks {
		out := b.Output()
		if out == 0 {
			continue
		}
		rel := math.Abs((out - prev[b]) / out)
		if !any || rel > maxRel {
			maxRel = rel
			any = true
		}
	}

	if !any {
		return 0
	}

	return maxRel
}

// Run advances the simulation by duration (in multiples of dt, via
// repeated Update calls), recording (time, per-block output) after every
// commit, and returns the resulting time vector and sample matrix (spec
// §4.6). ctx is checked once between ticks (never inside a tick's
// fixed-point loop, preserving spec §5's "no suspension points inside
// update"); a cancelled context stops Run early and returns ctx.Err().
//
// Each call is tagged with a fresh correlation ID, which prefixes any
// error Run returns from a failing tick. The ID does not appear in the
// logger's non-convergence lines, which Update writes.
func (s *Simulation) Run(ctx context.Context, duration float64, maxIterations int, tolerance float64) ([]float64, [][]float64, error) {
	runID := uuid.New()
	startTime := s.time

	var times []float64
	samples := make([][]float64, len(s.blocks))

	for s.time-startTime < duration {
		select {
		case <-ctx.Done():
			return times, samples, ctx.Err()
		default:
		}

		if err := s.Update(maxIterations, tolerance); err != nil {
			return times, samples, fmt.Errorf("run %s: %w", runID, err)
		}

		times = append(times, s.time)
		for i, b := range s.blocks {
			samples[i] = append(samples[i], b.Output())
		}
	}

	return times, samples, nil
}

// Reset restores time to the simulation's start time and every block's
// output to its value at construction (spec §4.6), clearing memory blocks'
// commit history via block.Block.SetOutput.
func (s *Simulation) Reset() {
	s.time = s.startTime
	for b, v := range s.initialSnapshot {
		b.SetOutput(v)
	}
}

// GetState returns the current output of every block, ordered to match
// Blocks().
func (s *Simulation) GetState() []float64 {
	out := make([]float64, len(s.blocks))
	for i, b := range s.blocks {
		out[i] = b.Output()
	}

	return out
}

// SetState overwrites every block's output from state, ordered to match
// Blocks(). It returns an error if len(state) != len(Blocks()).
func (s *Simulation) SetState(state []float64) error {
	if len(state) != len(s.blocks) {
		return fmt.Errorf("sim: SetState: expected %d values, got %d", len(s.blocks), len(state))
	}
	for i, b := range s.blocks {
		b.SetOutput(state[i])
	}

	return nil
}

// ApplyInitialState overwrites the outputs of the blocks named in values
// (keyed by block ID) and recaptures the initial snapshot, so that a
// subsequent Reset restores these values rather than the ones present at
// New time. This backs the format package's STATE directive, which
// overrides initial outputs after construction.
func (s *Simulation) ApplyInitialState(values map[string]float64) error {
	byID := make(map[string]*block.Block, len(s.blocks))
	for _, b := range s.blocks {
		byID[b.ID] = b
	}

	for id, v := range values {
		b, ok := byID[id]
		if !ok {
			return fmt.Errorf("sim: ApplyInitialState: unknown block id %q", id)
		}
		b.SetOutput(v)
	}

	s.initialSnapshot = s.snapshot()

	return nil
}

// GetOutputs collects the current output of every Scope block, keyed by
// its label (spec §4.6).
func (s *Simulation) GetOutputs() map[string]float64 {
	out := make(map[string]float64)
	for _, b := range s.blocks {
		if b.Kind == block.KindScope {
			out[b.Label] = b.Output()
		}
	}

	return out
}

package sim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arolan/ssflow/block"
	"github.com/arolan/ssflow/expr"
	"github.com/arolan/ssflow/sim"
)

func TestNew_WiresSortsAndSnapshots(t *testing.T) {
	c := block.NewConstant("c", "c", block.Literal(3.0))
	amp := block.NewAmplifier("a", "a", block.Literal(2.5))
	scope := block.NewScope("s", "out")

	conns := []block.Connection{
		{Target: amp, TargetInput: "input", Source: c},
		{Target: scope, TargetInput: "input", Source: amp},
	}

	s, err := sim.New([]*block.Block{scope, amp, c}, conns, 0.1, 0, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Update(0, 0))

	out := s.GetOutputs()
	assert.Equal(t, 7.5, out["out"])
}

func TestEquations_ResolveParameters(t *testing.T) {
	x := block.NewParameter("x")
	y := block.NewParameter("y")
	z := block.NewParameter("z")
	x.Resolve(3)
	y.Resolve(4)

	eq, err := sim.ParseEquation("z=3*x+y")
	// NOTE: the LHS parameter name is "z" as declared below, not the
	// RHS's literal "3" coefficient.
	require.NoError(t, err)

	c := block.NewConstant("c", "c", block.FromParameter(z))

	s, err := sim.New([]*block.Block{c}, nil, 0.1, 0, []*block.Parameter{x, y, z}, []*sim.Equation{eq})
	require.NoError(t, err)

	require.NoError(t, s.Update(0, 0))
	assert.Equal(t, 13.0, s.GetState()[0]) // z = 3*3+4 = 13
}

func TestEquation_UndefinedInputFails(t *testing.T) {
	z := block.NewParameter("z")
	eq, err := sim.ParseEquation("z=3*x+y")
	require.NoError(t, err)

	c := block.NewConstant("c", "c", block.FromParameter(z))
	_, err = sim.New([]*block.Block{c}, nil, 0.1, 0, []*block.Parameter{z}, []*sim.Equation{eq})
	assert.Error(t, err)
	assert.ErrorIs(t, err, expr.ErrUnknownVariable)
}

// Invariant 5: run(T); reset(); run(T) produces identical traces.
func TestReset_RoundTrip(t *testing.T) {
	build := func() *sim.Simulation {
		gen := block.NewGenerator("g", "g", expr.MustParse("sin(t)"))
		integ := block.NewIntegrator("i", "i", block.Literal(0))
		scope := block.NewScope("s", "out")
		integ.Connect("input", gen)
		scope.Connect("input", integ)

		s, err := sim.New([]*block.Block{scope, integ, gen}, nil, 0.05, 0, nil, nil)
		require.NoError(t, err)

		return s
	}

	s := build()
	times1, samples1, err := s.Run(context.Background(), 1.0, 0, 0)
	require.NoError(t, err)

	s.Reset()
	times2, samples2, err := s.Run(context.Background(), 1.0, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, times1, times2)
	assert.Equal(t, samples1, samples2)
}

func TestAddBlock_AddConnection_ReSorts(t *testing.T) {
	c := block.NewConstant("c", "c", block.Literal(2))
	s, err := sim.New([]*block.Block{c}, nil, 0.1, 0, nil, nil)
	require.NoError(t, err)

	amp := block.NewAmplifier("a", "a", block.Literal(3))
	require.NoError(t, s.AddBlock(amp))
	require.NoError(t, s.AddConnection(block.Connection{Target: amp, TargetInput: "input", Source: c}))

	require.NoError(t, s.Update(0, 0))
	assert.Equal(t, 6.0, amp.Output())
}

func TestSetState_GetState_Alignment(t *testing.T) {
	c := block.NewConstant("c", "c", block.Literal(1))
	amp := block.NewAmplifier("a", "a", block.Literal(2))
	amp.Connect("input", c)

	s, err := sim.New([]*block.Block{c, amp}, nil, 0.1, 0, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.SetState([]float64{10, 20}))
	assert.Equal(t, []float64{10, 20}, s.GetState())
}

package block_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arolan/ssflow/block"
	"github.com/arolan/ssflow/expr"
)

func resolve(t *testing.T, b *block.Block) {
	t.Helper()
	require.NoError(t, b.ResolveParameters())
}

// S1 — Constant through Amplifier.
func TestScenario_ConstantAmplifier(t *testing.T) {
	c := block.NewConstant("c", "c", block.Literal(3.0))
	amp := block.NewAmplifier("a", "a", block.Literal(2.5))
	scope := block.NewScope("s", "out")

	amp.Connect("input", c)
	scope.Connect("input", amp)

	resolve(t, c)
	resolve(t, amp)

	require.NoError(t, c.Compute(0, 0.1))
	require.NoError(t, amp.Compute(0, 0.1))
	require.NoError(t, scope.Compute(0, 0.1))

	assert.Equal(t, 7.5, scope.Output())
}

// S2 — Integrator of a unit step: 0.1, 0.2, 0.3 after commits 1..3.
func TestScenario_IntegratorUnitStep(t *testing.T) {
	c := block.NewConstant("c", "c", block.Literal(1.0))
	integ := block.NewIntegrator("i", "i", block.Literal(0.0))
	integ.Connect("input", c)

	resolve(t, c)
	resolve(t, integ)

	dt := 0.1
	want := []float64{0.1, 0.2, 0.3}

	for _, w := range want {
		require.NoError(t, c.Compute(0, dt))
		require.NoError(t, integ.Compute(0, dt))
		require.NoError(t, integ.Commit())
		assert.InDelta(t, w, integ.Output(), 1e-9)
	}
}

// Invariant 4: an Integrator fed Constant 0 preserves its output exactly.
func TestIntegrator_ZeroInputIsIdempotent(t *testing.T) {
	c := block.NewConstant("c", "c", block.Literal(0))
	integ := block.NewIntegrator("i", "i", block.Literal(5.0))
	integ.Connect("input", c)

	resolve(t, c)
	resolve(t, integ)

	for i := 0; i < 10; i++ {
		require.NoError(t, c.Compute(0, 0.1))
		require.NoError(t, integ.Compute(0, 0.1))
		require.NoError(t, integ.Commit())
		assert.Equal(t, 5.0, integ.Output())
	}
}

func TestDifferentiator_FirstStepIsZero(t *testing.T) {
	c := block.NewConstant("c", "c", block.Literal(3.0))
	diff := block.NewDifferentiator("d", "d")
	diff.Connect("input", c)
	resolve(t, c)

	require.NoError(t, c.Compute(0, 0.1))
	require.NoError(t, diff.Compute(0, 0.1))
	require.NoError(t, diff.Commit())
	assert.Equal(t, 0.0, diff.Output())

	require.NoError(t, c.Compute(0.1, 0.1))
	require.NoError(t, diff.Compute(0.1, 0.1))
	require.NoError(t, diff.Commit())
	assert.InDelta(t, 0.0, diff.Output(), 1e-9) // constant input -> zero derivative
}

// S5 — Comparator threshold.
func TestScenario_ComparatorThreshold(t *testing.T) {
	gen := block.NewGenerator("g", "g", expr.MustParse("t"))
	cmp := block.NewComparator("c", "c", block.Literal(2.5))
	cmp.Connect("input", gen)
	resolve(t, cmp)

	dt := 0.5
	tm := 0.0
	want := map[float64]float64{0.5: 0, 1.0: 0, 1.5: 0, 2.0: 0, 2.5: 1, 3.0: 1}

	for i := 1; i <= 6; i++ {
		tm += dt
		require.NoError(t, gen.Compute(tm, dt))
		require.NoError(t, cmp.Compute(tm, dt))
		assert.Equal(t, want[tm], cmp.Output(), "t=%v", tm)
	}
}

// S6 — Switch gated pass-through: output equals max(sin(t), 0).
func TestScenario_SwitchGatedPassthrough(t *testing.T) {
	gen := block.NewGenerator("g", "g", expr.MustParse("sin(t)"))
	cmp := block.NewComparator("c", "c", block.Literal(0))
	sw := block.NewSwitch("sw", "sw")

	cmp.Connect("input", gen)
	sw.Connect("input", gen)
	sw.Connect("control", cmp)
	resolve(t, cmp)

	for _, tm := range []float64{0.1, 0.5, 1.0, 3.2, 4.5, 6.0} {
		require.NoError(t, gen.Compute(tm, 0.1))
		require.NoError(t, cmp.Compute(tm, 0.1))
		require.NoError(t, sw.Compute(tm, 0.1))

		want := gen.Output()
		if want < 0 {
			want = 0
		}
		assert.InDelta(t, want, sw.Output(), 1e-9, "t=%v", tm)
	}
}

func TestAdder_NoInputsErrors(t *testing.T) {
	a := block.NewAdder("a", "a")
	err := a.Compute(0, 0.1)
	assert.ErrorIs(t, err, block.ErrNoInputs)
}

func TestAdder_DeterministicInputOrder(t *testing.T) {
	a := block.NewAdder("a", "a")
	x := block.NewConstant("x", "x", block.Literal(1))
	y := block.NewConstant("y", "y", block.Literal(10))
	z := block.NewConstant("z", "z", block.Literal(100))
	resolve(t, x)
	resolve(t, y)
	resolve(t, z)

	a.Connect("in_c", z)
	a.Connect("in_a", x)
	a.Connect("in_b", y)

	assert.Equal(t, []string{"in_c", "in_a", "in_b"}, a.InputOrder())

	require.NoError(t, a.Compute(0, 0.1))
	assert.Equal(t, 111.0, a.Output())
}

func TestMultiplier(t *testing.T) {
	m := block.NewMultiplier("m", "m")
	x := block.NewConstant("x", "x", block.Literal(2))
	y := block.NewConstant("y", "y", block.Literal(3))
	resolve(t, x)
	resolve(t, y)
	m.Connect("a", x)
	m.Connect("b", y)

	require.NoError(t, m.Compute(0, 0.1))
	assert.Equal(t, 6.0, m.Output())
}

func TestAmplifier_MissingInput(t *testing.T) {
	amp := block.NewAmplifier("a", "a", block.Literal(2))
	resolve(t, amp)
	err := amp.Compute(0, 0.1)
	assert.ErrorIs(t, err, block.ErrMissingInput)
}

func TestODE_ExponentialDecayTowardInput(t *testing.T) {
	// f(x,y) = -x + y, g(x,y) = x: state decays toward a constant drive.
	c := block.NewConstant("c", "c", block.Literal(1.0))
	ode := block.NewODE("o", "o", block.Literal(0.0), expr.MustParse("-x+y"), nil)
	ode.Connect("input", c)
	resolve(t, c)
	resolve(t, ode)

	dt := 0.01
	for i := 0; i < 500; i++ {
		require.NoError(t, c.Compute(0, dt))
		require.NoError(t, ode.Compute(0, dt))
		require.NoError(t, ode.Commit())
	}
	// Should have settled close to the fixed point x=1.
	assert.InDelta(t, 1.0, ode.Output(), 1e-2)
}

func TestConstant_IgnoresTime(t *testing.T) {
	c := block.NewConstant("c", "c", block.Literal(42))
	resolve(t, c)
	require.NoError(t, c.Compute(0, 0.1))
	assert.Equal(t, 42.0, c.Output())
	require.NoError(t, c.Compute(100, 0.1))
	assert.Equal(t, 42.0, c.Output())
}

func TestSubsystem_PassThroughChain(t *testing.T) {
	inner1 := block.NewAmplifier("i1", "i1", block.Literal(2))
	inner2 := block.NewAmplifier("i2", "i2", block.Literal(3))
	resolve(t, inner1)
	resolve(t, inner2)

	conns := []block.Connection{{Target: inner2, TargetInput: "input", Source: inner1}}
	block.Wire(conns)

	sub := block.NewSubsystem("sub", "sub", []*block.Block{inner1, inner2}, conns)

	src := block.NewConstant("src", "src", block.Literal(5))
	resolve(t, src)
	sub.Connect("input", src)

	require.NoError(t, src.Compute(0, 0.1))
	require.NoError(t, sub.Compute(0, 0.1))
	require.NoError(t, sub.Commit())

	assert.Equal(t, 30.0, sub.Output()) // 5 * 2 * 3
}

func TestSubsystem_ExposesInputToTopoSort(t *testing.T) {
	inner := block.NewAmplifier("i1", "i1", block.Literal(2))
	resolve(t, inner)
	sub := block.NewSubsystem("sub", "sub", []*block.Block{inner}, nil)

	src := block.NewConstant("src", "src", block.Literal(5))
	resolve(t, src)
	sub.Connect("input", src)

	assert.Equal(t, []string{"input"}, sub.InputOrder())
	assert.Same(t, src, sub.Inputs()["input"])
}

func TestParameter_UnresolvedErrors(t *testing.T) {
	p := block.NewParameter("k")
	amp := block.NewAmplifier("a", "a", block.FromParameter(p))
	err := amp.ResolveParameters()
	assert.ErrorIs(t, err, block.ErrUnresolvedParameter)

	p.Resolve(4.0)
	require.NoError(t, amp.ResolveParameters())
}

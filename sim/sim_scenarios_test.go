package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arolan/ssflow/block"
	"github.com/arolan/ssflow/expr"
	"github.com/arolan/ssflow/sim"
)

const cos1 = 0.5403023058681398 // cos(1.0)

// scenario is one of the concrete worked examples: build a tiny diagram,
// tick it a fixed number of times, then assert on the resulting block
// outputs. Table-driven so each scenario reads as a single row.
type scenario struct {
	name          string
	build         func() (*sim.Simulation, map[string]*block.Block)
	ticks         int
	maxIterations int
	tolerance     float64
	check         func(t *testing.T, blocks map[string]*block.Block)
}

var scenarios = []scenario{
	{
		// S1 — Constant through Amplifier.
		name:  "ConstantThroughAmplifier",
		ticks: 1,
		build: func() (*sim.Simulation, map[string]*block.Block) {
			c := block.NewConstant("c", "c", block.Literal(3.0))
			amp := block.NewAmplifier("amp", "amp", block.Literal(2.5))
			scope := block.NewScope("scope", "out")
			amp.Connect("input", c)
			scope.Connect("input", amp)

			s, err := sim.New([]*block.Block{c, amp, scope}, nil, 0.1, 0, nil, nil)
			if err != nil {
				panic(err)
			}
			return s, map[string]*block.Block{"scope": scope}
		},
		check: func(t *testing.T, b map[string]*block.Block) {
			assert.Equal(t, 7.5, b["scope"].Output())
		},
	},
	{
		// S2 — Integrator of a unit step.
		name:  "IntegratorOfUnitStep",
		ticks: 3,
		build: func() (*sim.Simulation, map[string]*block.Block) {
			c := block.NewConstant("c", "c", block.Literal(1.0))
			integ := block.NewIntegrator("i", "i", block.Literal(0))
			integ.Connect("input", c)

			s, err := sim.New([]*block.Block{c, integ}, nil, 0.1, 0, nil, nil)
			if err != nil {
				panic(err)
			}
			return s, map[string]*block.Block{"i": integ}
		},
		check: func(t *testing.T, b map[string]*block.Block) {
			assert.InDelta(t, 0.3, b["i"].Output(), 1e-9)
		},
	},
	{
		// S3 — Sine generator derivative approximates cosine.
		name:  "SineGeneratorDerivative",
		ticks: 1000,
		build: func() (*sim.Simulation, map[string]*block.Block) {
			gen := block.NewGenerator("g", "g", expr.MustParse("sin(t)"))
			diff := block.NewDifferentiator("d", "d")
			diff.Connect("input", gen)

			s, err := sim.New([]*block.Block{gen, diff}, nil, 1e-3, 0, nil, nil)
			if err != nil {
				panic(err)
			}
			return s, map[string]*block.Block{"d": diff}
		},
		check: func(t *testing.T, b map[string]*block.Block) {
			assert.InDelta(t, cos1, b["d"].Output(), 2e-3)
		},
	},
	{
		// S4 — Algebraic loop converges within the fixed-point iteration cap.
		name:          "AlgebraicLoop",
		ticks:         1,
		maxIterations: 30,
		tolerance:     1e-6,
		build: func() (*sim.Simulation, map[string]*block.Block) {
			c := block.NewConstant("c", "c", block.Literal(1))
			adder := block.NewAdder("add", "add")
			amp := block.NewAmplifier("amp", "amp", block.Literal(0.5))
			adder.Connect("in1", c)
			adder.Connect("in2", amp)
			amp.Connect("input", adder)

			s, err := sim.New([]*block.Block{c, adder, amp}, nil, 0.1, 0, nil, nil)
			if err != nil {
				panic(err)
			}
			return s, map[string]*block.Block{"add": adder, "amp": amp}
		},
		check: func(t *testing.T, b map[string]*block.Block) {
			assert.InDelta(t, 2.0, b["add"].Output(), 1e-6)
			assert.InDelta(t, 1.0, b["amp"].Output(), 1e-6)
		},
	},
	{
		// S5 — Comparator threshold gates a ramping generator.
		name:  "ComparatorThreshold",
		ticks: 4,
		build: func() (*sim.Simulation, map[string]*block.Block) {
			gen := block.NewGenerator("g", "g", expr.MustParse("t"))
			cmp := block.NewComparator("c", "c", block.Literal(2.5))
			scope := block.NewScope("s", "out")
			cmp.Connect("input", gen)
			scope.Connect("input", cmp)

			s, err := sim.New([]*block.Block{gen, cmp, scope}, nil, 0.5, 0, nil, nil)
			if err != nil {
				panic(err)
			}
			return s, map[string]*block.Block{"s": scope}
		},
		check: func(t *testing.T, b map[string]*block.Block) {
			// after 4 ticks at dt=0.5, t=2.0 < 2.5: still below threshold.
			assert.Equal(t, 0.0, b["s"].Output())
		},
	},
	{
		// S6 — Switch passes input only while a comparator control is positive.
		name:  "SwitchGatedPassThrough",
		ticks: 1000,
		build: func() (*sim.Simulation, map[string]*block.Block) {
			gen := block.NewGenerator("g", "g", expr.MustParse("sin(t)"))
			cmp := block.NewComparator("c", "c", block.Literal(0))
			sw := block.NewSwitch("sw", "sw")
			sw.Connect("input", gen)
			sw.Connect("control", cmp)
			cmp.Connect("input", gen)

			s, err := sim.New([]*block.Block{gen, cmp, sw}, nil, 1e-3, 0, nil, nil)
			if err != nil {
				panic(err)
			}
			return s, map[string]*block.Block{"g": gen, "sw": sw}
		},
		check: func(t *testing.T, b map[string]*block.Block) {
			want := b["g"].Output()
			if want < 0 {
				want = 0
			}
			assert.Equal(t, want, b["sw"].Output())
		},
	},
}

func TestScenarios(t *testing.T) {
	for _, sc := range scenarios {
		sc := sc
		t.Run(sc.name, func(t *testing.T) {
			s, blocks := sc.build()
			for i := 0; i < sc.ticks; i++ {
				require.NoError(t, s.Update(sc.maxIterations, sc.tolerance))
			}
			sc.check(t, blocks)
		})
	}
}

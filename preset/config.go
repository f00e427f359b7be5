package preset

// Kind selects which named diagram Build assembles.
type Kind int

const (
	// UnitStepIntegrator is Constant(1) -> Integrator -> Scope("out"):
	// scenario S2 (spec §8), the canonical unit-step response.
	UnitStepIntegrator Kind = iota + 1

	// PIController is a setpoint/feedback error feeding parallel
	// proportional and integral branches, summed into Scope("out").
	PIController

	// RCLowPass is an input feeding a first-order ODE block modeling
	// dx/dt = (u-x)/tau, output Scope("out").
	RCLowPass
)

// config is the resolved, immutable set of knobs every preset constructor
// reads from. Not every field applies to every Kind; each constructor
// documents which ones it uses.
type config struct {
	setpoint     float64
	feedback     float64
	kp           float64
	ki           float64
	timeConstant float64
	initial      float64
	inputExpr    string
}

func newConfig(opts ...Option) config {
	cfg := config{
		setpoint:     1,
		feedback:     0,
		kp:           1,
		ki:           0.5,
		timeConstant: 1,
		initial:      0,
		inputExpr:    "1",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Option configures a preset diagram before it is built.
type Option func(*config)

// WithSetpoint sets PIController's target value. Default 1.
func WithSetpoint(v float64) Option { return func(c *config) { c.setpoint = v } }

// WithFeedback sets PIController's (constant) feedback signal. Default 0.
func WithFeedback(v float64) Option { return func(c *config) { c.feedback = v } }

// WithKp sets PIController's proportional gain. Default 1.
func WithKp(v float64) Option { return func(c *config) { c.kp = v } }

// WithKi sets PIController's integral gain. Default 0.5.
func WithKi(v float64) Option { return func(c *config) { c.ki = v } }

// WithTimeConstant sets RCLowPass's tau in dx/dt = (u-x)/tau. Default 1.
func WithTimeConstant(v float64) Option { return func(c *config) { c.timeConstant = v } }

// WithInitial sets the initial state of UnitStepIntegrator's integrator,
// PIController's integral term, and RCLowPass's ODE. Default 0.
func WithInitial(v float64) Option { return func(c *config) { c.initial = v } }

// WithInputExpr sets RCLowPass's driving input, an expr-package expression
// over "t". Default "1" (a unit step).
func WithInputExpr(src string) Option { return func(c *config) { c.inputExpr = src } }

package sim

import (
	"fmt"
	"strings"

	"github.com/arolan/ssflow/block"
	"github.com/arolan/ssflow/expr"
)

// Equation is a pre-run binding "lhs = rhs" (spec §4.7): before the
// engine runs, ApplyEquations binds lhs's Parameter value from evaluating rhs
// against the parameter table's currently-resolved values.
type Equation struct {
	LHS  string
	rhs  *expr.Expr
	text string
}

// ParseEquation parses a string of the form "lhs=rhs", e.g. "z=3*x+y".
func ParseEquation(s string) (*Equation, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedEquation, s)
	}

	lhs := strings.TrimSpace(parts[0])
	rhsSrc := strings.TrimSpace(parts[1])
	if lhs == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedEquation, s)
	}

	rhs, err := expr.Parse(rhsSrc)
	if err != nil {
		return nil, fmt.Errorf("equation %q: %w", s, err)
	}

	return &Equation{LHS: lhs, rhs: rhs, text: s}, nil
}

// String returns the equation's original "lhs=rhs" text, for Save.
func (e *Equation) String() string { return e.text }

// ApplyEquations runs every equation's apply against parameters, in order,
// stopping at the first error. Exported so that package format can resolve
// a Subsystem's locally-scoped PARAMETER/EQUATION lines the same way New
// resolves a top-level simulation's.
func ApplyEquations(equations []*Equation, parameters map[string]*block.Parameter) error {
	for _, eq := range equations {
		if err := eq.apply(parameters); err != nil {
			return err
		}
	}

	return nil
}

// apply evaluates e's right-hand side against the resolved values of
// params, then binds the named left-hand-side Parameter. params whose
// value is not yet resolved are left out of the evaluation environment,
// so an equation referencing an undefined input fails via
// expr.ErrUnknownVariable (spec §4.7: "undefined inputs to an equation
// fail with a descriptive error").
func (e *Equation) apply(params map[string]*block.Parameter) error {
	env := make(map[string]float64, len(params))
	for name, p := range params {
		if v, err := p.Value(); err == nil {
			env[name] = v
		}
	}

	v, err := e.rhs.Eval(env)
	if err != nil {
		return fmt.Errorf("equation %q: %w", e.text, err)
	}

	target, ok := params[e.LHS]
	if !ok {
		return fmt.Errorf("equation %q: %w: %q", e.text, ErrUnknownParameter, e.LHS)
	}
	target.Resolve(v)

	return nil
}

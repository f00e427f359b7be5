package block

import "fmt"

// Parameter is a named, late-bound scalar (spec §3/§4.7). It is
// substituted into block constructor arguments by the parser (package
// format) or by an Equation (package sim) before the engine runs;
// afterward it is indistinguishable from a literal, except that a block
// holding an unresolved Parameter fails fast with ErrUnresolvedParameter
// rather than silently defaulting to zero.
type Parameter struct {
	Name    string
	value   float64
	resolved bool
}

// NewParameter creates a Parameter with no value yet; Resolve must be
// called before any block referencing it is used.
func NewParameter(name string) *Parameter {
	return &Parameter{Name: name}
}

// NewResolvedParameter creates a Parameter already bound to value, for
// callers (tests, presets) that construct parameters programmatically
// rather than through the PARAMETER file directive.
func NewResolvedParameter(name string, value float64) *Parameter {
	return &Parameter{Name: name, value: value, resolved: true}
}

// Resolve binds the parameter's value. Calling Resolve again rebinds it
// (used by Equation, which may recompute a parameter's value from other,
// already-resolved parameters).
func (p *Parameter) Resolve(value float64) {
	p.value = value
	p.resolved = true
}

// Value returns the parameter's bound value, or an error wrapping
// ErrUnresolvedParameter if Resolve was never called.
func (p *Parameter) Value() (float64, error) {
	if !p.resolved {
		return 0, fmt.Errorf("%w: %q", ErrUnresolvedParameter, p.Name)
	}

	return p.value, nil
}

// Resolved reports whether the parameter currently has a bound value.
func (p *Parameter) Resolved() bool { return p.resolved }

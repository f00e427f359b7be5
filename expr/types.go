package expr

import "errors"

// Sentinel errors returned (wrapped with %w) by Parse and Eval.
var (
	// ErrSyntax indicates the source text could not be tokenized or parsed.
	ErrSyntax = errors.New("expr: syntax error")

	// ErrUnknownVariable indicates Eval encountered an identifier that was
	// not present in the evaluation environment.
	ErrUnknownVariable = errors.New("expr: unknown variable")

	// ErrUnknownFunction indicates a call to a name outside the fixed
	// function library (sin cos tan exp log sqrt abs min max).
	ErrUnknownFunction = errors.New("expr: unknown function")

	// ErrArity indicates a function call was made with the wrong number
	// of arguments.
	ErrArity = errors.New("expr: wrong number of arguments")

	// ErrDomain indicates a function was evaluated outside its domain
	// (e.g. sqrt of a negative number, log of a non-positive number, or
	// division by zero) rather than silently producing NaN/Inf.
	ErrDomain = errors.New("expr: domain error")
)

// node is the internal AST interface. Every node is a pure function of an
// environment of named scalars.
type node interface {
	eval(env map[string]float64) (float64, error)
}

// Expr is a parsed, reusable expression. It is safe to call Eval on the
// same *Expr concurrently from multiple goroutines and repeatedly within a
// single simulation tick: evaluation never mutates the Expr.
type Expr struct {
	source string
	root   node
}

// String returns the original source text the expression was parsed from,
// so callers (notably package format) can re-emit it verbatim when saving
// a simulation to the text format.
func (e *Expr) String() string {
	if e == nil {
		return ""
	}

	return e.source
}

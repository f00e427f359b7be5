package expr

import "fmt"

// Parse compiles src into a reusable *Expr. The expression is tokenized
// and parsed once; the returned Expr may be evaluated any number of times
// via Eval without re-parsing.
func Parse(src string) (*Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected trailing input in %q", ErrSyntax, src)
	}

	return &Expr{source: src, root: root}, nil
}

// Eval evaluates the expression against env, a map of variable name to
// scalar value. Eval is pure: it never mutates e or env. A nil Expr
// always evaluates to 0, to keep optional expression fields ("g" on an
// ODE with no output transform) trivially usable without a nil check at
// every call site.
func (e *Expr) Eval(env map[string]float64) (float64, error) {
	if e == nil {
		return 0, nil
	}

	return e.root.eval(env)
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-internal construction of well-known expressions, never for
// user-supplied text (which must go through Parse and handle the error).
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("expr: MustParse(%q): %v", src, err))
	}

	return e
}

package format

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/arolan/ssflow/block"
	"github.com/arolan/ssflow/expr"
	"github.com/arolan/ssflow/sim"
	"github.com/arolan/ssflow/topo"
)

// components is the constructed-but-not-yet-assembled result of building a
// File: everything sim.New (or, for a Subsystem, block.NewSubsystem) needs.
type components struct {
	blocks      []*block.Block
	connections []block.Connection
	parameters  map[string]*block.Parameter
	equations   []*sim.Equation
}

// build constructs blocks, connections, parameters, and equations from f,
// resolving any Subsystem filenames against f.BaseDir.
func build(f *File) (*components, error) {
	params := make(map[string]*block.Parameter, len(f.Parameters))
	for _, p := range f.Parameters {
		if p.HasValue {
			params[p.Name] = block.NewResolvedParameter(p.Name, p.Value)
		} else {
			params[p.Name] = block.NewParameter(p.Name)
		}
	}

	equations := make([]*sim.Equation, 0, len(f.Equations))
	for _, text := range f.Equations {
		eq, err := sim.ParseEquation(text)
		if err != nil {
			return nil, err
		}
		equations = append(equations, eq)
	}
	if err := sim.ApplyEquations(equations, params); err != nil {
		return nil, err
	}

	byID := make(map[string]*block.Block, len(f.Blocks))
	var blocks []*block.Block
	for _, spec := range f.Blocks {
		b, err := buildBlock(spec, f.BaseDir, params)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", spec.ID, err)
		}
		byID[spec.ID] = b
		blocks = append(blocks, b)
	}

	conns := make([]block.Connection, 0, len(f.Connections))
	for _, c := range f.Connections {
		source, ok := byID[c.SourceID]
		if !ok {
			return nil, fmt.Errorf("connection to %q: %w: %q", c.TargetID, ErrUnknownBlockID, c.SourceID)
		}
		target, ok := byID[c.TargetID]
		if !ok {
			return nil, fmt.Errorf("connection from %q: %w: %q", c.SourceID, ErrUnknownBlockID, c.TargetID)
		}
		conns = append(conns, block.Connection{Target: target, TargetInput: c.TargetInput, Source: source})
	}

	return &components{blocks: blocks, connections: conns, parameters: params, equations: equations}, nil
}

// buildBlock constructs a single block from spec. A constructor argument
// that exactly matches a declared parameter name is late-bound to that
// Parameter (package doc); every other argument is parsed as a literal or,
// for Generator/Function/ODE, as an expression.
func buildBlock(spec *BlockSpec, baseDir string, params map[string]*block.Parameter) (*block.Block, error) {
	arg := func(i int) (string, error) {
		if i >= len(spec.Args) {
			return "", fmt.Errorf("%w: missing argument %d for %s", ErrMalformedLine, i, spec.Type)
		}
		return spec.Args[i], nil
	}
	scalar := func(i int) (block.ScalarArg, error) {
		tok, err := arg(i)
		if err != nil {
			return block.ScalarArg{}, err
		}
		if p, ok := params[tok]; ok {
			return block.FromParameter(p), nil
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return block.ScalarArg{}, fmt.Errorf("%w: argument %q: %v", ErrMalformedLine, tok, err)
		}
		return block.Literal(v), nil
	}
	expression := func(i int) (*expr.Expr, error) {
		tok, err := arg(i)
		if err != nil {
			return nil, err
		}
		return expr.Parse(tok)
	}

	switch spec.Type {
	case "Constant":
		v, err := scalar(0)
		if err != nil {
			return nil, err
		}
		return block.NewConstant(spec.ID, spec.ID, v), nil

	case "Generator":
		f, err := expression(0)
		if err != nil {
			return nil, err
		}
		return block.NewGenerator(spec.ID, spec.ID, f), nil

	case "Amplifier":
		gain, err := scalar(0)
		if err != nil {
			return nil, err
		}
		return block.NewAmplifier(spec.ID, spec.ID, gain), nil

	case "Inverter":
		return block.NewInverter(spec.ID, spec.ID), nil

	case "Adder":
		return block.NewAdder(spec.ID, spec.ID), nil

	case "Multiplier":
		return block.NewMultiplier(spec.ID, spec.ID), nil

	case "Comparator":
		threshold, err := scalar(0)
		if err != nil {
			return nil, err
		}
		return block.NewComparator(spec.ID, spec.ID, threshold), nil

	case "Function":
		g, err := expression(0)
		if err != nil {
			return nil, err
		}
		return block.NewFunction(spec.ID, spec.ID, g), nil

	case "Integrator":
		initial, err := scalar(0)
		if err != nil {
			return nil, err
		}
		return block.NewIntegrator(spec.ID, spec.ID, initial), nil

	case "Differentiator":
		return block.NewDifferentiator(spec.ID, spec.ID), nil

	case "ODE":
		initial, err := scalar(0)
		if err != nil {
			return nil, err
		}
		f, err := expression(1)
		if err != nil {
			return nil, err
		}
		var g *expr.Expr
		if len(spec.Args) > 2 {
			g, err = expression(2)
			if err != nil {
				return nil, err
			}
		}
		return block.NewODE(spec.ID, spec.ID, initial, f, g), nil

	case "Switch":
		return block.NewSwitch(spec.ID, spec.ID), nil

	case "Scope":
		label := spec.ID
		if len(spec.Args) > 0 {
			label = spec.Args[0]
		}
		return block.NewScope(spec.ID, label), nil

	case "Subsystem":
		filename, err := arg(0)
		if err != nil {
			return nil, err
		}
		return buildSubsystem(spec.ID, filepath.Join(baseDir, filename))

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, spec.Type)
	}
}

// buildSubsystem recursively parses and builds the file at path, then
// sorts and parameter-resolves its blocks, and wraps the result in a
// Subsystem block (spec §4.8: "only its BLOCK/CONNECTION entries are
// consumed" by the enclosing file — the subsystem's own PARAMETER/
// EQUATION lines are scoped to it alone).
func buildSubsystem(id, path string) (*block.Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("subsystem %q: %w", path, err)
	}
	defer f.Close()

	spec, err := Parse(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("subsystem %q: %w", path, err)
	}

	comp, err := build(spec)
	if err != nil {
		return nil, fmt.Errorf("subsystem %q: %w", path, err)
	}

	block.Wire(comp.connections)
	for _, b := range comp.blocks {
		if err := b.ResolveParameters(); err != nil {
			return nil, fmt.Errorf("subsystem %q: %w", path, err)
		}
	}
	sorted := topo.Sort(comp.blocks)

	return block.NewSubsystem(id, id, sorted, comp.connections), nil
}

package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Parse reads the line-oriented grammar (package doc) from r into a File,
// without constructing any blocks — that happens in build/Load. baseDir
// resolves relative Subsystem filenames and is carried on the returned
// File for that purpose.
func Parse(r io.Reader, baseDir string) (*File, error) {
	f := &File{State: make(map[string]float64), BaseDir: baseDir}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		tokens := tokenizeLine(scanner.Text())
		if len(tokens) == 0 {
			continue
		}

		prefix := tokens[0]
		rest := tokens[1:]

		var err error
		switch prefix {
		case "BLOCK":
			err = parseBlockLine(f, rest)
		case "CONNECTION":
			err = parseConnectionLine(f, rest)
		case "STATE":
			err = parseStateLine(f, rest)
		case "PARAMETER":
			err = parseParameterLine(f, rest)
		case "EQUATION":
			err = parseEquationLine(f, rest)
		case "TIME":
			err = parseTimeLine(f, rest)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownLinePrefix, prefix)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("format: reading input: %w", err)
	}

	return f, nil
}

func parseBlockLine(f *File, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: BLOCK requires an id and a type", ErrMalformedLine)
	}
	f.Blocks = append(f.Blocks, &BlockSpec{ID: args[0], Type: args[1], Args: args[2:]})

	return nil
}

func parseConnectionLine(f *File, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: CONNECTION requires source, target, input", ErrMalformedLine)
	}
	f.Connections = append(f.Connections, ConnectionSpec{
		SourceID:    args[0],
		TargetID:    args[1],
		TargetInput: args[2],
	})

	return nil
}

func parseStateLine(f *File, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: STATE requires an id and a value", ErrMalformedLine)
	}
	v, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("%w: STATE value %q: %v", ErrMalformedLine, args[1], err)
	}
	f.State[args[0]] = v

	return nil
}

func parseParameterLine(f *File, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: PARAMETER requires a name", ErrMalformedLine)
	}
	spec := ParameterSpec{Name: args[0]}
	if len(args) >= 2 {
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("%w: PARAMETER value %q: %v", ErrMalformedLine, args[1], err)
		}
		spec.Value = v
		spec.HasValue = true
	}
	f.Parameters = append(f.Parameters, spec)

	return nil
}

func parseEquationLine(f *File, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: EQUATION requires an expression", ErrMalformedLine)
	}
	joined := ""
	for _, a := range args {
		joined += a
	}
	f.Equations = append(f.Equations, joined)

	return nil
}

func parseTimeLine(f *File, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: TIME requires dt and start time", ErrMalformedLine)
	}
	dt, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: TIME dt %q: %v", ErrMalformedLine, args[0], err)
	}
	startTime, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("%w: TIME start time %q: %v", ErrMalformedLine, args[1], err)
	}
	f.Dt = dt
	f.StartTime = startTime
	f.hasTime = true

	return nil
}

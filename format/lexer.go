package format

import "strings"

// tokenizeLine strips an inline "#" comment, then splits the remainder on
// whitespace, treating a double-quoted run (used for Generator/Function/ODE
// expression arguments, which may themselves contain spaces) as a single
// token with its quotes removed.
func tokenizeLine(line string) []string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}

	var tokens []string
	var cur strings.Builder
	inQuotes := false
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case !inQuotes && (r == ' ' || r == '\t'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()

	return tokens
}

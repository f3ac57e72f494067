package llm

import "strings"

// Interpolate replaces {{name}} placeholders in tmpl with values from
// vars in a single left-to-right pass. Placeholders whose name is not
// in vars are kept literally, and substituted values are never scanned
// again, so a value containing {{...}} does not expand further.
func Interpolate(tmpl string, vars map[string]string) string {
	var sb strings.Builder
	sb.Grow(len(tmpl))

	rest := tmpl
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			sb.WriteString(rest)
			return sb.String()
		}

		close := strings.Index(rest[open+2:], "}}")
		if close < 0 {
			sb.WriteString(rest)
			return sb.String()
		}

		name := rest[open+2 : open+2+close]
		if value, ok := vars[name]; ok {
			sb.WriteString(rest[:open])
			sb.WriteString(value)
		} else {
			sb.WriteString(rest[:open+2+close+2])
		}
		rest = rest[open+2+close+2:]
	}
}

package normalize

import "strings"

// rewriteRRule implements the one required RRULE rewrite: a rule with
// BYSETPOS=<n> and exactly one BYDAY=<wd> (a bare two-letter weekday, no
// commas) becomes BYDAY=<n><wd> with BYSETPOS removed. Everything else in
// the rule, including clause order, passes through verbatim.
func rewriteRRule(value string) string {
	clauses := strings.Split(value, ";")

	bysetposIdx := -1
	bydayIdx := -1
	var bysetpos, byday string

	for i, c := range clauses {
		k, v, ok := strings.Cut(c, "=")
		if !ok {
			continue
		}
		switch k {
		case "BYSETPOS":
			bysetposIdx = i
			bysetpos = v
		case "BYDAY":
			bydayIdx = i
			byday = v
		}
	}

	if bysetposIdx < 0 || bydayIdx < 0 || strings.Contains(byday, ",") || len(byday) != 2 {
		return value
	}

	out := make([]string, 0, len(clauses)-1)
	for i, c := range clauses {
		switch i {
		case bysetposIdx:
			continue
		case bydayIdx:
			out = append(out, "BYDAY="+bysetpos+byday)
		default:
			out = append(out, c)
		}
	}
	return strings.Join(out, ";")
}

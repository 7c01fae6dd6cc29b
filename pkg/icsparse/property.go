package icsparse

import (
	"sort"
	"strings"
)

// ParseProperty tokenizes one unfolded content line into a Property. The
// name/parameter section ends at the first colon not preceded by a
// backslash escape. A line with no such colon yields ok=false: it is not a
// property line, though it may still matter for block delimiting.
func ParseProperty(line string) (Property, bool) {
	colon := unescapedColon(line)
	if colon < 0 {
		return Property{}, false
	}

	head := line[:colon]
	value := unescapeValue(line[colon+1:])

	parts := strings.Split(head, ";")
	name := strings.ToUpper(strings.TrimSpace(parts[0]))
	if name == "" {
		return Property{}, false
	}

	var params map[string]string
	if len(parts) > 1 {
		params = make(map[string]string, len(parts)-1)
		for _, raw := range parts[1:] {
			eq := strings.IndexByte(raw, '=')
			if eq < 0 {
				continue
			}
			pname := strings.ToUpper(strings.TrimSpace(raw[:eq]))
			pval := raw[eq+1:]
			if pname != "" {
				params[pname] = pval
			}
		}
	}

	return Property{Name: name, Params: params, Value: value}, true
}

func unescapedColon(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] == ':' && (i == 0 || line[i-1] != '\\') {
			return i
		}
	}
	return -1
}

func unescapeValue(v string) string {
	if !strings.ContainsRune(v, '\\') {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' && i+1 < len(v) {
			switch v[i+1] {
			case 'n', 'N':
				b.WriteByte('\n')
				i++
				continue
			case '\\', ';', ',', ':':
				b.WriteByte(v[i+1])
				i++
				continue
			}
		}
		b.WriteByte(v[i])
	}
	return b.String()
}

// SerializeProperty renders a Property back to "NAME(;PARAM=VALUE)*:VALUE"
// with parameters sorted ascending by name. Used by the "other" catch-all
// property reconstruction and by VTIMEZONE/diagnostics rewriting. The
// value is re-escaped so it round-trips through ParseProperty/unescapeValue.
func SerializeProperty(p Property) string {
	var b strings.Builder
	b.WriteString(p.Name)
	for _, pname := range sortedParamNames(p.Params) {
		b.WriteByte(';')
		b.WriteString(pname)
		b.WriteByte('=')
		b.WriteString(p.Params[pname])
	}
	b.WriteByte(':')
	b.WriteString(escapeValue(p.Value))
	return b.String()
}

// escapeValue reverses unescapeValue: backslashes, semicolons and commas
// are backslash-escaped, and a literal newline becomes "\n" so it can
// never be mistaken for a fold continuation on serialization.
func escapeValue(v string) string {
	if !strings.ContainsAny(v, "\\;,\n") {
		return v
	}
	var b strings.Builder
	b.Grow(len(v) + 8)
	for i := 0; i < len(v); i++ {
		switch v[i] {
		case '\\', ';', ',':
			b.WriteByte('\\')
			b.WriteByte(v[i])
		case '\n':
			b.WriteString("\\n")
		default:
			b.WriteByte(v[i])
		}
	}
	return b.String()
}

func sortedParamNames(params map[string]string) []string {
	if len(params) == 0 {
		return nil
	}
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

package icsparse

import (
	"strings"
	"unicode/utf8"
)

// UnfoldLines splits raw ICS bytes into logical content lines, reversing
// RFC 5545 line folding: any line beginning with a single space or tab is
// a continuation of the previous line, with the leading whitespace byte
// stripped. A continuation line with no predecessor (position 0) is
// discarded rather than treated as a new line.
func UnfoldLines(raw []byte) []string {
	s := strings.ReplaceAll(string(raw), "\r\n", "\n")
	rawLines := strings.Split(s, "\n")

	lines := make([]string, 0, len(rawLines))
	for _, rl := range rawLines {
		if rl == "" {
			continue
		}
		if rl[0] == ' ' || rl[0] == '\t' {
			if len(lines) == 0 {
				continue
			}
			lines[len(lines)-1] += rl[1:]
			continue
		}
		lines = append(lines, rl)
	}
	return lines
}

// FoldLine applies RFC 5545 line folding to a single logical line: the
// first 75 octets stand unmodified, and every subsequent 74-octet chunk is
// preceded by CRLF and a single leading space. Split points are never
// placed inside a multi-byte UTF-8 sequence, per RFC 5545's folding rule.
func FoldLine(line string) string {
	if len(line) <= 75 {
		return line
	}
	var b strings.Builder
	n := safeSplit(line, 75)
	b.WriteString(line[:n])
	rest := line[n:]
	for len(rest) > 0 {
		n := safeSplit(rest, 74)
		b.WriteString("\r\n ")
		b.WriteString(rest[:n])
		rest = rest[n:]
	}
	return b.String()
}

// safeSplit returns the largest index <= max (and <= len(s)) that doesn't
// fall inside a UTF-8 multi-byte sequence, walking back from max to the
// start of the rune it landed in.
func safeSplit(s string, max int) int {
	if max >= len(s) {
		return len(s)
	}
	i := max
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	if i == 0 {
		return max
	}
	return i
}

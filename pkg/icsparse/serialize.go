package icsparse

import "sort"

// OutputEvent is the calendar-level view the serializer needs of a
// normalized event: its identity for ordering, and its already-rendered
// output lines (no BEGIN/END fold applied yet).
type OutputEvent struct {
	StableUID    string
	RecurrenceID string
	IsException  bool
	Lines        []string
}

// OutputCalendar is everything the serializer assembles into final bytes.
type OutputCalendar struct {
	Header          []string
	InjectedTZBlock string // "" if none needed
	TimezoneBlocks  []string
	Events          []OutputEvent
	Footer          []string
}

// Serialize emits the canonical feed: header lines unmodified, the
// injected default-zone VTIMEZONE (if any), existing VTIMEZONE blocks,
// events ordered masters-then-exceptions, then the footer — with RFC 5545
// line folding and CRLF termination applied throughout.
func Serialize(cal OutputCalendar) []byte {
	ordered := make([]OutputEvent, len(cal.Events))
	copy(ordered, cal.Events)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.IsException != b.IsException {
			return !a.IsException
		}
		if a.StableUID != b.StableUID {
			return a.StableUID < b.StableUID
		}
		return a.RecurrenceID < b.RecurrenceID
	})

	var lines []string
	lines = append(lines, cal.Header...)
	if cal.InjectedTZBlock != "" {
		lines = append(lines, splitBlock(cal.InjectedTZBlock)...)
	}
	for _, tz := range cal.TimezoneBlocks {
		lines = append(lines, splitBlock(tz)...)
	}
	for _, ev := range ordered {
		lines = append(lines, ev.Lines...)
	}
	lines = append(lines, cal.Footer...)

	var out []byte
	for _, l := range lines {
		out = append(out, []byte(FoldLine(l))...)
		out = append(out, '\r', '\n')
	}
	return out
}

func splitBlock(raw string) []string {
	var lines []string
	start := 0
	for i := 0; i+1 < len(raw); i++ {
		if raw[i] == '\r' && raw[i+1] == '\n' {
			lines = append(lines, raw[start:i])
			start = i + 2
			i++
		}
	}
	lines = append(lines, raw[start:])
	return lines
}

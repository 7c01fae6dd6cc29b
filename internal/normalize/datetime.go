package normalize

import (
	"sort"
	"strings"
)

// dtClass is the three-way classification of a datetime value.
type dtClass int

const (
	classDateOnly dtClass = iota
	classUTC
	classFloating
)

func classify(value string) dtClass {
	if !strings.Contains(value, "T") {
		return classDateOnly
	}
	if strings.HasSuffix(value, "Z") {
		return classUTC
	}
	return classFloating
}

// rewriteDateTime renders a single DTSTART/DTEND/RECURRENCE-ID-shaped
// property. defaultTZ is the zone used when the value is floating and
// carries no TZID parameter of its own: the tenant default for
// DTSTART/DTEND/RECURRENCE-ID, UTC for DTSTAMP/CREATED/LAST-MODIFIED.
func rewriteDateTime(name, value, paramTZID, defaultTZ string) string {
	switch classify(value) {
	case classDateOnly:
		return name + ";VALUE=DATE:" + value
	case classUTC:
		return name + ":" + value
	default:
		tz := defaultTZ
		if paramTZID != "" {
			tz = MapTZID(paramTZID)
		}
		return name + ";TZID=" + tz + ":" + value
	}
}

// rewriteDateList renders an EXDATE/RDATE-shaped comma-separated property.
// Each entry is classified independently; the full list is then sorted
// lexicographically (ASCII) before joining. The property carries TZID= if
// any entry is floating, or VALUE=DATE if every entry is date-only.
func rewriteDateList(name, value, paramTZID, defaultTZ string) string {
	rawEntries := strings.Split(value, ",")
	entries := make([]string, 0, len(rawEntries))
	allDateOnly := true
	anyFloating := false
	for _, e := range rawEntries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		switch classify(e) {
		case classDateOnly:
			// allDateOnly stays true
		case classUTC:
			allDateOnly = false
		default:
			allDateOnly = false
			anyFloating = true
		}
		entries = append(entries, e)
	}

	sort.Strings(entries)
	joined := strings.Join(entries, ",")

	switch {
	case allDateOnly:
		return name + ";VALUE=DATE:" + joined
	case anyFloating:
		tz := defaultTZ
		if paramTZID != "" {
			tz = MapTZID(paramTZID)
		}
		return name + ";TZID=" + tz + ":" + joined
	default:
		return name + ":" + joined
	}
}

package normalize

import "strings"

// canonicalOrder is the fixed emission order for recognized property
// names. Properties not in this list follow in their original relative
// order; X-prefixed properties slot in immediately after CLASS.
var canonicalOrder = []string{
	"DTSTAMP", "DTSTART", "DTEND", "SUMMARY", "DESCRIPTION", "LOCATION",
	"STATUS", "ORGANIZER", "ATTENDEE", "RECURRENCE-ID", "RRULE", "EXDATE",
	"RDATE", "CREATED", "LAST-MODIFIED", "CATEGORIES", "PRIORITY",
	"TRANSP", "CLASS",
}

var orderIndex = func() map[string]int {
	m := make(map[string]int, len(canonicalOrder))
	for i, name := range canonicalOrder {
		m[name] = i
	}
	return m
}()

const (
	priorityX       = len(canonicalOrder)
	priorityUnknown = len(canonicalOrder) + 1
)

// priorityOf returns the sort key for a property name: its index in
// canonicalOrder, or priorityX for X-prefixed names, or priorityUnknown
// for anything else.
func priorityOf(name string) int {
	if i, ok := orderIndex[name]; ok {
		return i
	}
	if strings.HasPrefix(name, "X-") {
		return priorityX
	}
	return priorityUnknown
}

package normalize

import "fmt"

// BuildCancellation synthesizes the VEVENT emitted for an event-key that
// vanished from the current upstream parse: STATUS:CANCELLED, a fresh
// sequence, and a DTSTART mirroring the recurrence-id (for exception
// overrides) or the cancellation's own timestamp (for masters).
func BuildCancellation(stableUID, recurrenceID string, sequence int64, dtstamp string) Event {
	lines := []string{
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:%s@calproxy", stableUID),
		fmt.Sprintf("SEQUENCE:%d", sequence),
		"DTSTAMP:" + dtstamp,
	}
	if recurrenceID != "" {
		lines = append(lines, "DTSTART:"+recurrenceID)
	} else {
		lines = append(lines, "DTSTART:"+dtstamp)
	}
	lines = append(lines, "SUMMARY:Cancelled Event", "STATUS:CANCELLED")
	if recurrenceID != "" {
		lines = append(lines, "RECURRENCE-ID:"+recurrenceID)
	}
	lines = append(lines, "END:VEVENT")

	return Event{
		StableUID:    stableUID,
		Sequence:     sequence,
		IsException:  recurrenceID != "",
		RecurrenceID: recurrenceID,
		Lines:        lines,
	}
}

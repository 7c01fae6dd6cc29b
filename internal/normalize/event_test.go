package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calproxy/calproxy/pkg/icsparse"
)

func TestNormalizeEvent_UIDAndSequenceAlwaysFirst(t *testing.T) {
	ev := icsparse.Event{
		UID: "upstream-uid",
		Properties: []icsparse.Property{
			{Name: "UID", Value: "upstream-uid"},
			{Name: "SUMMARY", Value: "Sync"},
			{Name: "DTSTART", Value: "20260115T090000"},
			{Name: "SEQUENCE", Value: "7"},
		},
	}

	out := NormalizeEvent(ev, "stable-1", 3, "America/New_York")

	require.GreaterOrEqual(t, len(out.Lines), 4)
	assert.Equal(t, "BEGIN:VEVENT", out.Lines[0])
	assert.Equal(t, "UID:stable-1@calproxy", out.Lines[1])
	assert.Equal(t, "SEQUENCE:3", out.Lines[2])
	assert.Equal(t, "END:VEVENT", out.Lines[len(out.Lines)-1])

	// The upstream SEQUENCE value must never leak through as a second
	// SEQUENCE line.
	var seqCount int
	for _, l := range out.Lines {
		if strings.HasPrefix(l, "SEQUENCE:") {
			seqCount++
		}
	}
	assert.Equal(t, 1, seqCount)
}

func TestNormalizeEvent_PropertiesFollowCanonicalOrder(t *testing.T) {
	ev := icsparse.Event{
		Properties: []icsparse.Property{
			{Name: "LOCATION", Value: "Room 5"},
			{Name: "SUMMARY", Value: "Sync"},
			{Name: "DTSTART", Value: "20260115T090000Z"},
		},
	}

	out := NormalizeEvent(ev, "stable-1", 0, "America/New_York")

	idxOf := func(prefix string) int {
		for i, l := range out.Lines {
			if strings.HasPrefix(l, prefix) {
				return i
			}
		}
		return -1
	}

	assert.Less(t, idxOf("DTSTART"), idxOf("SUMMARY"))
	assert.Less(t, idxOf("SUMMARY"), idxOf("LOCATION"))
}

func TestNormalizeEvent_RecurrenceOverrideMarkedAsException(t *testing.T) {
	ev := icsparse.Event{
		Properties: []icsparse.Property{
			{Name: "RECURRENCE-ID", Value: "20260115T090000Z"},
			{Name: "SUMMARY", Value: "Moved instance"},
		},
	}

	out := NormalizeEvent(ev, "stable-1", 0, "America/New_York")
	assert.True(t, out.IsException)
	assert.Equal(t, "20260115T090000Z", out.RecurrenceID)
}

func TestNormalizeEvent_UnrecognizedPropertyTZIDIsMapped(t *testing.T) {
	ev := icsparse.Event{
		Properties: []icsparse.Property{
			{Name: "X-CUSTOM-REMINDER", Params: map[string]string{"TZID": "Pacific Standard Time"}, Value: "20260115T090000"},
		},
	}

	out := NormalizeEvent(ev, "stable-1", 0, "America/New_York")
	var found bool
	for _, l := range out.Lines {
		if strings.Contains(l, "X-CUSTOM-REMINDER") {
			found = true
			assert.Contains(t, l, "TZID=America/Los_Angeles")
		}
	}
	assert.True(t, found)
}

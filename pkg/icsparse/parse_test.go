package icsparse

import (
	_ "embed"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/valid_calendar.ics
var validCalendarInput []byte

//go:embed testdata/empty_calendar.ics
var emptyCalendarInput []byte

func TestParse_ValidCalendar(t *testing.T) {
	cal, err := Parse(validCalendarInput)
	require.NoError(t, err)
	require.True(t, cal.HasEvents)

	assert.Len(t, cal.Timezones, 1)
	assert.Contains(t, cal.Timezones[0], "TZID:Eastern Standard Time")

	require.Len(t, cal.Events, 2)
	assert.Equal(t, "abc-123", cal.Events[0].UID)
	assert.Equal(t, "Quarterly sync", cal.Events[0].PropValue("SUMMARY"))

	// The folded continuation line joins into one SUMMARY value; its single
	// leading space is the fold marker and is removed.
	assert.Equal(t, "Design reviewcontinues here", cal.Events[1].PropValue("SUMMARY"))

	assert.Contains(t, cal.Header, "VERSION:2.0")
	assert.Contains(t, cal.Footer, "END:VCALENDAR")
}

func TestParse_EmptyCalendar(t *testing.T) {
	cal, err := Parse(emptyCalendarInput)
	require.NoError(t, err)
	assert.False(t, cal.HasEvents)
	assert.Empty(t, cal.Events)
}

func TestParse_MissingVCalendar(t *testing.T) {
	_, err := Parse([]byte("VERSION:2.0\r\nEND:VCALENDAR\r\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingVCalendar))
}

func TestParse_MalformedLineIsSkippedNotFatal(t *testing.T) {
	raw := []byte("BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:ok-1\r\n" +
		"NOCOLONHERE\r\n" +
		"SUMMARY:fine\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n")

	cal, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, cal.Events, 1)
	assert.Equal(t, "fine", cal.Events[0].PropValue("SUMMARY"))
}

func TestParse_EventWithNestedVAlarmIsNotClosedEarly(t *testing.T) {
	raw := []byte("BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:with-alarm\r\n" +
		"SUMMARY:Has a reminder\r\n" +
		"BEGIN:VALARM\r\n" +
		"ACTION:DISPLAY\r\n" +
		"TRIGGER:-PT15M\r\n" +
		"END:VALARM\r\n" +
		"LOCATION:Room 1\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n")

	cal, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, cal.Events, 1)
	assert.Equal(t, "with-alarm", cal.Events[0].UID)
	assert.Equal(t, "Has a reminder", cal.Events[0].PropValue("SUMMARY"))
	assert.Equal(t, "Room 1", cal.Events[0].PropValue("LOCATION"))
}

func TestEvent_PropValue_Absent(t *testing.T) {
	ev := Event{}
	assert.Equal(t, "", ev.PropValue("SUMMARY"))
	_, ok := ev.Prop("SUMMARY")
	assert.False(t, ok)
}

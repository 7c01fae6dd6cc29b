package icsparse

import (
	"errors"
	"strings"
)

// ErrMissingVCalendar is returned when the upstream bytes never contain a
// BEGIN:VCALENDAR line anywhere. This is the upstream-invalid condition.
var ErrMissingVCalendar = errors.New("icsparse: missing BEGIN:VCALENDAR")

type blockState int

const (
	stateHeader blockState = iota
	stateTimezone
	stateEvent
)

// Parse runs the block-extraction state machine over raw upstream bytes,
// producing a Calendar. Parsing is permissive: malformed individual lines
// are skipped and unrecognized property names are preserved unchanged.
// The only fatal condition is a wholly absent BEGIN:VCALENDAR.
func Parse(raw []byte) (*Calendar, error) {
	lines := UnfoldLines(raw)

	if !containsVCalendarBegin(lines) {
		return nil, ErrMissingVCalendar
	}

	cal := &Calendar{}

	state := stateHeader
	headerDone := false
	var tzBuf []string
	var evBuf []string
	var evProps []Property
	var evUID string

	for _, line := range lines {
		switch {
		case line == "BEGIN:VTIMEZONE" && state == stateHeader:
			state = stateTimezone
			tzBuf = []string{line}
			continue
		case line == "BEGIN:VEVENT":
			state = stateEvent
			headerDone = true
			evBuf = []string{line}
			evProps = nil
			evUID = ""
			continue
		}

		switch state {
		case stateTimezone:
			tzBuf = append(tzBuf, line)
			if line == "END:VTIMEZONE" {
				cal.Timezones = append(cal.Timezones, strings.Join(tzBuf, "\r\n"))
				tzBuf = nil
				state = stateHeader
			}
		case stateEvent:
			evBuf = append(evBuf, line)
			if line == "END:VEVENT" {
				cal.Events = append(cal.Events, Event{
					Properties: evProps,
					UID:        evUID,
					RawLines:   evBuf,
				})
				cal.HasEvents = true
				evBuf = nil
				evProps = nil
				evUID = ""
				state = stateHeader
				continue
			}
			if prop, ok := ParseProperty(line); ok {
				evProps = append(evProps, prop)
				if prop.Name == "UID" {
					evUID = prop.Value
				}
			}
		case stateHeader:
			if !headerDone {
				cal.Header = append(cal.Header, line)
			} else if line == "END:VCALENDAR" {
				cal.Footer = append(cal.Footer, line)
			}
			// else: dropped. A calendar-level property appearing after the
			// first VEVENT has no slot in the output (see DESIGN.md).
		}
	}

	return cal, nil
}

func containsVCalendarBegin(lines []string) bool {
	for _, l := range lines {
		if l == "BEGIN:VCALENDAR" {
			return true
		}
	}
	return false
}

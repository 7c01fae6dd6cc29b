package icsparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProperty(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantOK    bool
		wantProp  Property
	}{
		{
			name:   "simple",
			line:   "SUMMARY:Quarterly sync",
			wantOK: true,
			wantProp: Property{
				Name:  "SUMMARY",
				Value: "Quarterly sync",
			},
		},
		{
			name:   "with single param",
			line:   "DTSTART;TZID=Eastern Standard Time:20260115T090000",
			wantOK: true,
			wantProp: Property{
				Name:   "DTSTART",
				Params: map[string]string{"TZID": "Eastern Standard Time"},
				Value:  "20260115T090000",
			},
		},
		{
			name:   "with multiple params",
			line:   "ATTENDEE;CN=Alice;ROLE=REQ-PARTICIPANT:mailto:alice@example.com",
			wantOK: true,
			wantProp: Property{
				Name:   "ATTENDEE",
				Params: map[string]string{"CN": "Alice", "ROLE": "REQ-PARTICIPANT"},
				Value:  "mailto:alice@example.com",
			},
		},
		{
			name:   "escaped colon in value is not the split point",
			line:   `SUMMARY:Time is 9\:00`,
			wantOK: true,
			wantProp: Property{
				Name:  "SUMMARY",
				Value: "Time is 9:00",
			},
		},
		{
			name:   "no colon",
			line:   "BEGIN",
			wantOK: false,
		},
		{
			name:   "empty name",
			line:   ":value",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseProperty(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantProp.Name, got.Name)
			assert.Equal(t, tt.wantProp.Value, got.Value)
			if tt.wantProp.Params == nil {
				assert.Empty(t, got.Params)
			} else {
				assert.Equal(t, tt.wantProp.Params, got.Params)
			}
		})
	}
}

func TestUnescapeValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"newline", `line one\nline two`, "line one\nline two"},
		{"backslash", `a\\b`, `a\b`},
		{"escaped semicolon", `a\;b`, "a;b"},
		{"escaped comma", `a\,b`, "a,b"},
		{"no escapes", "plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unescapeValue(tt.in))
		})
	}
}

func TestSerializeProperty(t *testing.T) {
	p := Property{
		Name:   "ATTENDEE",
		Params: map[string]string{"ROLE": "REQ-PARTICIPANT", "CN": "Alice"},
		Value:  "mailto:alice@example.com",
	}
	got := SerializeProperty(p)
	assert.Equal(t, "ATTENDEE;CN=Alice;ROLE=REQ-PARTICIPANT:mailto:alice@example.com", got)
}

func TestSerializeProperty_NoParams(t *testing.T) {
	p := Property{Name: "SUMMARY", Value: "hello"}
	assert.Equal(t, "SUMMARY:hello", SerializeProperty(p))
}

func TestEscapeValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"newline", "line one\nline two", `line one\nline two`},
		{"backslash", `a\b`, `a\\b`},
		{"semicolon", "a;b", `a\;b`},
		{"comma", "a,b", `a\,b`},
		{"no escapes needed", "plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeValue(tt.in))
		})
	}
}

func TestSerializeProperty_EscapesValue(t *testing.T) {
	p := Property{Name: "DESCRIPTION", Value: "line1\nline2; with, punctuation"}
	got := SerializeProperty(p)
	assert.Equal(t, `DESCRIPTION:line1\nline2\; with\, punctuation`, got)
}

func TestParseProperty_SerializeProperty_RoundTripsEscapedValue(t *testing.T) {
	original := "Design review\nagenda: budget, timeline; next steps\\done"
	line := SerializeProperty(Property{Name: "DESCRIPTION", Value: original})

	got, ok := ParseProperty(line)
	require.True(t, ok)
	assert.Equal(t, original, got.Value)
}

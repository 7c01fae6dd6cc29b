// Package icsparse implements a permissive iCalendar lexer, parser and
// serializer: line unfolding/folding, content-line tokenization, and
// BEGIN/END block extraction into a calendar's header, VTIMEZONE blocks,
// VEVENT blocks and footer.
package icsparse

// Property is a single content-line's (name, parameters, value) triple.
// Name is uppercased; parameter names are uppercased; values are kept
// unescaped but otherwise verbatim.
type Property struct {
	Name   string
	Params map[string]string
	Value  string
}

// Param looks up a parameter by uppercased name, returning "" if absent.
func (p Property) Param(name string) string {
	if p.Params == nil {
		return ""
	}
	return p.Params[name]
}

// Event is a parsed VEVENT block: an ordered property list plus the
// verbatim upstream UID value, if any. RawLines is retained for
// diagnostics only; all downstream logic works off Properties.
type Event struct {
	Properties []Property
	UID        string
	RawLines   []string
}

// Prop returns the first property with the given name, if present.
func (e Event) Prop(name string) (Property, bool) {
	for _, p := range e.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// PropValue returns the value of the first property with the given name,
// or "" if absent.
func (e Event) PropValue(name string) string {
	p, ok := e.Prop(name)
	if !ok {
		return ""
	}
	return p.Value
}

// Calendar is a parsed VCALENDAR: four ordered sequences as described by
// the block-extraction state machine in the parser design.
type Calendar struct {
	Header    []string
	Timezones []string // raw text of each VTIMEZONE block, BEGIN..END inclusive
	Events    []Event
	Footer    []string
	HasEvents bool // false signals the upstream-empty condition
}

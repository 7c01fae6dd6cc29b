// Package normalize rewrites parsed event properties and reorders them
// into the canonical line list the consumer calendar tolerates: timezone
// identifier rewriting, datetime canonicalization, the one RRULE rewrite
// rule, and a fixed property emission order.
package normalize

import (
	"fmt"
	"sort"

	"github.com/calproxy/calproxy/pkg/icsparse"
)

// dateTimeProps and dateListProps are the closed tagged-variant of
// recognized property names; everything else falls to the generic
// catch-all reconstruction.
var dateTimeProps = map[string]bool{
	"DTSTART": true, "DTEND": true, "RECURRENCE-ID": true,
	"DTSTAMP": true, "CREATED": true, "LAST-MODIFIED": true,
}

// utcDefaultProps default to UTC rather than the tenant zone when a value
// is floating and carries no TZID parameter of its own.
var utcDefaultProps = map[string]bool{
	"DTSTAMP": true, "CREATED": true, "LAST-MODIFIED": true,
}

var dateListProps = map[string]bool{"EXDATE": true, "RDATE": true}

// Event is the normalized, ready-to-emit form of a VEVENT: the stable
// identity assigned by the reconciler, plus the canonical output lines for
// everything between BEGIN:VEVENT and END:VEVENT inclusive.
type Event struct {
	StableUID    string
	Sequence     int64
	IsException  bool
	RecurrenceID string
	Lines        []string
}

type orderedLine struct {
	priority int
	index    int
	line     string
}

// NormalizeEvent rewrites a parsed event's properties and assembles the
// canonical VEVENT line list: UID and SEQUENCE are always the first two
// lines, overriding any upstream values.
func NormalizeEvent(ev icsparse.Event, stableUID string, sequence int64, tenantDefaultTZ string) Event {
	recurrenceID := ev.PropValue("RECURRENCE-ID")

	lines := []string{
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:%s@calproxy", stableUID),
		fmt.Sprintf("SEQUENCE:%d", sequence),
	}

	var ordered []orderedLine
	for i, p := range ev.Properties {
		if p.Name == "UID" || p.Name == "SEQUENCE" {
			continue
		}
		ordered = append(ordered, orderedLine{
			priority: priorityOf(p.Name),
			index:    i,
			line:     renderProperty(p, tenantDefaultTZ),
		})
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].priority != ordered[j].priority {
			return ordered[i].priority < ordered[j].priority
		}
		return ordered[i].index < ordered[j].index
	})

	for _, o := range ordered {
		lines = append(lines, o.line)
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

func renderProperty(p icsparse.Property, tenantDefaultTZ string) string {
	switch {
	case dateTimeProps[p.Name]:
		defaultTZ := tenantDefaultTZ
		if utcDefaultProps[p.Name] {
			defaultTZ = "UTC"
		}
		return rewriteDateTime(p.Name, p.Value, p.Param("TZID"), defaultTZ)
	case dateListProps[p.Name]:
		return rewriteDateList(p.Name, p.Value, p.Param("TZID"), tenantDefaultTZ)
	case p.Name == "RRULE":
		return "RRULE:" + rewriteRRule(p.Value)
	default:
		return icsparse.SerializeProperty(withMappedTZID(p))
	}
}

// withMappedTZID rewrites a catch-all property's TZID parameter, if any,
// through the vendor-identifier mapping — TZID appears on ATTENDEE-adjacent
// and other pass-through properties too, not only on the closed set.
func withMappedTZID(p icsparse.Property) icsparse.Property {
	tz := p.Param("TZID")
	if tz == "" {
		return p
	}
	mapped := make(map[string]string, len(p.Params))
	for k, v := range p.Params {
		mapped[k] = v
	}
	mapped["TZID"] = MapTZID(tz)
	p.Params = mapped
	return p
}

package normalize

import (
	"strings"

	"github.com/calproxy/calproxy/pkg/icsparse"
)

// RewriteVTimezoneBlock rewrites the TZID: property of a raw VTIMEZONE
// block, and any TZID= parameter found on lines within it, through the
// vendor-identifier mapping. The block is otherwise passed through
// unchanged.
func RewriteVTimezoneBlock(raw string) string {
	lines := strings.Split(raw, "\r\n")
	for i, line := range lines {
		prop, ok := icsparse.ParseProperty(line)
		if !ok {
			continue
		}
		changed := false
		if prop.Name == "TZID" {
			prop.Value = MapTZID(prop.Value)
			changed = true
		}
		if tz := prop.Param("TZID"); tz != "" {
			prop = withMappedTZID(prop)
			changed = true
		}
		if changed {
			lines[i] = icsparse.SerializeProperty(prop)
		}
	}
	return strings.Join(lines, "\r\n")
}

// BlockDeclaresTZID reports whether a (already-rewritten) raw VTIMEZONE
// block's TZID: property equals tzid.
func BlockDeclaresTZID(raw, tzid string) bool {
	for _, line := range strings.Split(raw, "\r\n") {
		prop, ok := icsparse.ParseProperty(line)
		if ok && prop.Name == "TZID" && prop.Value == tzid {
			return true
		}
	}
	return false
}

// usDSTTemplate renders a fixed VTIMEZONE block for a US zone observing
// the post-2007 second-Sunday-in-March / first-Sunday-in-November DST
// rule, at the given standard/daylight UTC offsets and abbreviations.
func usDSTTemplate(tzid, stdOffset, dstOffset, stdName, dstName string) string {
	return strings.Join([]string{
		"BEGIN:VTIMEZONE",
		"TZID:" + tzid,
		"BEGIN:DAYLIGHT",
		"TZOFFSETFROM:" + stdOffset,
		"TZOFFSETTO:" + dstOffset,
		"TZNAME:" + dstName,
		"DTSTART:19700308T020000",
		"RRULE:FREQ=YEARLY;BYMONTH=3;BYDAY=2SU",
		"END:DAYLIGHT",
		"BEGIN:STANDARD",
		"TZOFFSETFROM:" + dstOffset,
		"TZOFFSETTO:" + stdOffset,
		"TZNAME:" + stdName,
		"DTSTART:19701101T020000",
		"RRULE:FREQ=YEARLY;BYMONTH=11;BYDAY=1SU",
		"END:STANDARD",
		"END:VTIMEZONE",
	}, "\r\n")
}

func placeholderTemplate(tzid string) string {
	return strings.Join([]string{
		"BEGIN:VTIMEZONE",
		"TZID:" + tzid,
		"BEGIN:STANDARD",
		"TZOFFSETFROM:+0000",
		"TZOFFSETTO:+0000",
		"DTSTART:19700101T000000",
		"END:STANDARD",
		"END:VTIMEZONE",
	}, "\r\n")
}

// InjectedVTimezoneTemplate returns the canonical VTIMEZONE block text for
// the tenant's default zone, used when no existing block already declares
// it. Common North-American zones get a correct DST-aware template; any
// other zone gets a minimal flat-offset placeholder.
func InjectedVTimezoneTemplate(tzid string) string {
	switch tzid {
	case "America/New_York", "America/Indiana/Indianapolis":
		return usDSTTemplate(tzid, "-0500", "-0400", "EST", "EDT")
	case "America/Chicago":
		return usDSTTemplate(tzid, "-0600", "-0500", "CST", "CDT")
	case "America/Los_Angeles":
		return usDSTTemplate(tzid, "-0800", "-0700", "PST", "PDT")
	default:
		return placeholderTemplate(tzid)
	}
}

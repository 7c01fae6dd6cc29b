// Package identity derives the stable identifiers the reconciler keys its
// state on: a hash-derived stable-uid emitted in place of the upstream UID, a content-hash
// detecting real changes, and the composite event-key used for recurrence
// overrides.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/calproxy/calproxy/pkg/icsparse"
)

// volatile holds the property names excluded from the content hash: they
// change on every upstream poll without reflecting a real edit.
var volatile = map[string]bool{
	"DTSTAMP":       true,
	"LAST-MODIFIED": true,
	"SEQUENCE":      true,
}

// StableUID computes the synthetic identifier emitted in place of the
// upstream UID: the first 16 bytes of SHA-256 over "DTSTART|SUMMARY|ORGANIZER|UID"
// (original, pre-normalization values), rendered as 32 lowercase hex
// characters.
func StableUID(ev icsparse.Event) string {
	parts := []string{
		ev.PropValue("DTSTART"),
		ev.PropValue("SUMMARY"),
		ev.PropValue("ORGANIZER"),
		ev.UID,
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:16])
}

// ContentHash computes a fingerprint over the event's non-volatile
// properties: each serialized as "NAME:VALUE" (parameters excluded), the
// resulting list sorted lexicographically and joined with "\n", hashed
// with SHA-256 and rendered as 64 lowercase hex characters.
func ContentHash(ev icsparse.Event) string {
	lines := make([]string, 0, len(ev.Properties))
	for _, p := range ev.Properties {
		if volatile[p.Name] {
			continue
		}
		lines = append(lines, p.Name+":"+p.Value)
	}
	sort.Strings(lines)
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

// RecurrenceIDValue returns the event's verbatim RECURRENCE-ID value, or
// "" if the event carries none (i.e. it is a recurrence master, not an
// exception/override).
func RecurrenceIDValue(ev icsparse.Event) string {
	return ev.PropValue("RECURRENCE-ID")
}

// EventKey is the stable-uid for master events, or "<stable-uid>#<rid>"
// for exception/override events, where rid is the verbatim upstream
// RECURRENCE-ID value. The key is textual, not semantic: it does not
// account for TZID-driven reinterpretation of that value across runs.
func EventKey(stableUID, recurrenceID string) string {
	if recurrenceID == "" {
		return stableUID
	}
	return stableUID + "#" + recurrenceID
}

// SplitEventKey reverses EventKey, recovering the stable-uid and (if any)
// recurrence-id value a key was built from.
func SplitEventKey(key string) (stableUID, recurrenceID string) {
	if i := strings.IndexByte(key, '#'); i >= 0 {
		return key[:i], key[i+1:]
	}
	return key, ""
}

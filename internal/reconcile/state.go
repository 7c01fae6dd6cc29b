// Package reconcile implements the state-backed reconciliation algorithm:
// per-event sequence derivation against stored content hashes, and
// synthesis of cancellation records for event-keys that vanish from the
// upstream feed between runs.
package reconcile

import (
	"encoding/json"
)

// EventState is the persisted per-event-key record.
type EventState struct {
	Sequence    int64  `json:"sequence"`
	ContentHash string `json:"contentHash"`
	LastSeen    int64  `json:"lastSeen"`
}

// cancelledSentinel is the content-hash value written after synthesizing a
// cancellation, so that a subsequent reappearance re-increments normally
// rather than comparing equal to whatever hash preceded the deletion.
const cancelledSentinel = "CANCELLED"

func (s EventState) marshal() string {
	b, _ := json.Marshal(s)
	return string(b)
}

func unmarshalEventState(raw string) (EventState, bool) {
	var s EventState
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return EventState{}, false
	}
	return s, true
}

// SnapshotKeys is the persisted set of event-keys observed on the most
// recent successful run.
type SnapshotKeys struct {
	EventKeys   []string `json:"eventKeys"`
	GeneratedAt int64    `json:"generatedAt"`
}

func (s SnapshotKeys) marshal() string {
	b, _ := json.Marshal(s)
	return string(b)
}

func unmarshalSnapshotKeys(raw string) (SnapshotKeys, bool) {
	var s SnapshotKeys
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return SnapshotKeys{}, false
	}
	return s, true
}

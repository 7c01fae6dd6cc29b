package reconcile

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/calproxy/calproxy/internal/identity"
	"github.com/calproxy/calproxy/internal/statestore"
	"github.com/calproxy/calproxy/pkg/icsparse"
)

// LiveEvent is a parsed event that survived reconciliation, carrying the
// sequence number the state store assigned it.
type LiveEvent struct {
	EventKey     string
	StableUID    string
	RecurrenceID string
	Parsed       icsparse.Event
	Sequence     int64
}

// Cancellation is a synthesized record for an event-key that disappeared
// from the current parse but still has a state record.
type Cancellation struct {
	EventKey     string
	StableUID    string
	RecurrenceID string
	Sequence     int64
}

// Result is the reconciler's output: the live events ready for
// normalization, and any synthesized cancellations.
type Result struct {
	Live          []LiveEvent
	Cancellations []Cancellation
}

// Reconciler drives per-event state transitions and cancellation synthesis
// against a statestore.Store, scoped to one tenant.
type Reconciler struct {
	store  statestore.Store
	keys   statestore.Keys
	logger zerolog.Logger
}

func New(store statestore.Store, tenant string, logger zerolog.Logger) *Reconciler {
	return &Reconciler{store: store, keys: statestore.Keys{Tenant: tenant}, logger: logger}
}

// Reconcile processes parsed events in feed order (state reads/writes are
// sequential so sequence derivation is deterministic within a run), then
// synthesizes cancellations for any previously-snapshotted key absent from
// the current parse.
func (r *Reconciler) Reconcile(ctx context.Context, events []icsparse.Event, nowMillis int64, cancelDTStamp string) (*Result, error) {
	res := &Result{}
	currentKeys := make(map[string]bool, len(events))

	for _, ev := range events {
		stableUID := identity.StableUID(ev)
		recurrenceID := identity.RecurrenceIDValue(ev)
		eventKey := identity.EventKey(stableUID, recurrenceID)
		contentHash := identity.ContentHash(ev)

		prior, hasPrior := r.loadState(ctx, eventKey)

		var seq int64
		switch {
		case !hasPrior:
			seq = 0
		case prior.ContentHash == contentHash:
			seq = prior.Sequence
		default:
			seq = prior.Sequence + 1
		}

		r.putState(ctx, eventKey, EventState{Sequence: seq, ContentHash: contentHash, LastSeen: nowMillis})

		currentKeys[eventKey] = true
		res.Live = append(res.Live, LiveEvent{
			EventKey:     eventKey,
			StableUID:    stableUID,
			RecurrenceID: recurrenceID,
			Parsed:       ev,
			Sequence:     seq,
		})
	}

	prevSnapshot, hasSnapshot := r.loadSnapshot(ctx)
	if hasSnapshot {
		disappeared := make([]string, 0)
		for _, k := range prevSnapshot.EventKeys {
			if !currentKeys[k] {
				disappeared = append(disappeared, k)
			}
		}
		sort.Strings(disappeared)

		for _, key := range disappeared {
			prior, hasPrior := r.loadState(ctx, key)
			if !hasPrior {
				continue
			}
			newSeq := prior.Sequence + 1
			r.putState(ctx, key, EventState{Sequence: newSeq, ContentHash: cancelledSentinel, LastSeen: nowMillis})

			stableUID, recurrenceID := identity.SplitEventKey(key)
			res.Cancellations = append(res.Cancellations, Cancellation{
				EventKey:     key,
				StableUID:    stableUID,
				RecurrenceID: recurrenceID,
				Sequence:     newSeq,
			})
		}
	}

	newKeys := make([]string, 0, len(currentKeys))
	for k := range currentKeys {
		newKeys = append(newKeys, k)
	}
	sort.Strings(newKeys)
	r.putSnapshot(ctx, SnapshotKeys{EventKeys: newKeys, GeneratedAt: nowMillis})

	return res, nil
}

func (r *Reconciler) loadState(ctx context.Context, eventKey string) (EventState, bool) {
	raw, ok, err := r.store.Get(ctx, r.keys.Event(eventKey))
	if err != nil || !ok {
		return EventState{}, false
	}
	return unmarshalEventState(raw)
}

func (r *Reconciler) putState(ctx context.Context, eventKey string, s EventState) {
	if err := r.store.Put(ctx, r.keys.Event(eventKey), s.marshal()); err != nil {
		r.logger.Warn().Err(err).Str("event_key", eventKey).Msg("reconcile: state write dropped")
	}
}

func (r *Reconciler) loadSnapshot(ctx context.Context) (SnapshotKeys, bool) {
	raw, ok, err := r.store.Get(ctx, r.keys.SnapshotKeys())
	if err != nil || !ok {
		return SnapshotKeys{}, false
	}
	return unmarshalSnapshotKeys(raw)
}

func (r *Reconciler) putSnapshot(ctx context.Context, s SnapshotKeys) {
	if err := r.store.Put(ctx, r.keys.SnapshotKeys(), s.marshal()); err != nil {
		r.logger.Warn().Err(err).Msg("reconcile: snapshot write dropped")
	}
}

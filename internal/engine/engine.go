// Package engine is the pure-function core described in the design notes:
// a single entry point from (raw upstream bytes, tenant-id,
// default-timezone, store handle) to (output bytes, etag,
// side-effects-performed). Everything above it — HTTP fetch, tenant
// lookup, conditional-request handling — is a thin shell.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/calproxy/calproxy/internal/normalize"
	"github.com/calproxy/calproxy/internal/reconcile"
	"github.com/calproxy/calproxy/internal/statestore"
	"github.com/calproxy/calproxy/pkg/icsparse"
)

// Result is the engine's output for a single normalization run.
type Result struct {
	Body      []byte
	ETag      string
	FromCache bool // upstream bytes hash matched the stored hash; parsing was skipped
}

// Engine wires the parser, normalizer, identity function, reconciler and
// serializer together against one tenant's slice of a statestore.Store.
type Engine struct {
	store  statestore.Store
	logger zerolog.Logger
}

func New(store statestore.Store, logger zerolog.Logger) *Engine {
	return &Engine{store: store, logger: logger}
}

// Reconcile runs one end-to-end normalization for tenant, against
// upstream bytes already fetched by the caller. now is injected so the
// reconciler's timestamps and cancellation DTSTAMPs are deterministic to
// test.
func (e *Engine) Reconcile(ctx context.Context, tenant, defaultTZ string, upstream []byte, now time.Time) (res *Result, err error) {
	keys := statestore.Keys{Tenant: tenant}

	defer func() {
		if p := recover(); p != nil {
			e.logger.Error().Interface("panic", p).Str("tenant", tenant).Msg("engine: recovered internal fault")
			if snap, ok := e.loadSnapshotLatest(ctx, keys); ok {
				res, err = &Result{Body: []byte(snap), ETag: etagOf([]byte(snap))}, nil
				return
			}
			res, err = nil, ErrInternal
		}
	}()

	upstreamHash := hashHex(upstream)

	if storedHash, ok, _ := e.store.Get(ctx, keys.SnapshotUpstreamHash()); ok && storedHash == upstreamHash {
		if snap, ok := e.loadSnapshotLatest(ctx, keys); ok {
			return &Result{Body: []byte(snap), ETag: etagOf([]byte(snap)), FromCache: true}, nil
		}
	}

	cal, perr := icsparse.Parse(upstream)
	if perr != nil {
		// upstream-invalid: never overwrite last-known-good.
		if snap, ok := e.loadSnapshotLatest(ctx, keys); ok {
			return &Result{Body: []byte(snap), ETag: etagOf([]byte(snap))}, nil
		}
		return nil, ErrGateway
	}

	if !cal.HasEvents {
		// upstream-empty: fall back if we have something good; otherwise
		// proceed, which will cancel everything in the prior snapshot.
		if snap, ok := e.loadSnapshotLatest(ctx, keys); ok {
			return &Result{Body: []byte(snap), ETag: etagOf([]byte(snap))}, nil
		}
	}

	body, werr := e.normalizeAndReconcile(ctx, tenant, defaultTZ, cal, now)
	if werr != nil {
		if snap, ok := e.loadSnapshotLatest(ctx, keys); ok {
			return &Result{Body: []byte(snap), ETag: etagOf([]byte(snap))}, nil
		}
		return nil, ErrInternal
	}

	etag := etagOf(body)
	_ = e.store.Put(ctx, keys.SnapshotLatest(), string(body))
	_ = e.store.Put(ctx, keys.SnapshotUpstreamHash(), upstreamHash)

	return &Result{Body: body, ETag: etag}, nil
}

// Fallback serves §7's non-2xx / unreachable-upstream path: it never
// parses anything, it only returns the last-known-good snapshot or
// reports that none exists.
func (e *Engine) Fallback(ctx context.Context, tenant string) (*Result, error) {
	keys := statestore.Keys{Tenant: tenant}
	if snap, ok := e.loadSnapshotLatest(ctx, keys); ok {
		return &Result{Body: []byte(snap), ETag: etagOf([]byte(snap))}, nil
	}
	return nil, ErrGateway
}

func (e *Engine) normalizeAndReconcile(ctx context.Context, tenant, defaultTZ string, cal *icsparse.Calendar, now time.Time) ([]byte, error) {
	recon := reconcile.New(e.store, tenant, e.logger)
	nowMillis := now.UnixMilli()
	dtstamp := now.UTC().Format("20060102T150405Z")

	result, err := recon.Reconcile(ctx, cal.Events, nowMillis, dtstamp)
	if err != nil {
		return nil, err
	}

	var outEvents []icsparse.OutputEvent
	for _, live := range result.Live {
		ne := normalize.NormalizeEvent(live.Parsed, live.StableUID, live.Sequence, defaultTZ)
		outEvents = append(outEvents, toOutputEvent(ne))
	}
	for _, c := range result.Cancellations {
		ne := normalize.BuildCancellation(c.StableUID, c.RecurrenceID, c.Sequence, dtstamp)
		outEvents = append(outEvents, toOutputEvent(ne))
	}

	rewrittenTZ := make([]string, len(cal.Timezones))
	declaresDefault := false
	for i, tz := range cal.Timezones {
		rewritten := normalize.RewriteVTimezoneBlock(tz)
		rewrittenTZ[i] = rewritten
		if normalize.BlockDeclaresTZID(rewritten, defaultTZ) {
			declaresDefault = true
		}
	}

	injected := ""
	if !declaresDefault {
		injected = normalize.InjectedVTimezoneTemplate(defaultTZ)
	}

	out := icsparse.Serialize(icsparse.OutputCalendar{
		Header:          cal.Header,
		InjectedTZBlock: injected,
		TimezoneBlocks:  rewrittenTZ,
		Events:          outEvents,
		Footer:          cal.Footer,
	})

	return out, nil
}

func toOutputEvent(ne normalize.Event) icsparse.OutputEvent {
	return icsparse.OutputEvent{
		StableUID:    ne.StableUID,
		RecurrenceID: ne.RecurrenceID,
		IsException:  ne.IsException,
		Lines:        ne.Lines,
	}
}

func (e *Engine) loadSnapshotLatest(ctx context.Context, keys statestore.Keys) (string, bool) {
	v, ok, err := e.store.Get(ctx, keys.SnapshotLatest())
	if err != nil || !ok {
		return "", false
	}
	return v, true
}

func hashHex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func etagOf(body []byte) string {
	return fmt.Sprintf("%q", hashHex(body))
}

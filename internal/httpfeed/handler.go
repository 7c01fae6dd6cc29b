// Package httpfeed is the thin HTTP shell around the reconciliation core:
// tenant lookup, upstream fetch, conditional-request handling. None of
// this is spec-mandated core logic (§1 draws the line at the engine), but
// it is the shape the teacher repo's internal/dav handlers take — a
// Handlers struct wrapping collaborators, one method per route.
package httpfeed

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/calproxy/calproxy/internal/cache"
	"github.com/calproxy/calproxy/internal/config"
	"github.com/calproxy/calproxy/internal/engine"
	"github.com/calproxy/calproxy/internal/statestore"
	"github.com/calproxy/calproxy/internal/tenant"
	"github.com/calproxy/calproxy/internal/upstreamfetch"
)

type Handlers struct {
	cfg         *config.Config
	engine      *engine.Engine
	tenants     *tenant.Registry
	fetcher     *upstreamfetch.Fetcher
	tenantCache *cache.Cache[string, tenant.Config]
	logger      zerolog.Logger
}

func New(cfg *config.Config, store statestore.Store, logger zerolog.Logger) *Handlers {
	return &Handlers{
		cfg:         cfg,
		engine:      engine.New(store, logger),
		tenants:     tenant.NewRegistry(store),
		fetcher:     upstreamfetch.New(cfg.UpstreamTimeout, cfg.HTTP.MaxICSBytes, logger),
		tenantCache: cache.New[string, tenant.Config](60 * time.Second),
		logger:      logger,
	}
}

func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// HandleFeed serves GET /feed/{tenant}.ics — this is the entire
// downstream interface from §6: normalized ICS text, a SHA-256-derived
// ETag, and Cache-Control: no-store.
func (h *Handlers) HandleFeed(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("tenant")
	if tenantID == "" {
		http.Error(w, "missing tenant", http.StatusNotFound)
		return
	}

	cfg, ok, err := h.lookupTenant(r.Context(), tenantID)
	if err != nil {
		h.logger.Error().Err(err).Str("tenant", tenantID).Msg("httpfeed: tenant lookup failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "unknown tenant", http.StatusNotFound)
		return
	}

	tz := cfg.Timezone
	if tz == "" {
		tz = h.cfg.DefaultTimezone
	}

	result, err := h.fetchAndReconcile(r.Context(), tenantID, tz, cfg.SourceURL)
	if err != nil {
		if errors.Is(err, engine.ErrGateway) {
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == result.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("ETag", result.ETag)
	w.Header().Set("Cache-Control", "no-store")
	w.Write(result.Body)
}

func (h *Handlers) fetchAndReconcile(ctx context.Context, tenantID, tz, sourceURL string) (*engine.Result, error) {
	resp, ferr := h.fetcher.Fetch(ctx, sourceURL)
	if ferr != nil || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if ferr != nil {
			h.logger.Warn().Err(ferr).Str("tenant", tenantID).Msg("httpfeed: upstream fetch failed")
		} else {
			h.logger.Warn().Int("status", resp.StatusCode).Str("tenant", tenantID).Msg("httpfeed: upstream non-2xx")
		}
		return h.engine.Fallback(ctx, tenantID)
	}
	return h.engine.Reconcile(ctx, tenantID, tz, resp.Body, time.Now())
}

func (h *Handlers) lookupTenant(ctx context.Context, tenantID string) (tenant.Config, bool, error) {
	if cfg, ok := h.tenantCache.Get(tenantID); ok {
		return cfg, true, nil
	}
	cfg, ok, err := h.tenants.Get(ctx, tenantID)
	if err != nil || !ok {
		return tenant.Config{}, ok, err
	}
	h.tenantCache.Set(tenantID, cfg, time.Now().Add(60*time.Second))
	return cfg, true, nil
}

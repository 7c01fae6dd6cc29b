package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/calproxy/calproxy/internal/config"
	"github.com/calproxy/calproxy/internal/httpfeed"
)

func New(cfg *config.Config, h *httpfeed.Handlers, logger zerolog.Logger) http.Handler {
	r := &Router{
		config:   cfg,
		handlers: h,
		logger:   logger,
	}

	return r.setupRoutes()
}

func (r *Router) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", r.wrap("healthz", r.handlers.HandleHealth))
	// ServeMux wildcards must fill a whole path segment, so the ".ics"
	// suffix is stripped here before the handler reads the tenant value.
	mux.HandleFunc("GET "+r.config.HTTP.BasePath+"/{tenant}", r.wrap("feed", func(w http.ResponseWriter, req *http.Request) {
		name, ok := strings.CutSuffix(req.PathValue("tenant"), ".ics")
		if !ok {
			http.NotFound(w, req)
			return
		}
		req.SetPathValue("tenant", name)
		r.handlers.HandleFeed(w, req)
	}))

	return mux
}

// wrap records status/bytes/duration around a handler the way the teacher's
// routeDAVMethod does for its DAV methods, just without the auth dance.
func (r *Router) wrap(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next(rec, req)

		dur := time.Since(start)
		r.logger.Debug().
			Str("route", route).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", statusOrDefault(rec.status)).
			Int("bytes", rec.bytes).
			Float64("duration_ms", float64(dur.Microseconds())/1000.0).
			Str("ip", realIP(req)).
			Str("user_agent", req.Header.Get("User-Agent")).
			Msg("http request")
	}
}

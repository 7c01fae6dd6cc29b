// Package httpserver wires the storage backend, the feed handlers, and the
// router into a runnable http.Server, the way the teacher repo's
// NewServer() composes storage, directory, auth and dav into one.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/calproxy/calproxy/internal/config"
	"github.com/calproxy/calproxy/internal/httpfeed"
	"github.com/calproxy/calproxy/internal/router"
	"github.com/calproxy/calproxy/internal/statestore"
	"github.com/calproxy/calproxy/internal/statestore/memstore"
	"github.com/calproxy/calproxy/internal/statestore/sqlitestore"
)

type Server struct {
	http   *http.Server
	logger zerolog.Logger
}

func NewServer(cfg *config.Config, logger zerolog.Logger) (*Server, func(), error) {
	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	handlers := httpfeed.New(cfg, store, logger)
	mux := router.New(cfg, handlers, logger)

	srv := &Server{
		http: &http.Server{
			Addr:         cfg.HTTP.Addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		logger: logger,
	}

	logger.Info().Msgf("listening on %s (storage=%s)", cfg.HTTP.Addr, cfg.Storage.Type)
	return srv, closeStore, nil
}

func openStore(cfg *config.Config, logger zerolog.Logger) (statestore.Store, func(), error) {
	switch cfg.Storage.Type {
	case "sqlite":
		store, err := sqlitestore.New(cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case "memory":
		return memstore.New(), func() {}, nil
	default:
		return nil, nil, errors.New("unknown storage type: " + cfg.Storage.Type)
	}
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

package router

import (
	"github.com/rs/zerolog"

	"github.com/calproxy/calproxy/internal/config"
	"github.com/calproxy/calproxy/internal/httpfeed"
)

type Router struct {
	config   *config.Config
	handlers *httpfeed.Handlers
	logger   zerolog.Logger
}

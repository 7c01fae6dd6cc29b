// Package upstreamfetch implements the upstream interface from §6: an
// HTTP GET to a tenant-configured URL with the headers the upstream
// (Exchange/Outlook) expects, modeled the way
// internal/directory/ldapclient.go wraps an external dependency behind a
// small struct.
package upstreamfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const userAgent = "calproxy/1.0 (+https://github.com/calproxy/calproxy)"

// Fetcher performs the upstream GET. Non-2xx status is returned
// unconverted to an error: the caller decides fallback policy.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
	logger   zerolog.Logger
}

// New builds a Fetcher. maxBytes caps the upstream body read via
// io.LimitReader; 0 means unbounded.
func New(timeout time.Duration, maxBytes int64, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Response is the raw result of an upstream fetch attempt.
type Response struct {
	StatusCode int
	Body       []byte
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("upstreamfetch: build request: %w", err)
	}
	req.Header.Set("Accept", "text/calendar")
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn().Err(err).Str("url", url).Msg("upstreamfetch: request failed")
		return nil, fmt.Errorf("upstreamfetch: do request: %w", err)
	}
	defer resp.Body.Close()

	reader := resp.Body
	if f.maxBytes > 0 {
		reader = io.NopCloser(io.LimitReader(resp.Body, f.maxBytes))
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("upstreamfetch: read body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

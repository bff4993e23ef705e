// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

var (
	// ErrNoSource is returned when no catalog source is configured.
	ErrNoSource = errors.New("no catalog source configured")

	// ErrEmptyCatalog is returned when a source produced no movies.
	ErrEmptyCatalog = errors.New("catalog source returned no movies")
)

// Source loads the full movie catalog.
type Source interface {
	Load(ctx context.Context) ([]Movie, error)
	String() string
}

// FileSource reads a catalog CSV from disk.
type FileSource struct {
	Path string
}

// NewFileSource creates a source for the CSV at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load parses the file. An empty catalog is an error.
func (s *FileSource) Load(ctx context.Context) ([]Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	movies, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	if len(movies) == 0 {
		return nil, ErrEmptyCatalog
	}
	return movies, nil
}

func (s *FileSource) String() string {
	return "file:" + s.Path
}

// HTTPSourceConfig configures a remote catalog.
type HTTPSourceConfig struct {
	URL     string
	Timeout time.Duration

	// Client overrides the HTTP client. Nil uses a client with Timeout.
	Client *http.Client
}

// HTTPSource fetches a catalog CSV over HTTP. Requests go through a circuit
// breaker so a failing host is not hammered on every reload:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 5 consecutive failures
type HTTPSource struct {
	url    string
	client *http.Client
	cb     *gobreaker.CircuitBreaker[[]Movie]
	name   string
}

// NewHTTPSource creates a remote catalog source.
func NewHTTPSource(cfg HTTPSourceConfig) *HTTPSource {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	cbName := "catalog-http"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]Movie](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		// Reloads are infrequent, so trip on consecutive failures rather
		// than on a failure ratio that would need many samples.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= 5
			if shouldTrip {
				logging.Warn().
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening catalog circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &HTTPSource{url: cfg.URL, client: client, cb: cb, name: cbName}
}

// Load downloads and parses the catalog.
func (s *HTTPSource) Load(ctx context.Context) ([]Movie, error) {
	movies, err := s.cb.Execute(func() ([]Movie, error) {
		return s.fetch(ctx)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
			logging.Warn().Err(err).Str("url", s.url).Msg("[CIRCUIT BREAKER] Catalog request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
			counts := s.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(0)
	return movies, nil
}

// State returns the breaker state for health reporting.
func (s *HTTPSource) State() string {
	return stateToString(s.cb.State())
}

func (s *HTTPSource) fetch(ctx context.Context) ([]Movie, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	movies, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse remote catalog: %w", err)
	}
	if len(movies) == 0 {
		return nil, ErrEmptyCatalog
	}
	return movies, nil
}

func (s *HTTPSource) String() string {
	return "http:" + s.url
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// NewSource picks the configured primary source: a URL wins over a path.
func NewSource(path, url string, timeout time.Duration) (Source, error) {
	switch {
	case url != "":
		return NewHTTPSource(HTTPSourceConfig{URL: url, Timeout: timeout}), nil
	case path != "":
		return NewFileSource(path), nil
	default:
		return nil, ErrNoSource
	}
}

// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend/index"
	"github.com/tomtom215/marquee/internal/textsim"
)

// Query kinds reported to the Observer.
const (
	QuerySingle    = "single"
	QueryWatchlist = "watchlist"
)

// Observer receives engine events. The metrics package provides the
// Prometheus implementation.
type Observer interface {
	ObserveQuery(kind, outcome string, d time.Duration)
	ObserveCache(kind string, hit bool)
	ObserveIndex(records, vocabulary int, generation uint64)
	ObserveUnresolved(n int)
}

type nopObserver struct{}

func (nopObserver) ObserveQuery(string, string, time.Duration) {}
func (nopObserver) ObserveCache(string, bool)                  {}
func (nopObserver) ObserveIndex(int, int, uint64)              {}
func (nopObserver) ObserveUnresolved(int)                      {}

// Engine answers recommendation queries against the currently published
// index. It is safe for concurrent use; Swap publishes a new index without
// blocking readers.
type Engine struct {
	config *Config
	logger zerolog.Logger

	signals []Signal
	sigMu   sync.RWMutex

	weights Weights
	matcher textsim.Matcher

	current    atomic.Pointer[index.Index]
	generation atomic.Uint64

	cache    *cache.LRU[Result]
	observer Observer

	singleQueries    atomic.Int64
	watchlistQueries atomic.Int64
	fallbacks        atomic.Int64
	cacheHits        atomic.Int64
	cacheMisses      atomic.Int64
}

// Option customizes an Engine.
type Option func(*Engine)

// WithObserver routes engine events to o.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithMatcher replaces the fuzzy title matcher used for watchlist resolution.
func WithMatcher(m textsim.Matcher) Option {
	return func(e *Engine) {
		if m != nil {
			e.matcher = m
		}
	}
}

// NewEngine creates a recommendation engine. Signals are registered
// separately and run in registration order.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		weights:  cfg.Weights.ToWeights(),
		matcher:  textsim.Default,
		observer: nopObserver{},
	}
	if cfg.Cache.Enabled {
		e.cache = cache.New[Result](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// RegisterSignal appends a signal to the fan-out.
func (e *Engine) RegisterSignal(s Signal) {
	e.sigMu.Lock()
	defer e.sigMu.Unlock()

	e.signals = append(e.signals, s)
	e.logger.Debug().
		Str("signal", string(s.Reason())).
		Msg("registered signal")
}

// Signals returns the registered signals in order.
func (e *Engine) Signals() []Signal {
	e.sigMu.RLock()
	defer e.sigMu.RUnlock()

	out := make([]Signal, len(e.signals))
	copy(out, e.signals)
	return out
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Swap publishes idx and returns its generation. Queries already running
// finish against the previous index.
func (e *Engine) Swap(idx *index.Index) uint64 {
	e.current.Store(idx)
	gen := e.generation.Add(1)
	if e.cache != nil {
		e.cache.Clear()
	}

	e.observer.ObserveIndex(idx.Len(), idx.VocabularySize(), gen)
	e.logger.Info().
		Uint64("generation", gen).
		Int("records", idx.Len()).
		Int("vocabulary", idx.VocabularySize()).
		Msg("published recommendation index")
	return gen
}

// Build builds an index from records with the engine's settings and publishes it.
func (e *Engine) Build(records []index.Record) uint64 {
	start := time.Now()
	idx := index.Build(records, e.config.BuildConfig())
	e.logger.Info().
		Int("records", idx.Len()).
		Dur("duration", time.Since(start)).
		Msg("built recommendation index")
	return e.Swap(idx)
}

// Ready reports whether an index has been published.
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}

// Index returns the published index, or nil.
func (e *Engine) Index() *index.Index {
	return e.current.Load()
}

// snapshot loads the index and its generation together. A concurrent Swap
// may make the generation newer than the index, which only costs a cache miss.
func (e *Engine) snapshot() (*index.Index, uint64, error) {
	gen := e.generation.Load()
	idx := e.current.Load()
	if idx == nil {
		return nil, 0, ErrIndexNotReady
	}
	return idx, gen, nil
}

// RecommendSingle returns the fused hybrid recommendations for title.
// limit <= 0 selects the configured cap. Unknown titles yield an empty
// result; the only error is ErrIndexNotReady.
func (e *Engine) RecommendSingle(ctx context.Context, title string, limit int) (Result, error) {
	start := time.Now()
	idx, gen, err := e.snapshot()
	if err != nil {
		return Result{}, err
	}
	e.singleQueries.Add(1)

	if limit <= 0 {
		limit = e.config.Limits.Cap
	}
	if limit > e.config.Limits.MaxCap {
		limit = e.config.Limits.MaxCap
	}

	key := cacheKey(gen, QuerySingle, strconv.Itoa(limit), index.NormalizeTitle(title))
	r, hit := e.cacheGet(QuerySingle, key)
	if !hit {
		r = RecommendSingle(idx, e.Signals(), e.weights, title, e.config.SignalOptions(), limit)
		r.Generation = gen
		e.cacheAdd(key, r)
	}

	log := e.ctxLogger(ctx)
	if len(r.Items) == 0 {
		if _, found := idx.Lookup(title); !found {
			log.Debug().Str("title", title).Msg("title not in catalog")
		}
	}
	e.observer.ObserveQuery(QuerySingle, r.Outcome.String(), time.Since(start))
	return r, nil
}

// RecommendFromWatchlist ranks the catalog against the centroid of the
// resolved watchlist titles. topN <= 0 selects the configured default.
// Fallback lists are reported through Result.Outcome, never as errors.
func (e *Engine) RecommendFromWatchlist(ctx context.Context, titles []string, topN int) (Result, error) {
	start := time.Now()
	idx, gen, err := e.snapshot()
	if err != nil {
		return Result{}, err
	}
	e.watchlistQueries.Add(1)

	if topN <= 0 {
		topN = e.config.Limits.WatchlistTopN
	}
	if topN > e.config.Limits.MaxWatchlistTopN {
		topN = e.config.Limits.MaxWatchlistTopN
	}

	normalized := make([]string, len(titles))
	for i, t := range titles {
		normalized[i] = strings.ToLower(strings.TrimSpace(t))
	}
	key := cacheKey(gen, QueryWatchlist, strconv.Itoa(topN), normalized...)
	r, hit := e.cacheGet(QueryWatchlist, key)
	if !hit {
		r = RecommendFromWatchlist(idx, titles, WatchlistOptions{
			TopN:    topN,
			Cutoff:  e.config.Fuzzy.Cutoff,
			Matcher: e.matcher,
		})
		r.Generation = gen
	}

	log := e.ctxLogger(ctx)
	for _, t := range r.Unresolved {
		log.Warn().Str("title", t).Float64("cutoff", e.config.Fuzzy.Cutoff).Msg("watchlist title did not resolve")
	}
	if len(r.Unresolved) > 0 {
		e.observer.ObserveUnresolved(len(r.Unresolved))
	}

	switch r.Outcome {
	case OutcomeFallbackInsufficient:
		e.fallbacks.Add(1)
		log.Warn().
			Int("requested", len(titles)).
			Int("resolved", len(r.Resolved)).
			Msg("too few watchlist titles resolved, serving fallback list")
	case OutcomeFallbackFailure:
		e.fallbacks.Add(1)
		log.Error().Err(r.Err).
			Strs("resolved", r.Resolved).
			Msg("watchlist ranking failed, serving fallback list")
	default:
		if !hit {
			e.cacheAdd(key, r)
		}
	}

	e.observer.ObserveQuery(QueryWatchlist, r.Outcome.String(), time.Since(start))
	return r, nil
}

// Stats returns a point-in-time view of the engine.
func (e *Engine) Stats() Stats {
	s := Stats{
		Generation:       e.generation.Load(),
		SingleQueries:    e.singleQueries.Load(),
		WatchlistQueries: e.watchlistQueries.Load(),
		Fallbacks:        e.fallbacks.Load(),
		CacheHits:        e.cacheHits.Load(),
		CacheMisses:      e.cacheMisses.Load(),
	}
	if idx := e.current.Load(); idx != nil {
		s.Ready = true
		s.Records = idx.Len()
		s.Vocabulary = idx.VocabularySize()
		s.BuiltAt = idx.BuiltAt()
	}
	if e.cache != nil {
		s.CacheSize = e.cache.Len()
	}
	return s
}

func (e *Engine) cacheGet(kind, key string) (Result, bool) {
	if e.cache == nil {
		return Result{}, false
	}
	r, ok := e.cache.Get(key)
	e.observer.ObserveCache(kind, ok)
	if !ok {
		e.cacheMisses.Add(1)
		return Result{}, false
	}
	e.cacheHits.Add(1)
	r = r.clone()
	r.Cached = true
	return r, true
}

// cacheAdd stores a copy so callers may modify the result they were handed.
func (e *Engine) cacheAdd(key string, r Result) {
	if e.cache != nil {
		e.cache.Add(key, r.clone())
	}
}

func (e *Engine) ctxLogger(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return &e.logger
	}
	lc := e.logger.With()
	if id := logging.RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		lc = lc.Str("correlation_id", id)
	}
	l := lc.Logger()
	return &l
}

func cacheKey(gen uint64, kind, size string, parts ...string) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(gen, 10))
	b.WriteByte('|')
	b.WriteString(kind)
	b.WriteByte('|')
	b.WriteString(size)
	for _, p := range parts {
		b.WriteByte('|')
		b.WriteString(p)
	}
	return b.String()
}

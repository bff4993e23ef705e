// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/algorithms"
	"github.com/tomtom215/marquee/internal/recommend/index"
)

// mockObserver records engine events for assertions.
type mockObserver struct {
	mu         sync.Mutex
	queries    map[string]int
	hits       int
	misses     int
	indexed    []uint64
	unresolved int
}

func newMockObserver() *mockObserver {
	return &mockObserver{queries: make(map[string]int)}
}

func (m *mockObserver) ObserveQuery(kind, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries[kind+"/"+outcome]++
}

func (m *mockObserver) ObserveCache(_ string, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

func (m *mockObserver) ObserveIndex(_, _ int, generation uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexed = append(m.indexed, generation)
}

func (m *mockObserver) ObserveUnresolved(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unresolved += n
}

func newEngine(t *testing.T, opts ...recommend.Option) *recommend.Engine {
	t.Helper()
	e, err := recommend.NewEngine(recommend.DefaultConfig(), logging.NewNop(), opts...)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	for _, s := range algorithms.Hybrid(nil) {
		e.RegisterSignal(s)
	}
	return e
}

// fiveMovies is a corpus where A and B share two of three cast names and
// B and C share a director.
func fiveMovies() []index.Record {
	return []index.Record{
		{Title: "A", Genres: []string{"Drama"}, Director: "Dir A", Cast: []string{"P1", "P2", "P3"}, Profile: "harbor storm fisherman"},
		{Title: "B", Genres: []string{"Comedy"}, Director: "Dir B", Cast: []string{"P1", "P2", "P9"}, Profile: "wedding chaos family"},
		{Title: "C", Genres: []string{"Horror"}, Director: "Dir B", Cast: []string{"P7"}, Profile: "haunted lighthouse storm"},
		{Title: "D", Genres: []string{"Drama"}, Director: "Dir D", Cast: []string{"P3"}, Profile: "harbor fisherman strike"},
		{Title: "E", Genres: []string{"Western"}, Director: "Dir E", Cast: []string{"P8"}, Profile: "desert outlaw"},
	}
}

func bigCorpus(n int) []index.Record {
	recs := make([]index.Record, n)
	for i := range recs {
		recs[i] = index.Record{
			Title:    fmt.Sprintf("Movie %d", i),
			Genres:   []string{"Drama"},
			Director: fmt.Sprintf("Director %d", i%3),
			Writer:   fmt.Sprintf("Writer %d", i%4),
			Cast:     []string{"Lead", fmt.Sprintf("Support %d", i%5)},
			Profile:  fmt.Sprintf("story about topic%d and theme%d", i%7, i%11),
		}
	}
	return recs
}

func TestEngine_NotReady(t *testing.T) {
	e := newEngine(t)

	if e.Ready() {
		t.Error("Ready() = true before Build")
	}
	if _, err := e.RecommendSingle(context.Background(), "A", 0); !errors.Is(err, recommend.ErrIndexNotReady) {
		t.Errorf("RecommendSingle() error = %v, want ErrIndexNotReady", err)
	}
	if _, err := e.RecommendFromWatchlist(context.Background(), []string{"A", "B"}, 0); !errors.Is(err, recommend.ErrIndexNotReady) {
		t.Errorf("RecommendFromWatchlist() error = %v, want ErrIndexNotReady", err)
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cfg := recommend.DefaultConfig()
	cfg.Fuzzy.Cutoff = 2

	if _, err := recommend.NewEngine(cfg, logging.NewNop()); err == nil {
		t.Error("NewEngine() accepted an invalid config")
	}
}

func TestEngine_RecommendSingle_CastFirst(t *testing.T) {
	e := newEngine(t)
	e.Build(fiveMovies())

	r, err := e.RecommendSingle(context.Background(), "A", 0)
	if err != nil {
		t.Fatalf("RecommendSingle() error = %v", err)
	}
	if len(r.Items) == 0 {
		t.Fatal("RecommendSingle() returned no items")
	}

	first := r.Items[0]
	if first.Title != "B" || first.Reason != recommend.ReasonCast || first.Score != 1.0 {
		t.Errorf("Items[0] = %+v, want B / Similar Cast / 1.0", first)
	}
	for _, c := range r.Items {
		if c.Title == "A" {
			t.Error("result contains the source title")
		}
	}
}

func TestEngine_RecommendSingle_Invariants(t *testing.T) {
	e := newEngine(t)
	e.Build(bigCorpus(80))

	for _, title := range []string{"Movie 0", "movie 17", "MOVIE 79"} {
		r, err := e.RecommendSingle(context.Background(), title, 0)
		if err != nil {
			t.Fatalf("RecommendSingle(%q) error = %v", title, err)
		}
		if len(r.Items) > recommend.DefaultCap {
			t.Errorf("%q: %d items, want <= %d", title, len(r.Items), recommend.DefaultCap)
		}
		seen := make(map[string]bool)
		for _, c := range r.Items {
			if index.NormalizeTitle(c.Title) == index.NormalizeTitle(title) {
				t.Errorf("%q: result contains the source", title)
			}
			if seen[c.Title] {
				t.Errorf("%q: duplicate title %q", title, c.Title)
			}
			seen[c.Title] = true
		}
	}
}

func TestEngine_RecommendSingle_UnknownTitle(t *testing.T) {
	e := newEngine(t)
	e.Build(fiveMovies())

	r, err := e.RecommendSingle(context.Background(), "Not A Movie", 0)
	if err != nil {
		t.Fatalf("RecommendSingle() error = %v", err)
	}
	if len(r.Items) != 0 || r.Outcome != recommend.OutcomeSuccess {
		t.Errorf("RecommendSingle(unknown) = %+v, want empty success", r)
	}
}

func TestEngine_CacheAndSwap(t *testing.T) {
	obs := newMockObserver()
	e := newEngine(t, recommend.WithObserver(obs))
	gen := e.Build(fiveMovies())

	first, _ := e.RecommendSingle(context.Background(), "A", 10)
	second, _ := e.RecommendSingle(context.Background(), "a", 10)
	if first.Cached || !second.Cached {
		t.Errorf("Cached = %v, %v; want false, true", first.Cached, second.Cached)
	}
	if first.Generation != gen || second.Generation != gen {
		t.Errorf("Generation = %d, %d; want %d", first.Generation, second.Generation, gen)
	}

	newGen := e.Swap(index.Build(fiveMovies()[:3], index.DefaultBuildConfig()))
	if newGen != gen+1 {
		t.Errorf("Swap() generation = %d, want %d", newGen, gen+1)
	}
	third, _ := e.RecommendSingle(context.Background(), "A", 10)
	if third.Cached || third.Generation != newGen {
		t.Errorf("after swap Cached = %v, Generation = %d", third.Cached, third.Generation)
	}
	if len(third.Items) != 2 {
		t.Errorf("after swap len(Items) = %d, want 2", len(third.Items))
	}

	stats := e.Stats()
	if !stats.Ready || stats.Records != 3 || stats.Generation != newGen {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.SingleQueries != 3 || stats.CacheHits != 1 || stats.CacheMisses != 2 {
		t.Errorf("Stats() counters = %+v", stats)
	}
	if obs.hits != 1 || obs.misses != 2 || len(obs.indexed) != 2 {
		t.Errorf("observer hits=%d misses=%d indexed=%v", obs.hits, obs.misses, obs.indexed)
	}
}

func TestEngine_Watchlist(t *testing.T) {
	obs := newMockObserver()
	e := newEngine(t, recommend.WithObserver(obs))
	e.Build(fiveMovies())

	t.Run("insufficient", func(t *testing.T) {
		r, err := e.RecommendFromWatchlist(context.Background(), []string{"a", "nothing like it at all"}, 0)
		if err != nil {
			t.Fatalf("RecommendFromWatchlist() error = %v", err)
		}
		if r.Outcome != recommend.OutcomeFallbackInsufficient {
			t.Errorf("Outcome = %v, want fallback_insufficient", r.Outcome)
		}
		want := recommend.FallbackInsufficient().Titles()
		if got := r.Titles(); fmt.Sprint(got) != fmt.Sprint(want) {
			t.Errorf("Titles() = %v, want %v", got, want)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, err := e.RecommendFromWatchlist(context.Background(), []string{"a ", "D"}, 2)
		if err != nil {
			t.Fatalf("RecommendFromWatchlist() error = %v", err)
		}
		if r.Outcome != recommend.OutcomeSuccess {
			t.Fatalf("Outcome = %v, want success", r.Outcome)
		}
		if len(r.Items) != 2 {
			t.Fatalf("len(Items) = %d, want 2", len(r.Items))
		}
		if r.Items[0].Title != "C" {
			t.Errorf("Items[0] = %q, want C (shares storm)", r.Items[0].Title)
		}
		for _, c := range r.Items {
			if c.Title == "A" || c.Title == "D" {
				t.Errorf("watchlist title %q returned", c.Title)
			}
		}
	})

	if s := e.Stats(); s.WatchlistQueries != 2 || s.Fallbacks != 1 {
		t.Errorf("Stats() = %+v", s)
	}
	if obs.unresolved != 1 {
		t.Errorf("observer unresolved = %d, want 1", obs.unresolved)
	}
}

func TestEngine_Watchlist_CacheHitStillObserved(t *testing.T) {
	obs := newMockObserver()
	e := newEngine(t, recommend.WithObserver(obs))
	e.Build(bigCorpus(10))

	titles := []string{"Movie 1", "Movie 2", "zzzzqqq"}
	first, err := e.RecommendFromWatchlist(context.Background(), titles, 5)
	if err != nil {
		t.Fatalf("first RecommendFromWatchlist() error = %v", err)
	}
	second, err := e.RecommendFromWatchlist(context.Background(), titles, 5)
	if err != nil {
		t.Fatalf("second RecommendFromWatchlist() error = %v", err)
	}

	if first.Outcome != recommend.OutcomeSuccess || first.Cached || !second.Cached {
		t.Fatalf("Outcome = %v, Cached = %v, %v; want success, false, true", first.Outcome, first.Cached, second.Cached)
	}
	if fmt.Sprint(second.Unresolved) != "[zzzzqqq]" {
		t.Errorf("cached Unresolved = %v, want [zzzzqqq]", second.Unresolved)
	}
	if obs.unresolved != 2 {
		t.Errorf("observer unresolved = %d, want 2", obs.unresolved)
	}
	if got := obs.queries["watchlist/success"]; got != 2 {
		t.Errorf("observer queries = %v, want watchlist/success:2", obs.queries)
	}
}

func TestEngine_RecommendSingle_CacheHitStillObserved(t *testing.T) {
	obs := newMockObserver()
	e := newEngine(t, recommend.WithObserver(obs))
	e.Build(fiveMovies())

	for i := 0; i < 2; i++ {
		if _, err := e.RecommendSingle(context.Background(), "A", 10); err != nil {
			t.Fatalf("RecommendSingle() error = %v", err)
		}
	}
	if got := obs.queries["single/success"]; got != 2 {
		t.Errorf("observer queries = %v, want single/success:2", obs.queries)
	}
}

func TestEngine_CachedResultIsolation(t *testing.T) {
	e := newEngine(t)
	e.Build(bigCorpus(10))
	ctx := context.Background()

	r1, _ := e.RecommendSingle(ctx, "Movie 1", 10)
	if len(r1.Items) == 0 {
		t.Fatal("RecommendSingle() returned no items")
	}
	want := r1.Items[0].Title
	r1.Items[0].Title = "changed by caller"

	r2, _ := e.RecommendSingle(ctx, "Movie 1", 10)
	if !r2.Cached || r2.Items[0].Title != want {
		t.Errorf("cached Items[0] = %q (Cached = %v), want %q", r2.Items[0].Title, r2.Cached, want)
	}
	r2.Items[0].Title = "changed again"

	r3, _ := e.RecommendSingle(ctx, "Movie 1", 10)
	if r3.Items[0].Title != want {
		t.Errorf("second cached Items[0] = %q, want %q", r3.Items[0].Title, want)
	}

	w1, _ := e.RecommendFromWatchlist(ctx, []string{"Movie 1", "Movie 2", "zzzzqqq"}, 5)
	w1.Unresolved[0] = "changed"
	w2, _ := e.RecommendFromWatchlist(ctx, []string{"Movie 1", "Movie 2", "zzzzqqq"}, 5)
	if !w2.Cached || w2.Unresolved[0] != "zzzzqqq" {
		t.Errorf("cached Unresolved = %v (Cached = %v), want [zzzzqqq]", w2.Unresolved, w2.Cached)
	}
}

func TestEngine_ConcurrentSwap(t *testing.T) {
	e := newEngine(t)
	e.Build(bigCorpus(40))

	ctx := context.Background()
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if _, err := e.RecommendSingle(ctx, fmt.Sprintf("Movie %d", (g+i)%40), 0); err != nil {
					t.Errorf("RecommendSingle() error = %v", err)
					return
				}
				if _, err := e.RecommendFromWatchlist(ctx, []string{"Movie 1", "Movie 2"}, 5); err != nil {
					t.Errorf("RecommendFromWatchlist() error = %v", err)
					return
				}
			}
		}(g)
	}
	for i := 0; i < 5; i++ {
		e.Build(bigCorpus(30 + i))
	}
	wg.Wait()
}

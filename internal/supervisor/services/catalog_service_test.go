// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/index"
)

type fakeSource struct {
	mu     sync.Mutex
	movies []catalog.Movie
	err    error
	calls  int
}

func (f *fakeSource) Load(context.Context) ([]catalog.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.movies, f.err
}

func (f *fakeSource) String() string { return "fake:primary" }

func (f *fakeSource) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type fakeSnapshot struct {
	mu      sync.Mutex
	movies  []catalog.Movie
	loadErr error
	saves   int
}

func (f *fakeSnapshot) Load(context.Context) ([]catalog.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.movies, f.loadErr
}

func (f *fakeSnapshot) Save(_ context.Context, movies []catalog.Movie, source string) (catalog.SnapshotMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	f.movies = movies
	return catalog.SnapshotMeta{Count: len(movies), Source: source}, nil
}

func (f *fakeSnapshot) String() string { return "fake:snapshot" }

type fakeBuilder struct {
	mu     sync.Mutex
	builds [][]index.Record
}

func (f *fakeBuilder) Build(records []index.Record) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builds = append(f.builds, records)
	return uint64(len(f.builds))
}

func (f *fakeBuilder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.builds)
}

func someMovies(titles ...string) []catalog.Movie {
	out := make([]catalog.Movie, len(titles))
	for i, t := range titles {
		out[i] = catalog.Movie{Title: t, Genres: []string{"Drama"}, Tags: "story about " + t}
	}
	return out
}

func TestCatalogService_Reload(t *testing.T) {
	primaryErr := errors.New("primary down")
	snapshotErr := errors.New("snapshot empty")

	tests := []struct {
		name         string
		primaryErr   error
		snapshot     *fakeSnapshot
		wantErr      []error
		wantSource   string
		wantFallback bool
		wantSaves    int
	}{
		{
			name:       "primary success saves snapshot",
			snapshot:   &fakeSnapshot{},
			wantSource: "fake:primary",
			wantSaves:  1,
		},
		{
			name:       "primary success without snapshot",
			wantSource: "fake:primary",
		},
		{
			name:         "primary failure falls back to snapshot",
			primaryErr:   primaryErr,
			snapshot:     &fakeSnapshot{movies: someMovies("Old One", "Old Two")},
			wantSource:   "fake:snapshot",
			wantFallback: true,
		},
		{
			name:       "both fail",
			primaryErr: primaryErr,
			snapshot:   &fakeSnapshot{loadErr: snapshotErr},
			wantErr:    []error{primaryErr, snapshotErr},
		},
		{
			name:       "primary failure without snapshot",
			primaryErr: primaryErr,
			wantErr:    []error{primaryErr},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{movies: someMovies("Alpha", "Bravo", "Charlie"), err: tt.primaryErr}
			builder := &fakeBuilder{}
			library := catalog.NewLibrary()

			var snap SnapshotStore
			if tt.snapshot != nil {
				snap = tt.snapshot
			}
			svc := NewCatalogService(src, snap, builder, library, CatalogServiceConfig{}, zerolog.Nop())

			err := svc.Reload(context.Background())
			status := svc.Status()

			if len(tt.wantErr) > 0 {
				for _, want := range tt.wantErr {
					if !errors.Is(err, want) {
						t.Errorf("Reload() = %v, want it to wrap %v", err, want)
					}
				}
				if library.Current() != nil {
					t.Error("catalog published after a failed reload")
				}
				if builder.count() != 0 {
					t.Error("index built after a failed reload")
				}
				if status.Err == nil {
					t.Error("Status().Err not recorded")
				}
				return
			}

			if err != nil {
				t.Fatalf("Reload() error = %v", err)
			}
			c := library.Current()
			if c == nil {
				t.Fatal("no catalog published")
			}
			if c.Source() != tt.wantSource {
				t.Errorf("Source() = %q, want %q", c.Source(), tt.wantSource)
			}
			if builder.count() != 1 || len(builder.builds[0]) != c.Len() {
				t.Errorf("builds = %d, want one build of %d records", builder.count(), c.Len())
			}
			if status.Fallback != tt.wantFallback || status.Generation != 1 || status.Movies != c.Len() {
				t.Errorf("Status() = %+v", status)
			}
			if tt.snapshot != nil && tt.snapshot.saves != tt.wantSaves {
				t.Errorf("snapshot saves = %d, want %d", tt.snapshot.saves, tt.wantSaves)
			}
		})
	}
}

func TestCatalogService_Trigger(t *testing.T) {
	svc := NewCatalogService(&fakeSource{}, nil, &fakeBuilder{}, catalog.NewLibrary(), CatalogServiceConfig{}, zerolog.Nop())

	if !svc.Trigger() {
		t.Error("first Trigger() = false, want true")
	}
	if svc.Trigger() {
		t.Error("second Trigger() = true while one is pending")
	}
}

func TestCatalogService_Serve(t *testing.T) {
	src := &fakeSource{movies: someMovies("Alpha", "Bravo")}
	builder := &fakeBuilder{}
	library := catalog.NewLibrary()
	svc := NewCatalogService(src, nil, builder, library, CatalogServiceConfig{ReloadInterval: time.Hour}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	waitFor(t, func() bool { return builder.count() == 1 })
	if library.Current() == nil {
		t.Fatal("initial load did not publish a catalog")
	}

	svc.Trigger()
	waitFor(t, func() bool { return builder.count() == 2 })

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestCatalogService_RetriesUntilLoaded(t *testing.T) {
	src := &fakeSource{movies: someMovies("Alpha", "Bravo"), err: errors.New("not yet")}
	builder := &fakeBuilder{}
	svc := NewCatalogService(src, nil, builder, catalog.NewLibrary(), CatalogServiceConfig{
		ReloadInterval: time.Hour,
		RetryInterval:  20 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	src.setErr(nil)
	waitFor(t, func() bool { return builder.count() == 1 })

	cancel()
	<-errCh
}

func TestCatalogService_Supervised(t *testing.T) {
	src := &fakeSource{movies: someMovies("Alpha", "Bravo")}
	builder := &fakeBuilder{}
	svc := NewCatalogService(src, nil, builder, catalog.NewLibrary(), CatalogServiceConfig{}, zerolog.Nop())

	sup := suture.New("test-sup", suture.Spec{Timeout: time.Second})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	waitFor(t, func() bool { return builder.count() == 1 })
	cancel()
	<-errCh
}

// TestCatalogService_SnapshotRoundTrip runs the real file source, badger
// snapshot and engine: the second reload survives a missing CSV.
func TestCatalogService_SnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.csv")
	csv := "title,genres,director,cast,tags\n" +
		"Harbor,Drama,Dir A,\"P1, P2\",harbor storm fisherman\n" +
		"Strike,Drama,Dir D,P2,harbor fisherman strike\n" +
		"Outlaw,Western,Dir E,P8,desert outlaw\n"
	if err := os.WriteFile(path, []byte(csv), 0o600); err != nil {
		t.Fatal(err)
	}

	store, err := catalog.OpenSnapshot(catalog.SnapshotConfig{InMemory: true})
	if err != nil {
		t.Fatalf("OpenSnapshot() error = %v", err)
	}
	defer store.Close()

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	library := catalog.NewLibrary()
	svc := NewCatalogService(catalog.NewFileSource(path), store, engine, library, CatalogServiceConfig{}, zerolog.Nop())

	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("first Reload() error = %v", err)
	}
	if !engine.Ready() || engine.Stats().Records != 3 {
		t.Fatalf("engine stats = %+v, want 3 records", engine.Stats())
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("second Reload() error = %v", err)
	}

	status := svc.Status()
	if !status.Fallback || status.Movies != 3 || status.Generation != 2 {
		t.Errorf("Status() = %+v, want snapshot fallback with 3 movies at generation 2", status)
	}
	if c := library.Current(); c == nil || c.Source() != store.String() {
		t.Errorf("published catalog source = %v, want %s", c, store.String())
	}
	if _, ok := library.Current().Get("harbor"); !ok {
		t.Error("snapshot catalog lost a movie")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

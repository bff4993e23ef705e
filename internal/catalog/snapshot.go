// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/marquee/internal/logging"
)

var (
	// ErrSnapshotEmpty is returned when no complete snapshot has been saved.
	ErrSnapshotEmpty = errors.New("catalog snapshot is empty")

	// ErrSnapshotClosed is returned when the store has been closed.
	ErrSnapshotClosed = errors.New("catalog snapshot store is closed")
)

// Key layout
const (
	prefixMovie = "movie:"
	keyMeta     = "meta:snapshot"
)

// SnapshotConfig configures the badger snapshot store.
type SnapshotConfig struct {
	// Path is the badger directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps the store in memory only, for tests.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool
}

// SnapshotMeta describes the last saved snapshot.
type SnapshotMeta struct {
	BuildID string    `json:"build_id"`
	Count   int       `json:"count"`
	Source  string    `json:"source"`
	SavedAt time.Time `json:"saved_at"`
}

// SnapshotStore persists the last good catalog so the service can start,
// or keep serving, when the primary source is unavailable. It implements
// Source.
type SnapshotStore struct {
	db     *badger.DB
	path   string
	mu     sync.RWMutex
	closed bool
}

// OpenSnapshot opens (or creates) a snapshot store.
func OpenSnapshot(cfg SnapshotConfig) (*SnapshotStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("snapshot path is required")
		}
		opts = badger.DefaultOptions(cfg.Path)
		opts.SyncWrites = cfg.SyncWrites
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	path := cfg.Path
	if cfg.InMemory {
		path = ":memory:"
	}
	logging.Info().Str("path", path).Msg("catalog snapshot store opened")
	return &SnapshotStore{db: db, path: path}, nil
}

// Save replaces the stored catalog with movies. The metadata record is
// written last, so an interrupted save leaves no readable snapshot rather
// than a partial one.
func (s *SnapshotStore) Save(ctx context.Context, movies []Movie, source string) (SnapshotMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return SnapshotMeta{}, ErrSnapshotClosed
	}
	if len(movies) == 0 {
		return SnapshotMeta{}, ErrEmptyCatalog
	}

	if err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(keyMeta)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	}); err != nil {
		return SnapshotMeta{}, fmt.Errorf("clear snapshot meta: %w", err)
	}
	if err := s.db.DropPrefix([]byte(prefixMovie)); err != nil {
		return SnapshotMeta{}, fmt.Errorf("drop previous snapshot: %w", err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for i := range movies {
		if err := ctx.Err(); err != nil {
			return SnapshotMeta{}, err
		}
		data, err := json.Marshal(&movies[i])
		if err != nil {
			return SnapshotMeta{}, fmt.Errorf("marshal movie %q: %w", movies[i].Title, err)
		}
		if err := wb.Set(movieKey(i), data); err != nil {
			return SnapshotMeta{}, fmt.Errorf("write movie %q: %w", movies[i].Title, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return SnapshotMeta{}, fmt.Errorf("flush snapshot: %w", err)
	}

	meta := SnapshotMeta{
		BuildID: uuid.New().String(),
		Count:   len(movies),
		Source:  source,
		SavedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(&meta)
	if err != nil {
		return SnapshotMeta{}, fmt.Errorf("marshal meta: %w", err)
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyMeta), data)
	}); err != nil {
		return SnapshotMeta{}, fmt.Errorf("write snapshot meta: %w", err)
	}

	logging.Info().
		Str("build_id", meta.BuildID).
		Int("count", meta.Count).
		Str("source", source).
		Msg("catalog snapshot saved")
	return meta, nil
}

// Meta returns the metadata of the stored snapshot.
func (s *SnapshotStore) Meta() (SnapshotMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return SnapshotMeta{}, ErrSnapshotClosed
	}

	var meta SnapshotMeta
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyMeta))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSnapshotEmpty
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		})
	})
	if err != nil {
		return SnapshotMeta{}, err
	}
	return meta, nil
}

// Load returns the stored catalog in its original order.
func (s *SnapshotStore) Load(ctx context.Context) ([]Movie, error) {
	meta, err := s.Meta()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrSnapshotClosed
	}

	movies := make([]Movie, 0, meta.Count)
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixMovie)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			var m Movie
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			movies = append(movies, m)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if len(movies) != meta.Count {
		return nil, fmt.Errorf("snapshot %s has %d movies, meta says %d: %w",
			meta.BuildID, len(movies), meta.Count, ErrSnapshotEmpty)
	}
	return movies, nil
}

func (s *SnapshotStore) String() string {
	return "snapshot:" + s.path
}

// Close closes the underlying database. It is safe to call more than once.
func (s *SnapshotStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// movieKey keeps keys in corpus order under badger's byte ordering.
func movieKey(i int) []byte {
	return []byte(fmt.Sprintf("%s%08d", prefixMovie, i))
}

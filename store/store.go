// Package store is a small pebble-backed key-value store whose read
// snapshots are counted values: a snapshot stays pinned exactly as
// long as owners of its view remain, and closes itself when the last
// one releases.
package store

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"muninn/cache"
)

// ErrNotFound reports a key with no value, in the store or in a view.
var ErrNotFound = errors.New("store: key not found")

// ErrClosed reports a read through a view whose snapshot is gone.
var ErrClosed = errors.New("store: view closed")

// -------------------- Options --------------------

type Options struct {
	// Dir is the database directory.
	Dir string
	// FS overrides the filesystem; nil means the real one.
	FS vfs.FS
	// DisableWAL trades durability for write speed.
	DisableWAL bool
}

// -------------------- Store --------------------

type Store struct {
	db    *pebble.DB
	wo    *pebble.WriteOptions
	views *cache.Table[string, View]
}

func Open(opts Options) (*Store, error) {
	db, err := pebble.Open(opts.Dir, &pebble.Options{
		FS:         opts.FS,
		DisableWAL: opts.DisableWAL,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	wo := pebble.Sync
	if opts.DisableWAL {
		// Sync has nothing to sync without a WAL.
		wo = pebble.NoSync
	}
	return &Store{
		db:    db,
		wo:    wo,
		views: cache.NewTable[string, View](),
	}, nil
}

// OpenMem opens a store on an in-memory filesystem. Nothing survives
// Close; meant for tests and examples.
func OpenMem() (*Store, error) {
	return Open(Options{Dir: "mem", FS: vfs.NewMem(), DisableWAL: true})
}

// Close shuts the database down. Every view must have been released
// first: pebble refuses to close over a still-open snapshot.
func (s *Store) Close() error {
	s.views.Clear()
	return s.db.Close()
}

// -------------------- API --------------------

func (s *Store) Put(key, val []byte) error {
	return s.db.Set(key, val, s.wo)
}

func (s *Store) Get(key []byte) ([]byte, error) {
	val, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	out := append([]byte(nil), val...)
	if err := closer.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Delete(key []byte) error {
	return s.db.Delete(key, s.wo)
}

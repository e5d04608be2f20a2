package store

import (
	"errors"

	"github.com/cockroachdb/pebble"

	"muninn/refcnt"
)

// -------------------- View --------------------

// View reads the store as it stood when the view was pinned. Views
// reach callers only inside Shared handles; when the last owner
// releases, the teardown hook closes the underlying pebble snapshot.
type View struct {
	snap *pebble.Snapshot
}

// Close releases the pinned snapshot. Handle teardown calls it exactly
// once; calling it on an already closed view is a no-op.
func (v *View) Close() error {
	if v.snap == nil {
		return nil
	}
	err := v.snap.Close()
	v.snap = nil
	return err
}

// Get reads key from the pinned state.
func (v *View) Get(key []byte) ([]byte, error) {
	if v.snap == nil {
		return nil, ErrClosed
	}
	val, closer, err := v.snap.Get(key)
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

// Scan visits every pair under prefix in key order. The callback's
// slices are only valid during the call; any error it returns stops
// the walk.
func (v *View) Scan(prefix []byte, fn func(key, val []byte) error) error {
	if v.snap == nil {
		return ErrClosed
	}
	iter, err := v.snap.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixEnd(prefix),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if err := fn(iter.Key(), iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}

// -------------------- Pinning --------------------

// Snapshot pins the store's current contents in a fresh counted view
// with one owner.
func (s *Store) Snapshot() *refcnt.Shared[View] {
	return refcnt.MakeWith(func(v *View) { v.snap = s.db.NewSnapshot() })
}

// Acquire returns an owner of the view cached under label, pinning a
// fresh snapshot when no live one is there. Callers sharing a label
// read the same point in time until the last of them releases.
func (s *Store) Acquire(label string) *refcnt.Shared[View] {
	return s.views.GetOrBuild(label, s.Snapshot)
}

// SweepViews prunes cache entries whose snapshot has closed and
// reports how many it dropped.
func (s *Store) SweepViews() int {
	return s.views.Sweep(0)
}

// -------------------- Helpers --------------------

// prefixEnd is the smallest key greater than every key under prefix,
// nil when no bound is needed.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

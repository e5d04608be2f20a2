// Package cache provides a weak-valued lookup table over counted
// values: the table can find a value again while owners elsewhere keep
// it alive, and never extends the value's lifetime itself.
package cache

import (
	"errors"

	"github.com/eapache/queue"

	"muninn/refcnt"
)

// ticket remembers one insertion for the sweeper. Identity of the weak
// handle tells a current ticket from one left behind by a replacement.
type ticket[K comparable, V any] struct {
	key K
	w   *refcnt.Weak[V]
}

// Table maps keys to weak observers. Lookups upgrade to full owners;
// entries whose value has been released elsewhere turn into misses and
// are pruned either on access or by Sweep. Same single-goroutine
// contract as the handles it stores.
type Table[K comparable, V any] struct {
	entries map[K]*refcnt.Weak[V]
	ring    *queue.Queue
}

// NewTable returns an empty table.
func NewTable[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{
		entries: make(map[K]*refcnt.Weak[V]),
		ring:    queue.New(),
	}
}

// Put records an observer of src's value under key. The table never
// owns the value: callers keep it alive, the table only finds it
// again. A previous entry under the same key is released first. src
// must be a non-empty owner.
func (t *Table[K, V]) Put(key K, src *refcnt.Shared[V]) {
	w := src.Weak()
	if old, ok := t.entries[key]; ok {
		old.Release()
	}
	t.entries[key] = w
	t.ring.Add(ticket[K, V]{key: key, w: w})
}

// Get upgrades the entry under key to an owner. A missing key or an
// expired entry is a miss; expired entries are pruned on the spot.
func (t *Table[K, V]) Get(key K) (*refcnt.Shared[V], bool) {
	w, ok := t.entries[key]
	if !ok {
		return nil, false
	}
	s, err := w.Lock()
	if err != nil {
		if errors.Is(err, refcnt.ErrStale) {
			w.Release()
			delete(t.entries, key)
		}
		return nil, false
	}
	return s, true
}

// GetOrBuild returns an owner for key, calling build on a miss and
// recording what it returns. An empty or nil build result is handed
// back without being recorded.
func (t *Table[K, V]) GetOrBuild(key K, build func() *refcnt.Shared[V]) *refcnt.Shared[V] {
	if s, ok := t.Get(key); ok {
		return s
	}
	s := build()
	if s == nil || !s.Valid() {
		return s
	}
	t.Put(key, s)
	return s
}

// Remove drops the entry under key, reporting whether one was there.
func (t *Table[K, V]) Remove(key K) bool {
	w, ok := t.entries[key]
	if !ok {
		return false
	}
	w.Release()
	delete(t.entries, key)
	return true
}

// Sweep pops up to max insertion tickets and prunes entries whose
// value is gone, returning how many entries it removed. max <= 0
// walks the whole ring once. Tickets for live entries requeue; tickets
// orphaned by Put replacements or earlier pruning just drain away.
func (t *Table[K, V]) Sweep(max int) int {
	n := t.ring.Length()
	if max > 0 && max < n {
		n = max
	}
	pruned := 0
	for i := 0; i < n; i++ {
		tk := t.ring.Remove().(ticket[K, V])
		cur, ok := t.entries[tk.key]
		if !ok || cur != tk.w {
			continue
		}
		if cur.Expired() {
			cur.Release()
			delete(t.entries, tk.key)
			pruned++
			continue
		}
		t.ring.Add(tk)
	}
	return pruned
}

// Len counts recorded entries, live or expired.
func (t *Table[K, V]) Len() int { return len(t.entries) }

// Clear releases every entry and resets the sweep ring.
func (t *Table[K, V]) Clear() {
	for k, w := range t.entries {
		w.Release()
		delete(t.entries, k)
	}
	t.ring = queue.New()
}

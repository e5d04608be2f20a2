package alloc

import "sync/atomic"

// Kind labels the two block shapes the allocator serves.
type Kind uint8

const (
	// KindDirect is a block wrapping a separately allocated value.
	KindDirect Kind = iota
	// KindCombined is a block embedding its value in one record.
	KindCombined

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindCombined:
		return "combined"
	default:
		return "unknown"
	}
}

var (
	allocs [kindCount]atomic.Int64
	frees  [kindCount]atomic.Int64
)

// New hands out one zeroed record of the requested block shape.
func New[B any](k Kind) *B {
	allocs[k].Add(1)
	return new(B)
}

// Drop takes a record back. The record is zeroed so anything still
// pointing at it observes a dead block rather than stale counts; after
// Drop the record must never be used again.
func Drop[B any](k Kind, b *B) {
	var zero B
	*b = zero
	frees[k].Add(1)
}

// Stats is a point-in-time view of the allocator counters.
type Stats struct {
	DirectAllocs   int64
	DirectFrees    int64
	CombinedAllocs int64
	CombinedFrees  int64
}

// Live is the number of block records handed out and not yet dropped.
func (s Stats) Live() int64 {
	return (s.DirectAllocs - s.DirectFrees) + (s.CombinedAllocs - s.CombinedFrees)
}

// Snapshot reads the counters.
func Snapshot() Stats {
	return Stats{
		DirectAllocs:   allocs[KindDirect].Load(),
		DirectFrees:    frees[KindDirect].Load(),
		CombinedAllocs: allocs[KindCombined].Load(),
		CombinedFrees:  frees[KindCombined].Load(),
	}
}

// Reset zeroes the counters. Test helper; production code has no
// reason to forget what it allocated.
func Reset() {
	for k := Kind(0); k < kindCount; k++ {
		allocs[k].Store(0)
		frees[k].Store(0)
	}
}

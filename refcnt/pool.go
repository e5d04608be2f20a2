package refcnt

import "muninn/alloc"

// Pool recycles dead combined-block storage for one value type. Blocks
// made through a pool return to its free ring on deallocation instead
// of going back to the host, so hot create/release cycles stop paying
// for allocation. A recycled block is a fresh incarnation: zero counts,
// zero value, no history.
//
// The ring is single-threaded like everything else in this package.
// Package-level Make and Own never touch a pool; pooling is opt-in per
// Pool instance.
type Pool[T any] struct {
	buf  []*combinedBlock[T]
	head uint64
	tail uint64
	mask uint64
}

// NewPool allocates a pool whose free ring holds up to size blocks.
func NewPool[T any](size uint64) *Pool[T] {
	if size == 0 || size&(size-1) != 0 {
		panic("refcnt: pool size must be a power of two")
	}
	return &Pool[T]{
		buf:  make([]*combinedBlock[T], size),
		mask: size - 1,
	}
}

// Make is the factory drawing block storage from the pool.
func (p *Pool[T]) Make(v T) *Shared[T] {
	return p.MakeWith(func(q *T) { *q = v })
}

// MakeWith is the placement form of Pool.Make.
func (p *Pool[T]) MakeWith(init func(*T)) *Shared[T] {
	b := newCombinedBlock(p)
	init(&b.val)
	return adopt[T](b)
}

// take hands out one recycled block, nil when the ring is empty.
func (p *Pool[T]) take() *combinedBlock[T] {
	if p.tail == p.head {
		return nil
	}
	b := p.buf[p.tail&p.mask]
	p.buf[p.tail&p.mask] = nil
	p.tail++
	return b
}

// recycle parks a deallocated block for reuse; false when the ring is
// full and the storage has to go back to the host instead.
func (p *Pool[T]) recycle(b *combinedBlock[T]) bool {
	if p.head-p.tail == uint64(len(p.buf)) {
		return false
	}
	*b = combinedBlock[T]{}
	p.buf[p.head&p.mask] = b
	p.head++
	return true
}

// Drain returns all parked storage to the host allocator and reports
// how many blocks were let go. Call it when the pool goes out of
// service so live-storage accounting settles.
func (p *Pool[T]) Drain() int {
	n := 0
	for {
		b := p.take()
		if b == nil {
			return n
		}
		alloc.Drop(alloc.KindCombined, b)
		n++
	}
}

// Len is the number of parked blocks; Cap the ring capacity.
func (p *Pool[T]) Len() int { return int(p.head - p.tail) }
func (p *Pool[T]) Cap() int { return len(p.buf) }

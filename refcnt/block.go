package refcnt

import "muninn/alloc"

// counts is the bookkeeping half of a control block: how many owners
// keep the value alive, and how many observers keep the block's storage
// alive after the value is gone. Plain integers; see the package doc
// for the threading contract.
type counts struct {
	shared uint32
	weak   uint32
	freed  bool
}

func (c *counts) incShared() {
	if c.freed {
		panic("refcnt: use of deallocated block")
	}
	c.shared++
}

func (c *counts) decShared() {
	if c.freed {
		panic("refcnt: use of deallocated block")
	}
	if c.shared == 0 {
		panic("refcnt: shared count underflow")
	}
	c.shared--
}

func (c *counts) incWeak() {
	if c.freed {
		panic("refcnt: use of deallocated block")
	}
	c.weak++
}

func (c *counts) decWeak() {
	if c.freed {
		panic("refcnt: use of deallocated block")
	}
	if c.weak == 0 {
		panic("refcnt: weak count underflow")
	}
	c.weak--
}

// control is the block capability the handles operate through. It is a
// closed set: directBlock wraps a separately allocated value,
// combinedBlock embeds the value in the block's own storage. No third
// shape exists.
type control[T any] interface {
	refs() *counts
	pointee() *T
	destroy()
	deallocate()
}

// directBlock owns a value that was heap-allocated before the block
// existed. Its teardown hook is resolved against the concrete type at
// birth, so destruction stays type-correct however the block is later
// reached.
type directBlock[T any] struct {
	counts
	ptr *T
	fin func(*T)
}

func newDirectBlock[T any](p *T) *directBlock[T] {
	b := alloc.New[directBlock[T]](alloc.KindDirect)
	b.ptr = p
	b.fin = finalizerFor[T]()
	return b
}

func (b *directBlock[T]) refs() *counts { return &b.counts }

func (b *directBlock[T]) pointee() *T { return b.ptr }

func (b *directBlock[T]) destroy() {
	if b.ptr == nil {
		return
	}
	if b.fin != nil {
		b.fin(b.ptr)
	}
	var zero T
	*b.ptr = zero
	b.ptr = nil
}

func (b *directBlock[T]) deallocate() {
	alloc.Drop(alloc.KindDirect, b)
	b.freed = true
}

// combinedBlock embeds the value: one allocation carries counters and
// storage both. The value field is the storage; destroy clears it in
// place and deallocate alone lets go of it.
type combinedBlock[T any] struct {
	counts
	val  T
	fin  func(*T)
	home *Pool[T]
}

func newCombinedBlock[T any](home *Pool[T]) *combinedBlock[T] {
	if home != nil {
		if b := home.take(); b != nil {
			b.fin = finalizerFor[T]()
			b.home = home
			return b
		}
	}
	b := alloc.New[combinedBlock[T]](alloc.KindCombined)
	b.fin = finalizerFor[T]()
	b.home = home
	return b
}

func (b *combinedBlock[T]) refs() *counts { return &b.counts }

func (b *combinedBlock[T]) pointee() *T { return &b.val }

func (b *combinedBlock[T]) destroy() {
	if b.fin != nil {
		b.fin(&b.val)
	}
	var zero T
	b.val = zero
}

func (b *combinedBlock[T]) deallocate() {
	if b.home != nil && b.home.recycle(b) {
		return
	}
	alloc.Drop(alloc.KindCombined, b)
	b.freed = true
}

package refcnt

// Shared is an owning handle on a counted value. Each live handle is
// one shared reference; the value survives exactly as long as at least
// one owner does. The zero value is the empty owner.
//
// Handles are passed and stored as *Shared[T]. Copying the struct
// directly would alias the block without adjusting its counts; use
// Clone, Move, Assign or MoveFrom instead.
type Shared[T any] struct {
	ctl control[T]
	ptr *T
}

// Own takes ownership of a separately allocated value. A direct block
// is created for the concrete type with a shared count of one. A nil p
// still gets a block: the owner is non-empty, Get returns nil, and
// Deref panics.
func Own[T any](p *T) *Shared[T] {
	return adopt[T](newDirectBlock(p))
}

// adopt wraps an existing block in a fresh owner, contributing one
// shared reference. The factory and weak upgrade both funnel through
// here.
func adopt[T any](ctl control[T]) *Shared[T] {
	ctl.refs().incShared()
	return &Shared[T]{ctl: ctl, ptr: ctl.pointee()}
}

// Clone shares the block: one more owner of the same value. Cloning an
// empty owner yields an empty owner.
func (s *Shared[T]) Clone() *Shared[T] {
	if s.ctl == nil {
		return &Shared[T]{}
	}
	s.ctl.refs().incShared()
	return &Shared[T]{ctl: s.ctl, ptr: s.ptr}
}

// Move transfers the reference to a fresh handle. The source becomes
// empty and no count changes.
func (s *Shared[T]) Move() *Shared[T] {
	out := &Shared[T]{ctl: s.ctl, ptr: s.ptr}
	s.ctl, s.ptr = nil, nil
	return out
}

// Assign replaces the held reference with src's. The old block goes
// through the full release protocol first, then src's block is adopted
// with one more shared reference. Assigning a handle to itself is a
// no-op.
func (s *Shared[T]) Assign(src *Shared[T]) {
	if s == src {
		return
	}
	s.Release()
	if src.ctl == nil {
		return
	}
	src.ctl.refs().incShared()
	s.ctl, s.ptr = src.ctl, src.ptr
}

// MoveFrom releases the held reference and steals src's, leaving src
// empty. No count changes for the transferred reference.
func (s *Shared[T]) MoveFrom(src *Shared[T]) {
	if s == src {
		return
	}
	s.Release()
	s.ctl, s.ptr = src.ctl, src.ptr
	src.ctl, src.ptr = nil, nil
}

// Get returns the owned value's address, or nil for an empty owner.
// The cached pointer answers first; the block is asked otherwise.
func (s *Shared[T]) Get() *T {
	if s.ptr != nil {
		return s.ptr
	}
	if s.ctl != nil {
		return s.ctl.pointee()
	}
	return nil
}

// Deref is the dereference and member-access path. On an empty owner
// (or an owner of a nil raw pointer) it panics with ErrNilAccess
// instead of handing out a pointer that corrupts memory.
func (s *Shared[T]) Deref() *T {
	p := s.Get()
	if p == nil {
		panic(ErrNilAccess)
	}
	return p
}

// UseCount reports how many owners currently share the value, zero for
// an empty owner.
func (s *Shared[T]) UseCount() uint32 {
	if s.ctl == nil {
		return 0
	}
	return s.ctl.refs().shared
}

// Valid reports whether the handle references a block.
func (s *Shared[T]) Valid() bool { return s.ctl != nil }

// Reset detaches the owner, as if the empty owner were assigned.
func (s *Shared[T]) Reset() { s.Release() }

// Release drops this owner's reference and runs the destruction
// protocol: the last shared reference destroys the value, and the
// block's storage follows immediately unless weak observers remain, in
// which case the block lingers for their bookkeeping until the last of
// them lets go. Releasing an empty owner is a no-op, so Release is
// safe to defer and to call twice.
func (s *Shared[T]) Release() {
	ctl := s.ctl
	if ctl == nil {
		return
	}
	s.ctl, s.ptr = nil, nil
	c := ctl.refs()
	if c.shared == 0 {
		return
	}
	c.decShared()
	if c.shared == 0 {
		ctl.destroy()
		if c.weak == 0 {
			ctl.deallocate()
		}
	}
}

// Weak derives an observer for the owned value: weak count up by one,
// shared count untouched. The source owner must be non-empty.
func (s *Shared[T]) Weak() *Weak[T] {
	if s.ctl == nil {
		panic(ErrNilAccess)
	}
	s.ctl.refs().incWeak()
	return &Weak[T]{ctl: s.ctl}
}

package refcnt

// Weak observes a counted value without keeping it alive. It holds the
// block, never the value: the weak count it contributes retains only
// the block's storage, so expiry stays detectable after the value is
// destroyed. The zero value is the empty observer.
type Weak[T any] struct {
	ctl control[T]
}

// Clone adds one more observer of the same block. Cloning an empty
// observer yields an empty observer.
func (w *Weak[T]) Clone() *Weak[T] {
	if w.ctl == nil {
		return &Weak[T]{}
	}
	w.ctl.refs().incWeak()
	return &Weak[T]{ctl: w.ctl}
}

// Move transfers the observation to a fresh handle, leaving w empty.
// No count changes.
func (w *Weak[T]) Move() *Weak[T] {
	out := &Weak[T]{ctl: w.ctl}
	w.ctl = nil
	return out
}

// Assign replaces the observed block with src's: the old block is let
// go by the weak release rule first, then src's block gains one weak
// reference. Self-assignment is a no-op.
func (w *Weak[T]) Assign(src *Weak[T]) {
	if w == src {
		return
	}
	w.Release()
	if src.ctl == nil {
		return
	}
	src.ctl.refs().incWeak()
	w.ctl = src.ctl
}

// MoveFrom releases the observed block and steals src's, leaving src
// empty.
func (w *Weak[T]) MoveFrom(src *Weak[T]) {
	if w == src {
		return
	}
	w.Release()
	w.ctl = src.ctl
	src.ctl = nil
}

// Expired reports whether the observed value no longer exists: either
// the observer is empty or every owner has released.
func (w *Weak[T]) Expired() bool {
	return w.ctl == nil || w.ctl.refs().shared == 0
}

// Lock upgrades the observer to a full owner of the value, raising the
// shared count by one. Once the value is gone the upgrade fails with
// ErrStale, deterministically; destroyed memory is never handed out.
func (w *Weak[T]) Lock() (*Shared[T], error) {
	if w.Expired() {
		return nil, ErrStale
	}
	return adopt(w.ctl), nil
}

// Release drops the observer's claim on the block's storage: weak
// count down by one, and when both counts have reached zero the block
// is deallocated. Releasing an empty observer is a no-op.
func (w *Weak[T]) Release() {
	ctl := w.ctl
	if ctl == nil {
		return
	}
	w.ctl = nil
	c := ctl.refs()
	if c.weak > 0 {
		c.decWeak()
	}
	if c.weak == 0 && c.shared == 0 {
		ctl.deallocate()
	}
}

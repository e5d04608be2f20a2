package refcnt

// Make builds the value inside a combined block and returns its first
// owner: a single allocation carries the counters and the value both,
// halving the allocations of the Own path.
func Make[T any](v T) *Shared[T] {
	return MakeWith(func(p *T) { *p = v })
}

// MakeWith is the placement form of Make: init receives the address of
// the block's embedded storage and constructs the value there, with no
// intermediate value object. Use it when the value must never move
// after construction.
func MakeWith[T any](init func(*T)) *Shared[T] {
	b := newCombinedBlock[T](nil)
	init(&b.val)
	return adopt[T](b)
}

package refcnt

import "errors"

// ErrStale is returned by Weak.Lock once the observed value has been
// destroyed. It is an expected, recoverable condition; match it with
// errors.Is.
var ErrStale = errors.New("refcnt: stale reference")

// ErrNilAccess is the panic value for dereferencing an empty owner or
// deriving an observer from one. It marks a caller bug, not a runtime
// condition to handle.
var ErrNilAccess = errors.New("refcnt: access through empty owner")

// Package refcnt provides a manual shared-ownership primitive: a
// counted owner handle that keeps a heap value alive, and a weak
// observer handle that can watch the value die without extending its
// lifetime.
//
// Every owned value is backed by a control block carrying two counters.
// The shared count is the number of owners; when it reaches zero the
// value is destroyed, exactly once. The weak count is the number of
// observers; the block's storage is retained until both counters are
// zero, so an observer can always distinguish a dead value from a
// dangling block.
//
// Handles are single-threaded. The counters are plain integers, and
// all handles over one block must be used from a single goroutine.
// Mutating one block's counts from several goroutines is an
// unsupported data race; a concurrency-safe variant would need atomic
// counters and is not provided here.
package refcnt

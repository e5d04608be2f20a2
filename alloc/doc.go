// Package alloc is the storage side of the ownership machinery: it
// hands out zeroed block records, takes them back, and keeps per-kind
// counters of what is in flight. The counters are the observable
// witness that every block is deallocated exactly once; a live count
// that does not return to zero is a leaked block.
//
// Counters are atomic so a metrics scrape can read them from outside
// the owning goroutine; the blocks themselves remain single-threaded.
package alloc

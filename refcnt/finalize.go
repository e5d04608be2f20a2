package refcnt

import (
	"io"
	"log"
)

// Finalizer is implemented by owned values that need teardown before
// their storage is cleared. Values implementing io.Closer instead get
// Close; Finalize wins when both are present. Custom teardown beyond
// these two hooks is out of scope.
type Finalizer interface {
	Finalize()
}

// finalizerFor resolves the teardown hook for the concrete owned type
// once, when a block is born. Close errors have no channel to the
// caller at destruction time, so they are logged and dropped.
func finalizerFor[T any]() func(*T) {
	var probe *T
	if _, ok := any(probe).(Finalizer); ok {
		return func(p *T) { any(p).(Finalizer).Finalize() }
	}
	if _, ok := any(probe).(io.Closer); ok {
		return func(p *T) {
			if err := any(p).(io.Closer).Close(); err != nil {
				log.Printf("refcnt: finalize: %v", err)
			}
		}
	}
	return nil
}

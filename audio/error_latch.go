package audio

import "sync/atomic"

// errorLatch keeps the first error reported by a driver goroutine.
type errorLatch struct {
	p atomic.Pointer[error]
}

func (l *errorLatch) Set(err error) {
	if err != nil {
		l.p.CompareAndSwap(nil, &err)
	}
}

func (l *errorLatch) Get() error {
	if p := l.p.Load(); p != nil {
		return *p
	}
	return nil
}

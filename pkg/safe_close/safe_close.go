// Package safe_close coordinates graceful shutdown of attached goroutines.
package safe_close

import (
	"sync"
)

// SafeClose fans a close signal out to every attached goroutine and
// waits until all of them report done. The first error sent with the
// close signal is kept.
type SafeClose struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	closeCh  chan struct{}
	closed   bool
	closeErr error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeCh: make(chan struct{}),
	}
}

// Attach starts f in its own goroutine. f must call done() when it
// finishes and must return promptly once closeSignal fires.
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go f(s.wg.Done, s.closeCh)
}

// SendCloseSignal triggers shutdown. Safe to call multiple times;
// only the first err is recorded.
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.closeErr = err
	close(s.closeCh)
}

// WaitClosed blocks until every attached goroutine has called done,
// returning the error passed to the first SendCloseSignal.
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeErr
}

// HasClosed reports whether the close signal has been sent.
func (s *SafeClose) HasClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

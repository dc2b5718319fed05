package promise

import "sync"

// Promise is a single-assignment result handed to callers that want to
// wait for a flush they did not perform themselves.
type Promise[T any] struct {
	once sync.Once
	done chan struct{}
	res  T
	err  error
}

func New[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// Fulfilled returns an already-resolved promise.
func Fulfilled[T any](err error, res T) *Promise[T] {
	p := New[T]()
	p.Done(res, err)
	return p
}

// Done resolves the promise. Calls after the first are no-ops.
func (p *Promise[T]) Done(res T, err error) {
	p.once.Do(func() {
		p.res = res
		p.err = err
		close(p.done)
	})
}

// Get blocks until the promise is resolved.
func (p *Promise[T]) Get() (T, error) {
	<-p.done
	return p.res, p.err
}

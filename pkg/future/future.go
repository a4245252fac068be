// Package future provides an eventually-resolving result type and a bounded
// pool that dispatches work without blocking the caller.
package future

import "context"

// Future holds the result of an operation that completes asynchronously.
// A Future resolves exactly once, with a value or with an error.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(val T, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// Resolved returns a Future already completed with val.
func Resolved[T any](val T) *Future[T] {
	f := newFuture[T]()
	f.resolve(val, nil)
	return f
}

// Failed returns a Future already completed with err.
func Failed[T any](err error) *Future[T] {
	f := newFuture[T]()
	var zero T
	f.resolve(zero, err)
	return f
}

// Done is closed once the Future has resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the Future resolves or ctx is done, whichever comes first.
// Giving up on ctx does not cancel the underlying operation.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result blocks until the Future resolves.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.val, f.err
}

// Then returns a Future resolved with fn applied to the value of f.
// If f fails, fn is not called and the error is propagated.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	next := newFuture[U]()
	go func() {
		val, err := f.Result()
		if err != nil {
			var zero U
			next.resolve(zero, err)
			return
		}
		next.resolve(fn(val))
	}()
	return next
}

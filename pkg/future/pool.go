package future

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// PanicError reports a panic recovered while running pooled work.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("pooled operation panicked: %v", e.Value)
}

// Pool runs work on at most Size concurrent goroutines. Submissions never
// block: excess work waits for a slot inside its own goroutine.
type Pool struct {
	sem     *semaphore.Weighted
	size    int64
	timeout time.Duration
	mapErr  func(error) error
	mu      sync.RWMutex
	wg      sync.WaitGroup
	closed  bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithTimeout bounds every operation run by the pool. Zero disables the bound.
func WithTimeout(d time.Duration) PoolOption {
	return func(p *Pool) {
		p.timeout = d
	}
}

// WithErrorMapper translates every error a pooled operation resolves with,
// including slot acquisition failures and recovered panics.
func WithErrorMapper(fn func(error) error) PoolOption {
	return func(p *Pool) {
		p.mapErr = fn
	}
}

// NewPool creates a pool with size concurrent slots. A size below one is
// treated as one.
func NewPool(size int64, opts ...PoolOption) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{
		sem:  semaphore.NewWeighted(size),
		size: size,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the number of concurrent slots.
func (p *Pool) Size() int64 {
	return p.size
}

// ErrPoolClosed is returned for work submitted after Close.
var ErrPoolClosed = errors.New("future: pool is closed")

// Go runs fn on pool p and returns a Future for its result.
func Go[T any](p *Pool, ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return Failed[T](p.mapError(ErrPoolClosed))
	}
	p.wg.Add(1)
	p.mu.RUnlock()

	f := newFuture[T]()
	go func() {
		defer p.wg.Done()
		val, err := run(p, ctx, fn)
		if err != nil {
			var zero T
			f.resolve(zero, p.mapError(err))
			return
		}
		f.resolve(val, nil)
	}()
	return f
}

func run[T any](p *Pool, ctx context.Context, fn func(context.Context) (T, error)) (val T, err error) {
	runCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.sem.Acquire(runCtx, 1); err != nil {
		return val, err
	}
	defer p.sem.Release(1)

	defer func() {
		if r := recover(); r != nil {
			var zero T
			val, err = zero, &PanicError{Value: r}
		}
	}()
	return fn(runCtx)
}

func (p *Pool) mapError(err error) error {
	if p.mapErr == nil {
		return err
	}
	return p.mapErr(err)
}

// Close stops accepting new work and waits for in-flight work to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
}

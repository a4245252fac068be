package future_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pyrocube-Network/EconomyApi/pkg/future"
)

func TestResolvedAndFailed(t *testing.T) {
	v, err := future.Resolved(7).Result()
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	boom := errors.New("boom")
	_, err = future.Failed[int](boom).Result()
	assert.ErrorIs(t, err, boom)
}

func TestAwait_ContextDone(t *testing.T) {
	p := future.NewPool(1)
	defer p.Close()

	release := make(chan struct{})
	f := future.Go(p, context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	v, err := f.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestThen(t *testing.T) {
	f := future.Then(future.Resolved(21), func(v int) (string, error) {
		return strconv.Itoa(v * 2), nil
	})
	v, err := f.Result()
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	boom := errors.New("boom")
	called := false
	g := future.Then(future.Failed[int](boom), func(int) (string, error) {
		called = true
		return "", nil
	})
	_, err = g.Result()
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestPool_BoundsConcurrency(t *testing.T) {
	p := future.NewPool(2)
	defer p.Close()

	var current, peak atomic.Int32
	var wg sync.WaitGroup
	futures := make([]*future.Future[int], 0, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		futures = append(futures, future.Go(p, context.Background(), func(context.Context) (int, error) {
			defer wg.Done()
			n := current.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			current.Add(-1)
			return i, nil
		}))
	}
	wg.Wait()

	for i, f := range futures {
		v, err := f.Result()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestPool_TimeoutAndMapper(t *testing.T) {
	mapped := errors.New("mapped timeout")
	p := future.NewPool(1,
		future.WithTimeout(5*time.Millisecond),
		future.WithErrorMapper(func(err error) error {
			if errors.Is(err, context.DeadlineExceeded) {
				return mapped
			}
			return err
		}),
	)
	defer p.Close()

	f := future.Go(p, context.Background(), func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	_, err := f.Result()
	assert.ErrorIs(t, err, mapped)
}

func TestPool_RecoversPanics(t *testing.T) {
	p := future.NewPool(1)
	defer p.Close()

	f := future.Go(p, context.Background(), func(context.Context) (int, error) {
		panic("kaboom")
	})
	_, err := f.Result()

	var pe *future.PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "kaboom", pe.Value)
}

func TestPool_Closed(t *testing.T) {
	p := future.NewPool(1)
	p.Close()

	_, err := future.Go(p, context.Background(), func(context.Context) (int, error) {
		return 1, nil
	}).Result()
	assert.ErrorIs(t, err, future.ErrPoolClosed)
}

func TestPool_Size(t *testing.T) {
	p := future.NewPool(0)
	defer p.Close()
	assert.Equal(t, int64(1), p.Size())

	q := future.NewPool(4)
	defer q.Close()
	assert.Equal(t, int64(4), q.Size())
}

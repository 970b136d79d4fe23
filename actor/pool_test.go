// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package actor

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/troupe/internal/pause"
	"github.com/tochemey/troupe/log"
)

func TestNewPool(t *testing.T) {
	t.Run("With distinct instances", func(t *testing.T) {
		ctx := t.Context()
		spawner := Spawner[worker](func() *worker { return new(worker) })
		pool := NewPool(spawner, 3, WithLogger(log.DiscardLogger))
		require.Equal(t, 3, pool.Size())

		names := make(map[string]struct{})
		leases := make([]*Lease[worker], 0, 3)
		for range 3 {
			lease, err := pool.Take()
			require.NoError(t, err)
			name, err := Ask(ctx, lease, whoami{})
			require.NoError(t, err)
			names[name] = struct{}{}
			leases = append(leases, lease)
		}
		require.Len(t, names, 3)

		for _, lease := range leases {
			lease.Release()
		}
		require.NoError(t, pool.Close(ctx))
	})

	t.Run("With invalid construction", func(t *testing.T) {
		spawner := Spawner[worker](func() *worker { return new(worker) })
		require.Panics(t, func() {
			NewPool[worker](nil, 2)
		})
		require.Panics(t, func() {
			NewPool(spawner, 0)
		})
	})

	t.Run("With the default size", func(t *testing.T) {
		ctx := t.Context()
		spawner := Spawner[worker](func() *worker { return new(worker) })
		pool := NewDefaultPool(spawner, WithLogger(log.DiscardLogger))
		require.Equal(t, runtime.NumCPU(), pool.Size())
		require.NoError(t, pool.Close(ctx))
	})
}

func TestPoolTake(t *testing.T) {
	t.Run("With instances reused across leases", func(t *testing.T) {
		ctx := t.Context()
		spawner := Spawner[worker](func() *worker { return new(worker) })
		pool := NewPool(spawner, 2, WithLogger(log.DiscardLogger))

		names := make(map[string]struct{})
		for range 6 {
			lease, err := pool.Take()
			require.NoError(t, err)
			name, err := Ask(ctx, lease, whoami{})
			require.NoError(t, err)
			names[name] = struct{}{}
			lease.Release()
		}
		require.Len(t, names, 2)

		require.NoError(t, pool.Close(ctx))
	})

	t.Run("With Take blocking until a release", func(t *testing.T) {
		ctx := t.Context()
		spawner := Spawner[worker](func() *worker { return new(worker) })
		pool := NewPool(spawner, 1, WithLogger(log.DiscardLogger))

		lease, err := pool.Take()
		require.NoError(t, err)

		go func() {
			pause.For(100 * time.Millisecond)
			lease.Release()
		}()

		start := time.Now()
		next, err := pool.Take()
		require.NoError(t, err)
		require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

		next.Release()
		require.NoError(t, pool.Close(ctx))
	})

	t.Run("With Take unblocked by Close", func(t *testing.T) {
		ctx := t.Context()
		spawner := Spawner[worker](func() *worker { return new(worker) })
		pool := NewPool(spawner, 1, WithLogger(log.DiscardLogger))

		lease, err := pool.Take()
		require.NoError(t, err)
		addr := lease.Address()

		taken := make(chan error, 1)
		go func() {
			_, err := pool.Take()
			taken <- err
		}()
		pause.For(50 * time.Millisecond)

		require.NoError(t, pool.Close(ctx))
		require.ErrorIs(t, <-taken, ErrPoolClosed)

		lease.Release()
		waitDone(t, addr)
	})

	t.Run("With concurrent leases", func(t *testing.T) {
		ctx := t.Context()
		spawner := Spawner[worker](func() *worker { return new(worker) })
		pool := NewPool(spawner, 4, WithLogger(log.DiscardLogger))

		g := new(errgroup.Group)
		for range 16 {
			g.Go(func() error {
				lease, err := pool.TakeWithin(time.Second)
				if err != nil {
					return err
				}
				defer lease.Release()
				_, err = Ask(ctx, lease, whoami{})
				return err
			})
		}
		require.NoError(t, g.Wait())

		require.NoError(t, pool.Close(ctx))
	})
}

func TestPoolTakeWithin(t *testing.T) {
	t.Run("With an instance available", func(t *testing.T) {
		ctx := t.Context()
		spawner := Spawner[worker](func() *worker { return new(worker) })
		pool := NewPool(spawner, 1, WithLogger(log.DiscardLogger))

		lease, err := pool.TakeWithin(time.Second)
		require.NoError(t, err)
		lease.Release()

		require.NoError(t, pool.Close(ctx))
	})

	t.Run("With every instance leased out", func(t *testing.T) {
		ctx := t.Context()
		spawner := Spawner[worker](func() *worker { return new(worker) })
		pool := NewPool(spawner, 1, WithLogger(log.DiscardLogger))

		lease, err := pool.Take()
		require.NoError(t, err)

		start := time.Now()
		_, err = pool.TakeWithin(100 * time.Millisecond)
		require.ErrorIs(t, err, ErrPoolTimeout)
		require.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)

		lease.Release()
		require.NoError(t, pool.Close(ctx))
	})
}

func TestPoolClose(t *testing.T) {
	t.Run("With idle instances stopped", func(t *testing.T) {
		ctx := t.Context()
		spawner := Spawner[worker](func() *worker { return new(worker) })
		pool := NewPool(spawner, 2, WithLogger(log.DiscardLogger))

		first, err := pool.Take()
		require.NoError(t, err)
		second, err := pool.Take()
		require.NoError(t, err)
		addrs := []*Address[worker]{first.Address(), second.Address()}
		first.Release()
		second.Release()

		require.NoError(t, pool.Close(ctx))
		for _, addr := range addrs {
			waitDone(t, addr)
		}

		_, err = pool.Take()
		require.ErrorIs(t, err, ErrPoolClosed)
		_, err = pool.TakeWithin(10 * time.Millisecond)
		require.ErrorIs(t, err, ErrPoolClosed)

		// closing twice is a no-op
		require.NoError(t, pool.Close(ctx))
	})

	t.Run("With a leased instance stopping on release", func(t *testing.T) {
		ctx := t.Context()
		spawner := Spawner[worker](func() *worker { return new(worker) })
		pool := NewPool(spawner, 1, WithLogger(log.DiscardLogger))

		lease, err := pool.Take()
		require.NoError(t, err)
		addr := lease.Address()

		// the pool closes without waiting for the outstanding lease
		require.NoError(t, pool.Close(ctx))

		// the leased actor keeps serving until the lease comes back
		name, err := Ask(ctx, lease, whoami{})
		require.NoError(t, err)
		require.Equal(t, addr.Name(), name)

		lease.Release()
		waitDone(t, addr)
	})
}

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
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	gods "github.com/Workiva/go-datastructures/queue"
	"golang.org/x/sync/errgroup"
)

// Pool is a fixed-size set of actors of one type behind a take/release
// discipline: Take hands out exclusive leases, Release returns them. The
// pool holds the only strong address of each instance, so closing the pool
// and releasing outstanding leases deterministically stops every instance.
//
// The pool never resizes, replaces or health-checks its actors.
type Pool[A any] struct {
	// mu serializes release and close decisions against the ring buffer
	mu sync.Mutex
	// addresses is the rotating buffer of idle instances
	addresses *gods.RingBuffer
	size      int
	closed    bool
}

// NewPool spawns instances actors from the spawner up front and returns the
// pool holding them. The spawn options apply to every instance.
//
// NewPool panics when spawner is nil or instances is less than one.
func NewPool[A any](spawner Spawner[A], instances int, opts ...SpawnOption) *Pool[A] {
	if spawner == nil {
		panic("actor: NewPool requires a non-nil spawner")
	}
	if instances < 1 {
		panic("actor: NewPool requires at least one instance")
	}

	pool := &Pool[A]{
		addresses: gods.NewRingBuffer(uint64(instances)),
		size:      instances,
	}
	for range instances {
		_ = pool.addresses.Put(spawner.Spawn(opts...))
	}
	return pool
}

// NewDefaultPool is NewPool sized to the host's available parallelism.
func NewDefaultPool[A any](spawner Spawner[A], opts ...SpawnOption) *Pool[A] {
	instances := runtime.NumCPU()
	if instances < 1 {
		instances = DefaultPoolSize
	}
	return NewPool(spawner, instances, opts...)
}

// Size returns the number of actors the pool was built with.
func (x *Pool[A]) Size() int {
	return x.size
}

// Take leases one idle instance, blocking while every instance is leased
// out. The next Release, or Close, unblocks it. Take returns ErrPoolClosed
// once the pool has been closed.
func (x *Pool[A]) Take() (*Lease[A], error) {
	item, err := x.addresses.Get()
	if err != nil {
		if errors.Is(err, gods.ErrDisposed) {
			return nil, ErrPoolClosed
		}
		return nil, err
	}
	return &Lease[A]{pool: x, addr: item.(*Address[A])}, nil
}

// TakeWithin is Take with a bounded wait: when no instance becomes idle
// within the timeout it returns ErrPoolTimeout.
func (x *Pool[A]) TakeWithin(timeout time.Duration) (*Lease[A], error) {
	item, err := x.addresses.Poll(timeout)
	switch {
	case errors.Is(err, gods.ErrTimeout):
		return nil, ErrPoolTimeout
	case errors.Is(err, gods.ErrDisposed):
		return nil, ErrPoolClosed
	case err != nil:
		return nil, err
	}
	return &Lease[A]{pool: x, addr: item.(*Address[A])}, nil
}

// Close shuts the pool down. Idle instances are stopped and waited for,
// bounded by ctx; pending and later takes fail with ErrPoolClosed.
// Instances leased out at the time of the call are not waited for: they
// stop when their lease is released. Closing an already closed pool is a
// no-op.
func (x *Pool[A]) Close(ctx context.Context) error {
	x.mu.Lock()
	if x.closed {
		x.mu.Unlock()
		return nil
	}
	x.closed = true

	// concurrent takes may still win items during the drain; their leases
	// observe the closed flag on release and stop the instance themselves
	var idle []*Address[A]
	for x.addresses.Len() > 0 {
		item, err := x.addresses.Poll(time.Millisecond)
		if errors.Is(err, gods.ErrTimeout) {
			continue
		}
		if err != nil {
			break
		}
		idle = append(idle, item.(*Address[A]))
	}
	x.addresses.Dispose()
	x.mu.Unlock()

	for _, addr := range idle {
		addr.Close()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, addr := range idle {
		g.Go(func() error {
			select {
			case <-addr.Done():
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	return g.Wait()
}

// Lease is an exclusive claim on one pooled actor. It implements the same
// request target surface as a strong address, so Ask, Exec and friends
// accept it directly. A lease must be released exactly once; after Release
// the lease must not be used again.
type Lease[A any] struct {
	pool        *Pool[A]
	addr        *Address[A]
	releaseOnce sync.Once
}

// enforce compilation error when interface contract changes
var _ Ref[any] = (*Lease[any])(nil)

// Address returns the leased actor's strong address. The address belongs to
// the pool: callers must not Close it, releasing the lease is the way to
// give the actor back.
func (x *Lease[A]) Address() *Address[A] {
	return x.addr
}

// Name returns the leased actor's name.
func (x *Lease[A]) Name() string {
	return x.addr.Name()
}

// Release returns the actor to the pool, waking one blocked Take. When the
// pool was closed while the lease was out, the actor is stopped instead of
// returned. Further calls are no-ops.
func (x *Lease[A]) Release() {
	x.releaseOnce.Do(func() {
		x.pool.mu.Lock()
		defer x.pool.mu.Unlock()
		if x.pool.closed {
			x.addr.Close()
			return
		}
		if err := x.pool.addresses.Put(x.addr); err != nil {
			x.addr.Close()
		}
	})
}

func (x *Lease[A]) push(ctx context.Context, env envelope[A]) error {
	return x.addr.push(ctx, env)
}

func (x *Lease[A]) doneCh() <-chan struct{} {
	return x.addr.doneCh()
}

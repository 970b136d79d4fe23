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
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/tochemey/troupe/internal/queue"
	"github.com/tochemey/troupe/log"
)

// proc is the shared state behind every handle to one actor: the two
// mailboxes, the strong reference count and the lifecycle channels. The
// hosting goroutine started by Spawn is its single consumer.
type proc[A any] struct {
	name   string
	logger log.Logger
	actor  *A

	// public mailbox: bounded, counted toward liveness
	pub chan envelope[A]
	// priority mailbox: unbounded, consumed before pub, plus its wake-up
	// signal for the hosting goroutine
	prio    *queue.MPSC[envelope[A]]
	prioSig chan struct{}

	// strong is the number of open strong addresses. released is closed when
	// it reaches zero; done is closed when the hosting goroutine has fully
	// stopped. Request promises are always completed before done closes.
	strong      atomic.Int64
	released    chan struct{}
	releaseOnce sync.Once
	done        chan struct{}

	startedAt time.Time
	processed atomic.Int64
}

func newProc[A any](actor *A, config *spawnConfig) *proc[A] {
	p := &proc[A]{
		name:      config.name,
		logger:    config.logger.With("actor", config.name),
		actor:     actor,
		pub:       make(chan envelope[A], config.capacity),
		prio:      queue.NewMPSC[envelope[A]](),
		prioSig:   make(chan struct{}, 1),
		released:  make(chan struct{}),
		done:      make(chan struct{}),
		startedAt: time.Now(),
	}
	p.strong.Store(1)
	return p
}

// retain increments the strong count unless it has already reached zero.
// Once released, an actor can never be revived.
func (p *proc[A]) retain() bool {
	for {
		count := p.strong.Load()
		if count <= 0 {
			return false
		}
		if p.strong.CompareAndSwap(count, count+1) {
			return true
		}
	}
}

// release decrements the strong count and closes the public side when the
// last strong address is gone.
func (p *proc[A]) release() {
	if p.strong.Add(-1) <= 0 {
		p.releaseOnce.Do(func() {
			close(p.released)
		})
	}
}

// isClosed reports whether the actor accepts new public messages.
func (p *proc[A]) isClosed() bool {
	select {
	case <-p.released:
		return true
	default:
	}
	return p.isDone()
}

// isDone reports whether the hosting goroutine has exited.
func (p *proc[A]) isDone() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// push enqueues an envelope on the public mailbox, blocking while the
// mailbox is full. It fails once the actor no longer accepts public
// messages, and gives up when the caller's context is canceled first.
func (p *proc[A]) push(ctx context.Context, env envelope[A]) error {
	if p.isClosed() {
		return ErrDeliveryFailed
	}
	select {
	case p.pub <- env:
		return nil
	case <-p.released:
		return ErrDeliveryFailed
	case <-p.done:
		return ErrDeliveryFailed
	case <-ctx.Done():
		return errors.Join(ctx.Err(), ErrDeliveryFailed)
	}
}

// notify enqueues an envelope on the priority mailbox. It never blocks; it
// fails only once the hosting goroutine has exited. An envelope that loses
// the race against the exiting loop is dropped silently, like any other
// priority message still queued at exit.
func (p *proc[A]) notify(env envelope[A]) error {
	if p.isDone() {
		return ErrDeliveryFailed
	}
	p.prio.Push(env)
	select {
	case p.prioSig <- struct{}{}:
	default:
	}
	return nil
}

// run is the hosting goroutine: exactly one per actor, for its whole life.
func (p *proc[A]) run() {
	c := newContext(p)
	var current envelope[A]

	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf("actor %s panicked: %v\n%s", p.name, r, debug.Stack())
			if current != nil {
				current.discard()
			}
		}
		p.finalize(c)
	}()

	p.logger.Debugf("actor %s starting", p.name)
	if hook, ok := any(p.actor).(StartHook[A]); ok {
		hook.PreStart(c)
	}
	c.state = Started
	if c.stopRequested {
		c.stopRequested = false
		c.state = Stopping
	}
	p.logger.Debugf("actor %s started", p.name)

	released := false
	for {
		if c.state == Stopping {
			consent := true
			if hook, ok := any(p.actor).(StoppingHook[A]); ok {
				consent = hook.OnStopping(c)
			}
			if consent {
				return
			}
			// stop vetoed: the actor stays Stopping and the hook is asked
			// again next iteration
		}

		// Priority always wins: the priority mailbox is checked before the
		// public one on every iteration, one envelope at a time so stop
		// requests are observed between messages.
		if env, ok := p.prio.Pop(); ok {
			current = env
			p.deliver(c, env)
			current = nil
			continue
		}

		if released {
			// no strong addresses left: finish the accepted backlog, then stop
			select {
			case env := <-p.pub:
				current = env
				p.deliver(c, env)
				current = nil
				continue
			default:
				return
			}
		}

		select {
		case <-p.prioSig:
			continue
		case env := <-p.pub:
			current = env
			p.deliver(c, env)
			current = nil
			continue
		case <-p.released:
			released = true
		}
	}
}

func (p *proc[A]) deliver(c *Context[A], env envelope[A]) {
	env.deliver(c, p.actor)
	p.processed.Add(1)
}

// finalize runs exactly once, after the message loop has exited for any
// reason. It discards whatever is still queued so no caller waits forever,
// runs PostStop and publishes the Stopped state.
func (p *proc[A]) finalize(c *Context[A]) {
	for {
		env, ok := p.prio.Pop()
		if !ok {
			break
		}
		env.discard()
	}
drain:
	for {
		select {
		case env := <-p.pub:
			env.discard()
		default:
			break drain
		}
	}

	c.msgCtx = context.Background()
	if hook, ok := any(p.actor).(StopHook[A]); ok {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.Errorf("actor %s PostStop panicked: %v\n%s", p.name, r, debug.Stack())
				}
			}()
			hook.PostStop(c)
		}()
	}
	c.state = Stopped

	// every promise this actor will ever complete has been completed above;
	// Ask relies on that ordering when it races a response against done
	close(p.done)
	p.logger.Debugf("actor %s stopped", p.name)
}

// mailboxSize returns the number of messages currently queued across both
// mailboxes.
func (p *proc[A]) mailboxSize() int64 {
	return int64(len(p.pub)) + p.prio.Len()
}

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

	"go.uber.org/atomic"
)

// Ref is any handle a request can be sent to: a strong Address, a
// PriorityAddress or a pool Lease. The interface is sealed; the three
// implementations in this package are the only ones.
type Ref[A any] interface {
	// push hands an envelope to the actor's mailbox.
	push(ctx context.Context, env envelope[A]) error
	// doneCh returns the channel closed once the actor has fully stopped.
	doneCh() <-chan struct{}
}

// Address is a strong, counted reference to a running actor. Strong
// addresses keep the actor alive: the actor keeps running at least until
// every strong address has been closed.
//
// An Address is a handle, not a shared object: each handle is closed exactly
// once, and independent holders get their own handle via Clone. All methods
// are safe for concurrent use, but Close and Clone act on this handle only.
type Address[A any] struct {
	proc   *proc[A]
	closed atomic.Bool
}

// enforce compilation error when interface contract changes
var _ Ref[any] = (*Address[any])(nil)

// Clone returns a new independent strong address to the same actor,
// incrementing the strong reference count. Cloning a handle that has already
// been closed, or whose actor has already been released, returns a dead
// handle on which every send fails.
func (x *Address[A]) Clone() *Address[A] {
	clone := &Address[A]{proc: x.proc}
	if x.closed.Load() || !x.proc.retain() {
		clone.closed.Store(true)
	}
	return clone
}

// Close releases this handle. The first Close decrements the strong
// reference count; further calls are no-ops. When the count reaches zero the
// actor stops accepting public messages, finishes the backlog it already
// accepted and stops.
func (x *Address[A]) Close() {
	if x.closed.CompareAndSwap(false, true) {
		x.proc.release()
	}
}

// Downgrade returns a weak address to the same actor. Weak addresses do not
// count toward the actor's liveness.
func (x *Address[A]) Downgrade() *WeakAddress[A] {
	return &WeakAddress[A]{proc: x.proc}
}

// IsClosed reports whether the actor is past accepting new public messages:
// either every strong address was closed or the actor has stopped. Sends
// through this handle fail once IsClosed reports true.
func (x *Address[A]) IsClosed() bool {
	return x.closed.Load() || x.proc.isClosed()
}

// Done returns a channel that is closed once the actor has fully stopped:
// the message loop has exited and PostStop has run.
func (x *Address[A]) Done() <-chan struct{} {
	return x.proc.done
}

// Name returns the actor's name.
func (x *Address[A]) Name() string {
	return x.proc.name
}

func (x *Address[A]) push(ctx context.Context, env envelope[A]) error {
	if x.closed.Load() {
		return ErrDeliveryFailed
	}
	return x.proc.push(ctx, env)
}

func (x *Address[A]) doneCh() <-chan struct{} {
	return x.proc.done
}

// WeakAddress is an uncounted observer reference to an actor. It can check
// whether the actor is still reachable and mint strong addresses while it
// is, but it never keeps the actor alive by itself.
type WeakAddress[A any] struct {
	proc *proc[A]
}

// Upgrade attempts to mint a strong address. It fails once the strong
// reference count has reached zero; a released actor can never be revived,
// so after the first failure every later Upgrade fails too.
func (x *WeakAddress[A]) Upgrade() (*Address[A], bool) {
	if !x.proc.retain() {
		return nil, false
	}
	return &Address[A]{proc: x.proc}, true
}

// IsConnected reports whether the actor still accepts public messages. It
// returns false forever once the actor has been released or has stopped.
func (x *WeakAddress[A]) IsConnected() bool {
	return !x.proc.isClosed()
}

// Clone returns another weak address to the same actor.
func (x *WeakAddress[A]) Clone() *WeakAddress[A] {
	return &WeakAddress[A]{proc: x.proc}
}

// Name returns the actor's name.
func (x *WeakAddress[A]) Name() string {
	return x.proc.name
}

// PriorityAddress sends messages ahead of the public mailbox. Its queue is
// unbounded, so sends never block, and it does not count toward the actor's
// liveness: an actor reachable only through priority addresses stops. It is
// obtained from Context.PriorityAddress, which makes it the actor's channel
// for messages to itself (timers, internal follow-ups).
type PriorityAddress[A any] struct {
	proc *proc[A]
}

// enforce compilation error when interface contract changes
var _ Ref[any] = (*PriorityAddress[any])(nil)

// IsConnected reports whether the actor is still running. Unlike the weak
// address, a priority address stays connected while a released actor drains
// its backlog: priority messages are accepted until the loop exits.
func (x *PriorityAddress[A]) IsConnected() bool {
	return !x.proc.isDone()
}

// Clone returns another priority address to the same actor.
func (x *PriorityAddress[A]) Clone() *PriorityAddress[A] {
	return &PriorityAddress[A]{proc: x.proc}
}

// Name returns the actor's name.
func (x *PriorityAddress[A]) Name() string {
	return x.proc.name
}

func (x *PriorityAddress[A]) push(_ context.Context, env envelope[A]) error {
	return x.proc.notify(env)
}

func (x *PriorityAddress[A]) doneCh() <-chan struct{} {
	return x.proc.done
}

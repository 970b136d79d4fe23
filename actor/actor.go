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

// Package actor provides a minimal typed actor runtime for embedding into a
// host program.
//
// An actor is any user struct. Spawn starts a dedicated goroutine that
// processes the actor's messages strictly one at a time, so actor state needs
// no synchronization. Actors are reached through reference-counted typed
// addresses; once every strong address has been closed and the accepted
// backlog is drained, the actor stops on its own.
package actor

// Message is a typed message an actor of type A can handle, producing a
// result of type R.
//
// The handling operation is declared on the message type itself, one per
// message type. Handle runs on the actor's own goroutine with exclusive
// access to the actor value; it must not retain ctx or actor beyond the
// call. Fire-and-forget messages use R = struct{} (or any result type the
// caller chooses to ignore).
//
// Example:
//
//	type deposit struct{ amount uint64 }
//
//	func (m deposit) Handle(_ *actor.Context[account], a *account) uint64 {
//	    a.balance += m.amount
//	    return a.balance
//	}
//
// Since both A and R are carried by the message's method set, sending a
// message to an actor that cannot handle it does not compile.
type Message[A, R any] interface {
	Handle(ctx *Context[A], actor *A) R
}

// StartHook is implemented by actors that need setup before the first
// message is processed.
type StartHook[A any] interface {
	// PreStart is invoked once, on the actor's goroutine, before any message
	// is handled. The actor is in the Starting state; messages sent during
	// PreStart are queued and handled afterwards.
	PreStart(ctx *Context[A])
}

// StoppingHook is implemented by actors that want a say in their own stop.
type StoppingHook[A any] interface {
	// OnStopping is invoked when a stop has been requested through
	// Context.Stop. Returning true consents to the stop; returning false
	// vetoes it: the actor stays Stopping, resumes processing messages, and
	// OnStopping is invoked again on each loop iteration until it consents.
	// OnStopping is not consulted when the actor stops because every strong
	// address was closed.
	OnStopping(ctx *Context[A]) bool
}

// StopHook is implemented by actors that need teardown after the last
// message has been processed.
type StopHook[A any] interface {
	// PostStop is invoked exactly once after the actor's message loop has
	// terminated, whether the actor stopped on request, by abandonment, or
	// because a handler panicked. No further messages are delivered.
	PostStop(ctx *Context[A])
}

// Spawner creates fresh instances of an actor type. It is how the pool
// spawns its workers, and can be used directly to spawn one-off actors.
type Spawner[A any] func() *A

// Spawn creates an actor from the spawner and returns its first strong
// address.
func (f Spawner[A]) Spawn(opts ...SpawnOption) *Address[A] {
	return Spawn(f(), opts...)
}

// Spawn starts hosting the given actor and returns the first strong address
// pointing at it.
//
// Ownership of the actor value transfers to the runtime: the caller must not
// touch it afterwards, all further access goes through messages. The actor
// keeps running until it stops itself through Context.Stop or until every
// strong address has been closed and the accepted backlog is drained.
//
// Spawn panics when actor is nil.
func Spawn[A any](actor *A, opts ...SpawnOption) *Address[A] {
	if actor == nil {
		panic("actor: Spawn requires a non-nil actor")
	}

	config := newSpawnConfig(opts...)
	p := newProc(actor, config)
	addr := &Address[A]{proc: p}

	go p.run()
	return addr
}

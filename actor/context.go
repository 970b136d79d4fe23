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

	"github.com/tochemey/troupe/log"
)

// ActorState represents where an actor is in its lifecycle. The state
// machine is linear: Starting, Started, Stopping, Stopped; states never move
// backward. A vetoed stop leaves the actor Stopping: messages keep being
// processed and the stop hook is asked again on each iteration until it
// consents or the actor is abandoned.
type ActorState int

const (
	// Starting means the actor's goroutine is running PreStart; no message
	// has been handled yet.
	Starting ActorState = iota
	// Started means the actor is processing messages.
	Started
	// Stopping means a stop has been requested and the stop hook, if any,
	// has not yet consented.
	Stopping
	// Stopped means the message loop has terminated and PostStop has run.
	Stopped
)

// String returns the text representation of the actor state
func (s ActorState) String() string {
	switch s {
	case Starting:
		return "Starting"
	case Started:
		return "Started"
	case Stopping:
		return "Stopping"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Context is handed to every message handler and lifecycle hook. It is owned
// by the actor's hosting goroutine: handlers may use it freely during a call
// but must not retain it or share it with other goroutines.
type Context[A any] struct {
	proc          *proc[A]
	state         ActorState
	stopRequested bool
	msgCtx        context.Context
}

func newContext[A any](p *proc[A]) *Context[A] {
	return &Context[A]{
		proc:   p,
		state:  Starting,
		msgCtx: context.Background(),
	}
}

// Address returns a weak self-reference. It never keeps the actor alive;
// upgrade it to a strong address to hand out.
func (x *Context[A]) Address() *WeakAddress[A] {
	return &WeakAddress[A]{proc: x.proc}
}

// PriorityAddress returns the actor's priority address. Messages sent
// through it bypass the public mailbox and are handled before public
// messages, and the address does not keep the actor alive.
func (x *Context[A]) PriorityAddress() *PriorityAddress[A] {
	return &PriorityAddress[A]{proc: x.proc}
}

// Stop requests a graceful stop. The request is observed between messages;
// an actor implementing StoppingHook may veto it. Calling Stop more than
// once, or after the actor is already stopping, has no further effect. A
// stop requested during PreStart takes effect right after PreStart returns.
func (x *Context[A]) Stop() {
	switch x.state {
	case Starting:
		x.stopRequested = true
	case Started:
		x.state = Stopping
	}
}

// State returns the actor's current lifecycle state.
func (x *Context[A]) State() ActorState {
	return x.state
}

// Context returns the context of the request currently being handled. It is
// canceled when the caller stops waiting for the response, letting handlers
// abandon expensive work early. Outside of request handling it returns
// context.Background().
func (x *Context[A]) Context() context.Context {
	return x.msgCtx
}

// Name returns the actor's name.
func (x *Context[A]) Name() string {
	return x.proc.name
}

// Logger returns the logger the actor was spawned with.
func (x *Context[A]) Logger() log.Logger {
	return x.proc.logger
}

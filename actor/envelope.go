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

	"github.com/tochemey/troupe/future"
)

// envelope is the type-erased unit the mailboxes carry. Message and result
// types are checked statically when the envelope is built; delivery is a
// dynamic dispatch on the actor's goroutine.
type envelope[A any] interface {
	// deliver runs the payload against the actor. Called only by the hosting
	// goroutine.
	deliver(ctx *Context[A], actor *A)
	// discard is called instead of deliver when the actor stops with the
	// envelope still queued, so that nobody waits on it forever.
	discard()
}

// request is an envelope expecting a response. It carries the caller's
// context so the handler can observe the caller giving up, and a one-shot
// promise the caller awaits.
type request[A, R any] struct {
	handle  func(*Context[A], *A) R
	caller  context.Context
	promise *future.Promise[R]
}

// enforce compilation error when interface contract changes
var _ envelope[any] = (*request[any, any])(nil)

func newRequest[A, R any](ctx context.Context, handle func(*Context[A], *A) R) *request[A, R] {
	return &request[A, R]{
		handle:  handle,
		caller:  ctx,
		promise: future.NewPromise[R](),
	}
}

func (r *request[A, R]) deliver(c *Context[A], actor *A) {
	if r.caller.Err() != nil {
		// the caller already gave up, skip the handler entirely
		return
	}

	c.msgCtx = r.caller
	defer func() { c.msgCtx = context.Background() }()

	result := r.handle(c, actor)
	if r.caller.Err() != nil {
		// nobody is listening anymore, drop the result
		return
	}
	r.promise.Success(result)
}

func (r *request[A, R]) discard() {
	r.promise.Failure(ErrNoResponse)
}

// notification is a fire-and-forget envelope. The handler result, if any,
// is thrown away.
type notification[A any] struct {
	fire func(*Context[A], *A)
}

// enforce compilation error when interface contract changes
var _ envelope[any] = (*notification[any])(nil)

func newNotification[A, R any](msg Message[A, R]) *notification[A] {
	return &notification[A]{
		fire: func(c *Context[A], actor *A) {
			_ = msg.Handle(c, actor)
		},
	}
}

func (n *notification[A]) deliver(c *Context[A], actor *A) {
	n.fire(c, actor)
}

func (n *notification[A]) discard() {}

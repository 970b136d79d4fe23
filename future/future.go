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

// Package future provides a single-assignment container for a value that will
// be available at some point in the future, or an error if that value could
// not be made available.
package future

import (
	"context"
	"errors"
	"sync"
)

// ErrNotCompleted is returned by Get when the Future has no result yet.
var ErrNotCompleted = errors.New("future has not been completed")

// Future represents a value which may or may not currently be available,
// but will be available at some point in the future, or an error if that
// value could not be made available.
//
// A Future is read-only. It is completed exactly once through the Promise
// that created it, and every reader observes the same result.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Await blocks until the Future is completed or the context is canceled and
// returns either the result or an error. Awaiting an already completed
// Future returns immediately; Await can be called any number of times and
// from any number of goroutines.
func (x *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-x.done:
		return x.value, x.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed when the Future has been completed.
// After Done is closed, Get returns the final result.
func (x *Future[T]) Done() <-chan struct{} {
	return x.done
}

// Get returns the result without blocking. When the Future has not been
// completed yet it returns ErrNotCompleted.
func (x *Future[T]) Get() (T, error) {
	select {
	case <-x.done:
		return x.value, x.err
	default:
		var zero T
		return zero, ErrNotCompleted
	}
}

// Promise is the writable, single-assignment side of a Future.
//
// Exactly one of Success or Failure takes effect; later completions are
// ignored. A Promise may be completed from any goroutine.
type Promise[T any] struct {
	completeOnce sync.Once
	future       *Future[T]
}

// NewPromise creates a pending Future together with its Promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{
		future: &Future[T]{done: make(chan struct{})},
	}
}

// Future returns the underlying Future.
func (x *Promise[T]) Future() *Future[T] {
	return x.future
}

// Success completes the underlying Future with a value.
// It reports whether this call performed the completion.
func (x *Promise[T]) Success(value T) bool {
	return x.complete(value, nil)
}

// Failure fails the underlying Future with an error.
// It reports whether this call performed the completion.
func (x *Promise[T]) Failure(err error) bool {
	var zero T
	return x.complete(zero, err)
}

// complete stores the result and releases every waiter. The store happens
// before the channel close, so readers never observe a partial result.
func (x *Promise[T]) complete(value T, err error) bool {
	completed := false
	x.completeOnce.Do(func() {
		x.future.value = value
		x.future.err = err
		close(x.future.done)
		completed = true
	})
	return completed
}

// New creates a Future that is completed by running the given task in a
// separate goroutine. The Future is completed with the value returned by the
// task or failed with its error.
//
// Example usage:
//
//	f := future.New(func() (int, error) {
//	    // perform some long-running computation
//	    return 42, nil
//	})
//
//	result, err := f.Await(ctx)
func New[T any](task func() (T, error)) *Future[T] {
	promise := NewPromise[T]()
	go func() {
		result, err := task()
		if err == nil {
			promise.Success(result)
		} else {
			promise.Failure(err)
		}
	}()
	return promise.Future()
}

// Completed returns an already completed Future holding the given value.
func Completed[T any](value T) *Future[T] {
	promise := NewPromise[T]()
	promise.Success(value)
	return promise.Future()
}

// Failed returns an already failed Future holding the given error.
func Failed[T any](err error) *Future[T] {
	promise := NewPromise[T]()
	promise.Failure(err)
	return promise.Future()
}

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

// Package queue provides the intrusive queues backing actor mailboxes.
package queue

import (
	"sync/atomic"
)

// node is a single link in the MPSC chain.
type node[T any] struct {
	next atomic.Pointer[node[T]]
	data T
}

// MPSC is an unbounded Multi-Producer-Single-Consumer FIFO queue.
//
// Concurrency model:
//   - Many goroutines may call Push concurrently.
//   - Exactly one goroutine must call Pop.
//
// Producers append by swapping the tail and linking through the previous
// node, so Push is lock-free and never blocks. The queue starts with a dummy
// node; head always points at the last consumed node.
type MPSC[T any] struct {
	// Separate cache lines to avoid false sharing between producers and consumer
	head   atomic.Pointer[node[T]] // consumer only
	_pad1  [64]byte
	tail   atomic.Pointer[node[T]] // producers only
	_pad2  [64]byte
	length atomic.Int64
}

// NewMPSC creates and initializes an MPSC queue instance.
func NewMPSC[T any]() *MPSC[T] {
	dummy := new(node[T])
	q := &MPSC[T]{}
	q.head.Store(dummy)
	q.tail.Store(dummy)
	return q
}

// Push places the given value at the back of the queue.
// Never blocks; safe for concurrent calls by multiple producers.
func (q *MPSC[T]) Push(value T) {
	n := &node[T]{data: value}
	prev := q.tail.Swap(n)
	prev.next.Store(n)
	q.length.Add(1)
}

// Pop removes and returns the value at the front of the queue.
// Returns false if the queue is empty.
// Must be called by a single consumer goroutine.
func (q *MPSC[T]) Pop() (T, bool) {
	var zero T
	head := q.head.Load() // single consumer
	next := head.next.Load()
	if next == nil {
		return zero, false
	}

	q.head.Store(next)
	value := next.data
	next.data = zero
	q.length.Add(-1)
	return value, true
}

// Len returns the number of values currently in the queue.
// The value may be approximate under concurrent producers.
func (q *MPSC[T]) Len() int64 {
	return q.length.Load()
}

// IsEmpty returns true when the queue is empty.
// Under heavy contention it can briefly report empty between a producer's
// tail swap and link; no values are lost either way.
func (q *MPSC[T]) IsEmpty() bool {
	return q.head.Load().next.Load() == nil
}

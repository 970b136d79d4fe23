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

import "time"

// Metric is a snapshot of an actor's runtime counters.
type Metric struct {
	// uptime is the duration since the actor was spawned
	uptime time.Duration
	// processedCount is the number of messages the actor has handled
	processedCount int64
	// mailboxSize is the number of messages queued and not yet handled
	mailboxSize int64
}

// Uptime returns the duration since the actor was spawned.
func (x Metric) Uptime() time.Duration {
	return x.uptime
}

// ProcessedCount returns the number of messages the actor has handled,
// across both mailboxes.
func (x Metric) ProcessedCount() int64 {
	return x.processedCount
}

// MailboxSize returns the number of messages queued and not yet handled.
func (x Metric) MailboxSize() int64 {
	return x.mailboxSize
}

// Metric returns a snapshot of the actor's runtime counters. The snapshot
// is taken without pausing the actor, so the numbers may already be stale
// when they are read.
func (x *Address[A]) Metric() Metric {
	p := x.proc
	return Metric{
		uptime:         time.Since(p.startedAt),
		processedCount: p.processed.Load(),
		mailboxSize:    p.mailboxSize(),
	}
}

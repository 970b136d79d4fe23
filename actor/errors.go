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
	"errors"
)

var (
	// ErrDeliveryFailed indicates that a message could not be handed to the
	// target actor because it no longer accepts messages. The message was not
	// delivered and never will be.
	ErrDeliveryFailed = errors.New("failed to deliver message: actor is not accepting messages")

	// ErrNoResponse indicates that a request was accepted but no response will
	// ever arrive: the actor stopped before handling it, the handler panicked,
	// or the response slot was dropped without being filled.
	ErrNoResponse = errors.New("failed to get a response from actor")

	// ErrPoolClosed is returned by Take and TakeWithin once the pool has been
	// closed.
	ErrPoolClosed = errors.New("actor pool is closed")

	// ErrPoolTimeout is returned by TakeWithin when no pooled actor became
	// available within the given wait time.
	ErrPoolTimeout = errors.New("timed out waiting for a pooled actor")

	// ErrSchedulerNotStarted is returned when a message is scheduled against a
	// scheduler that has not been started or has been stopped.
	ErrSchedulerNotStarted = errors.New("messages scheduler is not started")
)

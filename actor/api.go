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
	"fmt"
	"time"

	"github.com/reugn/go-quartz/quartz"

	"github.com/tochemey/troupe/future"
	"github.com/tochemey/troupe/log"
)

// Ask sends msg to the actor behind to and waits for its response.
//
// Enqueueing blocks while the actor's public mailbox is full; ctx bounds
// both the enqueue and the wait for the response, and is the context the
// handler observes through Context.Context. Ask fails with
// ErrDeliveryFailed when the actor no longer accepts messages, and with
// ErrNoResponse when the message was accepted but no response will ever
// come: the actor stopped or panicked first, or the caller gave up (then
// ctx's error is attached). A response produced after the caller gave up is
// discarded silently.
//
// Ask panics when msg is nil.
func Ask[A, R any](ctx context.Context, to Ref[A], msg Message[A, R]) (R, error) {
	if msg == nil {
		panic("actor: Ask requires a non-nil message")
	}
	return await(ctx, to, newRequest(ctx, msg.Handle))
}

// Tell sends msg to the actor's priority address, fire-and-forget. The
// enqueue is synchronous and never blocks; the handler's result is thrown
// away. Tell fails with ErrDeliveryFailed once the actor is gone.
//
// Tell panics when msg is nil.
func Tell[A, R any](to *PriorityAddress[A], msg Message[A, R]) error {
	if msg == nil {
		panic("actor: Tell requires a non-nil message")
	}
	return to.proc.notify(newNotification(msg))
}

// AskDeferred sends msg like Ask and then awaits the deferred result the
// handler responded with. It suits handlers that start background work and
// respond with a promise of its outcome: the actor moves on to its next
// message while the caller waits. Both stages are bounded by ctx; a nil
// deferred result counts as ErrNoResponse.
func AskDeferred[A, T any](ctx context.Context, to Ref[A], msg Message[A, *future.Future[T]]) (T, error) {
	var zero T
	fut, err := Ask(ctx, to, msg)
	if err != nil {
		return zero, err
	}
	if fut == nil {
		return zero, ErrNoResponse
	}
	return fut.Await(ctx)
}

// Exec runs fn on the actor's goroutine with exclusive access to the actor
// value, with the same semantics and errors as Ask. It is the escape hatch
// for one-off interactions that do not warrant a named message type.
//
// Exec panics when fn is nil.
func Exec[A, R any](ctx context.Context, to Ref[A], fn func(ctx *Context[A], actor *A) R) (R, error) {
	if fn == nil {
		panic("actor: Exec requires a non-nil function")
	}
	return await(ctx, to, newRequest(ctx, fn))
}

// Poison asks the actor to stop itself and returns once the stop request
// has been processed, not once the actor has stopped. The stop remains
// subject to OnStopping: after a veto, Poison returns nil and the actor
// keeps running with the request still pending. Wait on Done for the
// actual termination.
func Poison[A any](ctx context.Context, to Ref[A]) error {
	_, err := Exec(ctx, to, func(c *Context[A], _ *A) struct{} {
		c.Stop()
		return struct{}{}
	})
	return err
}

// await delivers req and then waits for whichever comes first: the
// response, the caller's context, or the actor's termination.
func await[A, R any](ctx context.Context, to Ref[A], req *request[A, R]) (R, error) {
	var zero R
	if err := to.push(ctx, req); err != nil {
		return zero, err
	}

	fut := req.promise.Future()
	select {
	case <-fut.Done():
		return fut.Get()
	case <-ctx.Done():
		return zero, errors.Join(ctx.Err(), ErrNoResponse)
	case <-to.doneCh():
		// the actor has fully stopped, so every response it will ever
		// produce is already in place: a non-blocking read settles it
		result, err := fut.Get()
		if errors.Is(err, future.ErrNotCompleted) {
			return zero, ErrNoResponse
		}
		return result, err
	}
}

// TellLater schedules a one-shot Tell of msg after delay. The caller is
// never blocked and gets back scheduling errors only: a delivery failure at
// fire time means the actor was already gone, which is logged and dropped.
// A non-positive delay fires immediately.
//
// TellLater panics when msg is nil.
func TellLater[A, R any](s *Scheduler, to *PriorityAddress[A], msg Message[A, R], delay time.Duration) error {
	if msg == nil {
		panic("actor: TellLater requires a non-nil message")
	}
	if delay < 0 {
		delay = 0
	}
	logger := s.logger
	_, err := s.schedule(quartz.NewRunOnceTrigger(delay), func(context.Context, *Schedule) error {
		if err := Tell(to, msg); err != nil {
			logger.Warnf("scheduled message to actor %s dropped: %v", to.Name(), err)
			return err
		}
		return nil
	})
	return err
}

// TellAt schedules a one-shot Tell of msg at the given instant. Instants in
// the past fire immediately. Everything else works like TellLater.
//
// TellAt panics when msg is nil.
func TellAt[A, R any](s *Scheduler, to *PriorityAddress[A], msg Message[A, R], when time.Time) error {
	if msg == nil {
		panic("actor: TellAt requires a non-nil message")
	}
	return TellLater(s, to, msg, time.Until(when))
}

// AskEvery schedules a fresh message from factory to be sent to the actor
// as a request every period, the first one after one full period. Responses
// are discarded; the point of the request form is that delivery still
// happens even when the public mailbox is saturated. The job cancels itself
// the first time delivery fails, which is how it notices the actor is gone;
// use the returned handle to cancel it earlier.
//
// AskEvery panics when factory is nil.
func AskEvery[A, R any](s *Scheduler, to *PriorityAddress[A], factory func() Message[A, R], period time.Duration) (*Schedule, error) {
	if factory == nil {
		panic("actor: AskEvery requires a non-nil factory")
	}
	return s.schedule(quartz.NewSimpleTrigger(period), repeatingTask(s.logger, to, factory))
}

// AskCron is AskEvery driven by a cron expression in the host's local
// time zone.
//
// AskCron panics when factory is nil.
func AskCron[A, R any](s *Scheduler, to *PriorityAddress[A], factory func() Message[A, R], expression string) (*Schedule, error) {
	if factory == nil {
		panic("actor: AskCron requires a non-nil factory")
	}
	location := time.Now().Location()
	trigger, err := quartz.NewCronTriggerWithLoc(expression, location)
	if err != nil {
		s.logger.Error(fmt.Errorf("failed to schedule message: %w", err))
		return nil, err
	}
	return s.schedule(trigger, repeatingTask(s.logger, to, factory))
}

// repeatingTask builds the job body shared by AskEvery and AskCron: build a
// message, send it as a request, self-cancel on the first failure.
func repeatingTask[A, R any](logger log.Logger, to *PriorityAddress[A], factory func() Message[A, R]) func(context.Context, *Schedule) error {
	return func(_ context.Context, schedule *Schedule) error {
		msg := factory()
		if msg == nil {
			logger.Warnf("message factory for actor %s returned nil, canceling", to.Name())
			_ = schedule.Cancel()
			return errors.New("message factory returned nil")
		}
		req := newRequest(context.Background(), msg.Handle)
		if err := to.push(context.Background(), req); err != nil {
			logger.Debugf("repeating send to actor %s failed, canceling: %v", to.Name(), err)
			_ = schedule.Cancel()
			return err
		}
		return nil
	}
}

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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	"github.com/tochemey/troupe/log"
)

// SchedulerOption represents the scheduler option
// to set custom settings
type SchedulerOption func(scheduler *Scheduler)

// WithSchedulerLogger sets the scheduler logger
func WithSchedulerLogger(logger log.Logger) SchedulerOption {
	return func(scheduler *Scheduler) {
		scheduler.logger = logger
	}
}

// WithStopTimeout sets how long Stop waits for in-flight jobs before
// giving up on them
func WithStopTimeout(timeout time.Duration) SchedulerOption {
	return func(scheduler *Scheduler) {
		scheduler.stopTimeout = timeout
	}
}

// Scheduler delivers messages to actors in the future: one-shot via
// TellLater and TellAt, repeatedly via AskEvery and AskCron. A single
// Scheduler serves any number of actors.
type Scheduler struct {
	// helps lock concurrent access
	mu sync.Mutex
	// underlying Scheduler
	quartzScheduler quartz.Scheduler
	// states whether the quartzScheduler has started or not
	started *atomic.Bool
	// define the logger
	logger log.Logger
	// define the shutdown timeout
	stopTimeout time.Duration
}

// NewScheduler creates an instance of Scheduler. The scheduler must be
// started before jobs are accepted.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	// create an instance of quartz scheduler with logger off
	quartzScheduler, _ := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))

	scheduler := &Scheduler{
		mu:              sync.Mutex{},
		started:         atomic.NewBool(false),
		quartzScheduler: quartzScheduler,
		logger:          log.DefaultLogger,
		stopTimeout:     DefaultSchedulerStopTimeout,
	}

	// set the custom options to override the default values
	for _, opt := range opts {
		opt(scheduler)
	}

	return scheduler
}

// Start starts the scheduler
func (x *Scheduler) Start(ctx context.Context) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.logger.Info("starting messages scheduler...")
	x.quartzScheduler.Start(ctx)
	x.started.Store(x.quartzScheduler.IsStarted())
	x.logger.Info("messages scheduler started.:)")
}

// Stop stops the scheduler. Pending jobs are cleared; jobs already running
// are waited for, up to the configured stop timeout.
func (x *Scheduler) Stop(ctx context.Context) {
	if !x.started.Load() {
		return
	}

	x.logger.Info("stopping messages scheduler...")
	x.mu.Lock()
	defer x.mu.Unlock()
	_ = x.quartzScheduler.Clear()
	x.quartzScheduler.Stop()
	x.started.Store(x.quartzScheduler.IsStarted())

	ctx, cancel := context.WithTimeout(ctx, x.stopTimeout)
	defer cancel()
	x.quartzScheduler.Wait(ctx)

	x.logger.Info("messages scheduler stopped...:)")
}

// schedule registers task under a fresh job key and returns its handle. The
// task receives its own handle so repeating jobs can remove themselves.
func (x *Scheduler) schedule(trigger quartz.Trigger, task func(ctx context.Context, schedule *Schedule) error) (*Schedule, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return nil, ErrSchedulerNotStarted
	}

	key := quartz.NewJobKey(newJobKey())
	schedule := &Schedule{
		key:       key,
		scheduler: x.quartzScheduler,
	}

	job := job.NewFunctionJob[bool](
		func(ctx context.Context) (bool, error) {
			err := task(ctx, schedule)
			return err == nil, err
		},
	)

	detail := quartz.NewJobDetail(job, key)
	if err := x.quartzScheduler.ScheduleJob(detail, trigger); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Schedule is the handle on one scheduled job.
type Schedule struct {
	key       *quartz.JobKey
	scheduler quartz.Scheduler
}

// Cancel removes the job from the scheduler. No further firings happen
// after Cancel returns; a firing already in flight still completes.
// Canceling a job the scheduler no longer knows returns the scheduler's
// lookup error and is harmless.
func (x *Schedule) Cancel() error {
	return x.scheduler.DeleteJob(x.key)
}

// newJobKey creates a new job key
func newJobKey() string {
	return uuid.NewString()
}

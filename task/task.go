/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package task defines the unit of work an executor runs: a Task is a
// queued closure plus the bookkeeping (id, completion signal, panic
// capture) an executor needs to report its outcome through a JoinHandle.
//
// Rust's async runtimes poll a Task repeatedly, re-queueing it every time
// it returns Pending and relying on a Waker to know when to poll it again.
// Go has no stackless coroutines to suspend and resume that way, so a Task
// here runs to completion once an executor worker starts it: whatever
// blocking it does (corsync primitives, driver operations) parks the
// worker's own goroutine instead of returning control to the scheduler,
// exactly the way a goroutine blocks on a channel recv today. The
// executor's job is therefore to decide which worker starts a queued Task
// and when, not to resume a suspended one.
package task

import (
	"context"
	"sync/atomic"
	"time"
)

// ID identifies a Task for its lifetime. IDs are never reused.
type ID uint64

var nextID atomic.Uint64

func newID() ID {
	return ID(nextID.Add(1))
}

// Task is one unit of work submitted to an executor.
type Task struct {
	id          ID
	ctx         context.Context
	fn          func(context.Context)
	done        chan struct{}
	panicked    any
	scheduledAt time.Time
}

// New creates a Task that will run fn under ctx when an executor worker
// picks it up.
func New(ctx context.Context, fn func(context.Context)) *Task {
	return &Task{
		id:   newID(),
		ctx:  ctx,
		fn:   fn,
		done: make(chan struct{}),
	}
}

// ID returns the task's identity.
func (t *Task) ID() ID { return t.id }

// MarkScheduled stamps the time an executor enqueued t, for schedule-delay
// metrics. Calling it more than once moves the stamp forward; executors
// call it exactly once, right before the task becomes visible to workers.
func (t *Task) MarkScheduled() { t.scheduledAt = time.Now() }

// ScheduledAt returns the stamp MarkScheduled recorded, or the zero Time
// if it was never called.
func (t *Task) ScheduledAt() time.Time { return t.scheduledAt }

// Run executes the task's body to completion, recovering any panic so the
// executor worker that calls Run survives it. Run must be called exactly
// once per Task.
func (t *Task) Run() {
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			t.panicked = r
		}
	}()
	t.fn(t.ctx)
}

// Done returns a channel that is closed once Run has returned (normally or
// via a recovered panic).
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Panicked reports the recovered panic value, if Run's body panicked.
func (t *Task) Panicked() (any, bool) {
	select {
	case <-t.done:
	default:
		return nil, false
	}
	return t.panicked, t.panicked != nil
}

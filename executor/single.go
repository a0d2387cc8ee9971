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

package executor

import (
	"context"
	"sync"
	"time"

	"github.com/corio/corio/internal/rtlog"
	"github.com/corio/corio/metrics"
	"github.com/corio/corio/task"
)

// Single is the current-thread-style executor: one background worker
// goroutine drains a FIFO queue of spawned tasks, running each to
// completion before starting the next. BlockOn calls its root closure on
// the caller's own goroutine directly, without the panic recovery a
// spawned task gets, so a panic in the root closure propagates to
// BlockOn's caller instead of being swallowed.
//
// Because there is exactly one worker, a spawned task that waits on
// another task queued behind it on this same executor can deadlock — the
// same hazard a fixed-size thread pool has whenever queued work depends on
// itself. Spawn work here that awaits driver/timer events, not work that
// awaits sibling tasks.
type Single struct {
	tasks  chan *task.Task
	log    *rtlog.Logger
	m      metrics.Executor
	once   sync.Once
	closed chan struct{}
}

// Metrics returns a snapshot of this executor's scheduled/completed task
// counters, runnable-queue depth, and schedule-delay histogram.
func (s *Single) Metrics() metrics.ExecutorSnapshot {
	return s.m.Snapshot()
}

// NewSingle creates a Single executor and starts its worker goroutine.
func NewSingle() *Single {
	s := &Single{
		tasks:  make(chan *task.Task, 1024),
		log:    rtlog.Default().With("executor.single"),
		closed: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Single) run() {
	for {
		select {
		case t := <-s.tasks:
			delay := time.Since(t.ScheduledAt())
			t.Run()
			_, panicked := t.Panicked()
			s.m.RecordRun(delay, panicked)
			if panicked {
				v, _ := t.Panicked()
				s.log.Warnf("spawned task %d panicked: %v", t.ID(), v)
			}
		case <-s.closed:
			return
		}
	}
}

// submit queues t to run after every task already queued.
func (s *Single) submit(t *task.Task) {
	t.MarkScheduled()
	s.m.RecordScheduled()
	select {
	case s.tasks <- t:
	case <-s.closed:
	}
}

// BlockOn runs fn on the calling goroutine and returns when fn returns;
// ctx is only passed to fn, so a done ctx does not end BlockOn on its own.
// Spawned tasks continue to make progress on the worker goroutine
// concurrently with fn.
func (s *Single) BlockOn(ctx context.Context, fn func(context.Context)) {
	fn(ctx)
}

// Shutdown stops the worker goroutine. Tasks already queued but not yet
// started are dropped; in-flight work is not interrupted. Calling Shutdown
// more than once is a no-op.
func (s *Single) Shutdown() {
	s.once.Do(func() {
		close(s.closed)
	})
}


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
	"sync/atomic"
	"time"

	"github.com/corio/corio/corsync"
	"github.com/corio/corio/internal/rtlog"
	"github.com/corio/corio/metrics"
	"github.com/corio/corio/task"
)

// parkTimeout bounds how long a worker sleeps between re-checks of its
// queues even without being woken. Pulse.Fire only wakes goroutines already
// blocked in Wait, so a Spawn racing just before a worker calls Wait would
// otherwise be missed until the next unrelated wakeup; this timeout is the
// safety net against that race, not the primary wake path.
const parkTimeout = 50 * time.Millisecond

// worker is one goroutine of a MultiThreaded pool: a local deque it owns,
// plus a Pulse it parks on when there is nothing left to steal. Grounded
// directly on the original runtime's worker.rs Worker/WorkerQueue: the
// fetch order in runLoop (local pop, then steal a batch from the shared
// injector, then steal from siblings) matches WorkerQueue::fetch_task.
type worker struct {
	id    int
	local *localDeque
	park  *corsync.Pulse
}

// MultiThreaded is the work-stealing executor: a fixed set of workers each
// pull from their own local deque first, then the shared injector queue,
// then a sibling's deque, falling back to parking when every queue (local,
// injector, every sibling) came up empty. Spawning a task always pushes it
// onto the shared injector, even when called from inside a worker, then
// unparks every worker so an idle one can pick it up — the same
// push_task-then-unpark-every-remote shape as Shared::push_task in the
// original scheduler.
type MultiThreaded struct {
	workers  []*worker
	injector *injector
	log      *rtlog.Logger
	m        metrics.Executor

	wg       sync.WaitGroup
	shutdown atomic.Bool
	done     chan struct{}
}

// Metrics returns a snapshot of this pool's scheduled/completed task
// counters, runnable-queue depth (local deques plus the injector), and
// schedule-delay histogram.
func (m *MultiThreaded) Metrics() metrics.ExecutorSnapshot {
	return m.m.Snapshot()
}

// NewMultiThreaded creates and starts a work-stealing pool per cfg.
func NewMultiThreaded(cfg Config) *MultiThreaded {
	if cfg.Workers <= 0 {
		cfg = DefaultConfig()
	}
	m := &MultiThreaded{
		injector: newInjector(),
		log:      rtlog.Default().With("executor.multi"),
		done:     make(chan struct{}),
	}
	m.workers = make([]*worker, cfg.Workers)
	for i := range m.workers {
		m.workers[i] = &worker{id: i, local: newLocalDeque(), park: corsync.NewPulse()}
	}
	m.wg.Add(cfg.Workers)
	for i := range m.workers {
		go m.runLoop(m.workers[i])
	}
	return m
}

func (m *MultiThreaded) runLoop(w *worker) {
	defer m.wg.Done()
	for {
		if m.shutdown.Load() {
			return
		}
		t, ok := w.local.PopBottom()
		if !ok {
			t, ok = m.stealBatchFromInjector(w)
		}
		if !ok {
			t, ok = m.stealFromSiblings(w)
		}
		if !ok {
			select {
			case <-m.done:
				return
			default:
			}
			waitCtx, cancel := context.WithTimeout(context.Background(), parkTimeout)
			_ = w.park.Wait(waitCtx)
			cancel()
			continue
		}
		delay := time.Since(t.ScheduledAt())
		t.Run()
		v, panicked := t.Panicked()
		m.m.RecordRun(delay, panicked)
		if panicked {
			m.log.Warnf("worker %d: spawned task %d panicked: %v", w.id, t.ID(), v)
		}
	}
}

// stealBatchFromInjector drains up to half the injector's current backlog
// into w's local deque and returns one of them, mirroring
// Injector::steal_batch_and_pop.
func (m *MultiThreaded) stealBatchFromInjector(w *worker) (*task.Task, bool) {
	n := m.injector.Len()
	if n == 0 {
		return nil, false
	}
	batch := n/2 + 1
	first, ok := m.injector.pop()
	if !ok {
		return nil, false
	}
	for i := 1; i < batch; i++ {
		t, ok := m.injector.pop()
		if !ok {
			break
		}
		w.local.PushBottom(t)
	}
	return first, true
}

func (m *MultiThreaded) stealFromSiblings(w *worker) (*task.Task, bool) {
	for _, sibling := range m.workers {
		if sibling == w {
			continue
		}
		if t, ok := sibling.local.StealTop(); ok {
			return t, true
		}
	}
	return nil, false
}

// submit queues t: if called from within a worker's own runLoop goroutine
// this would ideally push to that worker's local deque, but since Go gives
// no reliable way to identify "the calling goroutine is worker N" without
// goroutine-local storage, every submit (including from user code calling
// Spawn) goes through the shared injector, then unparks every worker.
func (m *MultiThreaded) submit(t *task.Task) {
	t.MarkScheduled()
	m.m.RecordScheduled()
	m.injector.push(t)
	for _, w := range m.workers {
		w.park.Fire()
	}
}

// BlockOn runs fn on the calling goroutine, outside the worker pool
// entirely, while the pool's workers continue to make progress on spawned
// tasks concurrently.
func (m *MultiThreaded) BlockOn(ctx context.Context, fn func(context.Context)) {
	fn(ctx)
}

// Shutdown stops accepting new work and waits for every worker goroutine to
// notice and exit. In-flight task bodies are not interrupted.
func (m *MultiThreaded) Shutdown() {
	if !m.shutdown.CompareAndSwap(false, true) {
		return
	}
	close(m.done)
	for _, w := range m.workers {
		w.park.Fire()
	}
	m.wg.Wait()
}

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
	"sync"

	"github.com/corio/corio/task"
)

// localDeque is a worker's own run queue: the owner pushes and pops from
// the bottom (LIFO, for cache locality on recently-spawned work), a thief
// steals from the top (FIFO, to avoid re-stealing work that's about to be
// popped by the owner). This is the standard Chase-Lev work-stealing deque
// shape — same roles as crossbeam_deque's Worker/Stealer pair that the
// original runtime's worker.rs is built on — implemented here with a plain
// mutex instead of the lock-free CAS protocol, which needs none of
// crossbeam_deque's unsafe resizing-buffer machinery to behave correctly
// for a bounded-size pool of short-lived task pointers.
type localDeque struct {
	mu    sync.Mutex
	items []*task.Task
}

func newLocalDeque() *localDeque {
	return &localDeque{}
}

// PushBottom adds t as the next task the owner will run.
func (q *localDeque) PushBottom(t *task.Task) {
	q.mu.Lock()
	q.items = append(q.items, t)
	q.mu.Unlock()
}

// PopBottom removes and returns the task the owner would run next.
func (q *localDeque) PopBottom() (*task.Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items)
	if n == 0 {
		return nil, false
	}
	t := q.items[n-1]
	q.items = q.items[:n-1]
	return t, true
}

// StealTop removes and returns the oldest queued task, for a thief worker.
func (q *localDeque) StealTop() (*task.Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	t := q.items[0]
	q.items = q.items[1:]
	return t, true
}

// Len reports the number of queued-but-not-started tasks.
func (q *localDeque) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

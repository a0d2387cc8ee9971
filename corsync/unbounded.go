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

package corsync

import (
	"container/list"
	"context"
	"sync"
)

// Unbounded is a multi-producer multi-consumer queue with no fixed
// capacity: Send never blocks on the queue being full (only a closed queue
// rejects it), it grows a plain linked list of values guarded by a mutex.
// This is the right shape for something like the timer wheel's "due
// entries" hand-off or the executor's cross-thread wake notifications,
// where producers must never be made to wait behind a slow consumer.
type Unbounded[V any] struct {
	mu       sync.Mutex
	values   *list.List
	notify   chan struct{} // cap 1, one wakeup per arriving item; never closed
	closedCh chan struct{} // closed exactly once, by Close, to wake every waiter
	closed   bool
}

// NewUnbounded creates an empty Unbounded queue.
func NewUnbounded[V any]() *Unbounded[V] {
	return &Unbounded[V]{
		values:   list.New(),
		notify:   make(chan struct{}, 1),
		closedCh: make(chan struct{}),
	}
}

// Send enqueues value. It returns ErrClosed if the queue has been closed.
func (u *Unbounded[V]) Send(value V) error {
	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return ErrClosed
	}
	u.values.PushBack(value)
	u.mu.Unlock()

	select {
	case u.notify <- struct{}{}:
	default:
	}
	return nil
}

// Recv blocks until a value is available, the queue is closed and drained,
// or ctx is done.
func (u *Unbounded[V]) Recv(ctx context.Context) (V, error) {
	for {
		if v, ok := u.tryPop(); ok {
			return v, nil
		}
		u.mu.Lock()
		closed := u.closed
		u.mu.Unlock()
		if closed {
			var zero V
			return zero, ErrClosed
		}
		select {
		case <-u.notify:
		case <-u.closedCh:
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}
}

// TryRecv dequeues a value without blocking, returning ok=false if the
// queue is currently empty (whether or not it has been closed).
func (u *Unbounded[V]) TryRecv() (value V, ok bool) {
	return u.tryPop()
}

func (u *Unbounded[V]) tryPop() (V, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	front := u.values.Front()
	if front == nil {
		var zero V
		return zero, false
	}
	u.values.Remove(front)
	return front.Value.(V), true
}

// Close marks the queue closed. Buffered values already queued are still
// delivered to Recv; once drained, Recv returns ErrClosed.
func (u *Unbounded[V]) Close() {
	u.mu.Lock()
	already := u.closed
	u.closed = true
	u.mu.Unlock()
	if !already {
		close(u.closedCh)
	}
}

// Len returns the approximate number of queued items. Racy by construction.
func (u *Unbounded[V]) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.values.Len()
}

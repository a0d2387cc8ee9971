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

package task

import "context"

// JoinHandle lets the spawner of a task observe its outcome. It is the Go
// shape of a JoinHandle<T>: instead of being itself a Future that's polled,
// Wait blocks on the task's completion channel.
type JoinHandle[T any] struct {
	t      *Task
	result *T
}

// NewTyped creates a Task running fn and a JoinHandle that will carry fn's
// return value once it completes. Spawn functions in the executor and
// corio packages build on this instead of task.New directly, so every
// spawned task has a typed handle.
func NewTyped[T any](ctx context.Context, fn func(context.Context) T) (*Task, *JoinHandle[T]) {
	var result T
	t := New(ctx, func(ctx context.Context) {
		result = fn(ctx)
	})
	return t, &JoinHandle[T]{t: t, result: &result}
}

// Wait blocks until the task completes, ctx is done, or the task panicked.
// A canceled ctx does not stop the task itself — it only stops the wait;
// the task keeps running until its body returns, since Go gives no way to
// forcibly suspend an in-flight goroutine.
func (h *JoinHandle[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-h.t.Done():
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
	if v, ok := h.t.Panicked(); ok {
		var zero T
		return zero, &ErrPanicked{Value: v}
	}
	return *h.result, nil
}

// ID returns the underlying task's identity.
func (h *JoinHandle[T]) ID() ID { return h.t.ID() }

// IsDone reports whether the task has finished without blocking.
func (h *JoinHandle[T]) IsDone() bool {
	select {
	case <-h.t.Done():
		return true
	default:
		return false
	}
}

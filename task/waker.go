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

import "sync"

// Waker is the Go stand-in for a Rust Waker: not something a Task is polled
// with, since a Task already runs to completion on whatever goroutine an
// executor worker gave it, but a generic "something became ready" callback
// that the driver and timer packages hand out to unblock a goroutine that
// registered interest in a result. Firing it more than once is safe; only
// the first call has any effect.
type Waker struct {
	once *sync.Once
	fn   func()
}

// NewWaker wraps fn so it can only ever run once.
func NewWaker(fn func()) Waker {
	return Waker{once: new(sync.Once), fn: fn}
}

// Wake invokes the wrapped callback, if it hasn't already run.
func (w Waker) Wake() {
	if w.fn == nil {
		return
	}
	w.once.Do(w.fn)
}

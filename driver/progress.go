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

package driver

import (
	"context"

	"github.com/corio/corio/task"
)

// Progress is the handle Submit returns: the typed, eventually-available
// result of one in-flight operation. Exactly one of Wait or Close/Cancel
// must be called on it; calling Wait twice, or after Close/Cancel, panics
// (with "already consumed" once the registration is gone, or with the
// cancelling-registration bug message if the op is still in flight).
type Progress[T any] struct {
	id uint64
	d  *Driver
	op Operation
}

// Wait blocks until the operation completes or ctx is done, returning the
// typed result via the owning Operation's ExtractResult.
func (p *Progress[T]) Wait(ctx context.Context) (T, error) {
	var zero T

	done := make(chan struct{})
	waker := task.NewWaker(func() { close(done) })

	res, ready := p.d.poll(p.id, waker)
	if !ready {
		select {
		case <-done:
			// complete() set the registration to stateDone before waking
			// us, so this second poll is guaranteed to find it ready.
			res, _ = p.d.poll(p.id, waker)
		case <-ctx.Done():
			p.d.cancel(p.id)
			return zero, ctx.Err()
		}
	}

	v, err := p.op.ExtractResult(res)
	if err != nil {
		return zero, err
	}
	if v == nil {
		// Operations with no meaningful result (Close, Fsync, Bind, ...)
		// return a nil any on success; asserting a nil interface to any T,
		// even T itself being any, always panics, so short-circuit to the
		// zero value instead of falling through to the type assertion.
		return zero, nil
	}
	return v.(T), nil
}

// Cancel drops the handle before a result is known. Naturally-completed
// results that were never Waited on are discarded.
func (p *Progress[T]) Cancel() {
	p.d.cancel(p.id)
}

// Close is an alias for Cancel, matching the "drop" vocabulary used
// elsewhere in this runtime for handles given up before completion.
func (p *Progress[T]) Close() {
	p.Cancel()
}

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

package corio

import (
	"context"
	"runtime"

	"github.com/corio/corio/executor"
	"github.com/corio/corio/task"
)

// Spawn queues fn on the Runtime active in ctx (the one BlockOn installed,
// or the process-wide default) and returns a handle to its eventual
// result.
func Spawn[T any](ctx context.Context, fn func(context.Context) T) *task.JoinHandle[T] {
	r := runtimeFrom(ctx)
	if r.single != nil {
		return executor.Spawn(r.single, ctx, fn)
	}
	return executor.Spawn(r.multi, ctx, fn)
}

// YieldNow gives the Go scheduler a chance to run other goroutines before
// returning. It is the cooperative-yield suspension point spec.md's model
// calls for at points where a task wants to give other runnable work a
// turn without waiting on anything in particular. Returns ctx.Err() if ctx
// is already done instead of yielding.
func YieldNow(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	runtime.Gosched()
	return nil
}

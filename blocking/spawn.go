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

package blocking

import (
	"context"

	"github.com/corio/corio/task"
)

// Spawn queues fn to run on p's elastic pool and returns a handle to its
// eventual result — the same JoinHandle shape executor.Spawn returns, so
// callers can treat a blocking hand-off and an executor spawn uniformly.
func Spawn[T any](p *Pool, ctx context.Context, fn func(context.Context) T) *task.JoinHandle[T] {
	t, h := task.NewTyped(ctx, fn)
	p.submit(t)
	return h
}

var defaultPool = NewPool("default", DefaultConfig())

// Default returns the process-wide default Pool.
func Default() *Pool { return defaultPool }

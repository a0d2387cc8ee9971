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

	"github.com/corio/corio/task"
)

// submitter is implemented by Single and MultiThreaded. It's unexported
// because Spawn is the only supported entry point — callers are not meant
// to implement their own executors against it.
type submitter interface {
	submit(t *task.Task)
}

// Spawn queues fn to run on ex and returns a handle to its eventual result.
// Go methods can't carry their own type parameters, so Spawn is a free
// function rather than a method on Single/MultiThreaded.
func Spawn[T any](ex submitter, ctx context.Context, fn func(context.Context) T) *task.JoinHandle[T] {
	t, h := task.NewTyped(ctx, fn)
	ex.submit(t)
	return h
}

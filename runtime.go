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
	"fmt"
	"sync"

	"github.com/corio/corio/executor"
)

// Runtime wraps exactly one of the two executors. It is never itself
// generic (Go methods can't carry type parameters), so BlockOn and Spawn
// are free functions that pull the active Runtime out of a context.Context
// instead of being methods with their own type parameter.
type Runtime struct {
	single *executor.Single
	multi  *executor.MultiThreaded
}

// SingleThreaded builds a current-goroutine-style Runtime: one background
// worker, no work stealing. Suited for tests and small tools (see RunTest).
func SingleThreaded() *Runtime {
	return &Runtime{single: executor.NewSingle()}
}

// MultiThreaded builds a work-stealing Runtime sized per opts (default:
// runtime.NumCPU() workers). This is the Runtime corio.Main installs as
// the process default.
func MultiThreaded(opts ...executor.Option) *Runtime {
	return &Runtime{multi: executor.NewMultiThreadedWithOptions(opts...)}
}

// Shutdown stops the underlying executor. In-flight task bodies are not
// interrupted, matching the cooperative-cancellation-only stance this
// runtime takes everywhere else.
func (r *Runtime) Shutdown() {
	if r.single != nil {
		r.single.Shutdown()
	}
	if r.multi != nil {
		r.multi.Shutdown()
	}
}

type runtimeCtxKey struct{}

// inRuntimeKey marks a context as already running inside a BlockOn call,
// the explicit re-entrancy guard substituting for Go's lack of real
// thread-local storage.
var inRuntimeKey = runtimeCtxKey{}

// withRuntime returns a context carrying r as the active Runtime, the
// mechanism Spawn/Sleep/Timeout/YieldNow use to reach it without taking an
// explicit Runtime parameter.
func withRuntime(ctx context.Context, r *Runtime) context.Context {
	return context.WithValue(ctx, inRuntimeKey, r)
}

// runtimeFrom retrieves the Runtime BlockOn installed on ctx, falling back
// to the process-wide default installed by Main (or lazily created on
// first use) if ctx carries none.
func runtimeFrom(ctx context.Context) *Runtime {
	if r, ok := ctx.Value(inRuntimeKey).(*Runtime); ok && r != nil {
		return r
	}
	return defaultRuntime()
}

var (
	defaultMu  sync.Mutex
	defaultRT  *Runtime
)

// SetDefault installs r as the process-wide Runtime that Spawn/Sleep/etc.
// fall back to when called from a context BlockOn never touched. Main
// calls this; most programs never need to.
func SetDefault(r *Runtime) {
	defaultMu.Lock()
	defaultRT = r
	defaultMu.Unlock()
}

func defaultRuntime() *Runtime {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRT == nil {
		defaultRT = MultiThreaded()
	}
	return defaultRT
}

// BlockOn drives fn to completion on the calling goroutine, installing r
// as the active Runtime on fn's context so Spawn/Sleep/the I/O helpers
// work without an explicit Runtime argument. It panics if ctx already
// carries an active Runtime (nested BlockOn), the same fatal condition a
// recursively-entered single-threaded reactor would hit.
func BlockOn[T any](ctx context.Context, r *Runtime, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if _, already := ctx.Value(inRuntimeKey).(*Runtime); already {
		panic("corio: BlockOn called while already inside BlockOn")
	}
	runCtx := withRuntime(ctx, r)

	var (
		result T
		err    error
	)
	body := func(ctx context.Context) {
		result, err = fn(ctx)
	}

	switch {
	case r.single != nil:
		r.single.BlockOn(runCtx, body)
	case r.multi != nil:
		r.multi.BlockOn(runCtx, body)
	default:
		return zero, fmt.Errorf("corio: Runtime has no executor configured")
	}
	return result, err
}

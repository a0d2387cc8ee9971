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
	"errors"
	"fmt"
	"os"

	"github.com/corio/corio/executor"
)

// Main is the entry point a binary built on this runtime calls from its own
// func main: it builds a process-wide MultiThreaded Runtime, installs it as
// the default so any Spawn/Sleep/I-O call reachable from f resolves it
// without needing its own context plumbing, runs f to completion, shuts the
// Runtime down, and terminates the process with a status code derived from
// f's return value. It never returns.
func Main(f func(context.Context) error, opts ...executor.Option) {
	os.Exit(Run(f, opts...))
}

// Run is Main without the os.Exit, split out so callers that need to run
// their own cleanup after the Runtime shuts down (or that are themselves
// under test) can inspect the exit code instead of the process dying.
func Run(f func(context.Context) error, opts ...executor.Option) int {
	rt := MultiThreaded(opts...)
	SetDefault(rt)
	defer rt.Shutdown()

	_, err := BlockOn(context.Background(), rt, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, f(ctx)
	})
	if err == nil {
		return 0
	}

	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	fmt.Fprintln(os.Stderr, err)
	return 1
}

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

// Package executor runs corio tasks on a small, fixed-size worker pool —
// one worker for Single, runtime.NumCPU() by default for MultiThreaded —
// and is deliberately not meant for work that blocks an OS thread for any
// length of time; that belongs on the blocking package's elastic pool
// instead. A worker runs a Task's body inline on its own goroutine, so a
// task that blocks ties up one pool slot until it unblocks: fine for tasks
// whose waits resolve quickly through the driver or timer, wrong for
// anything that calls out to slow, truly-blocking code.
package executor

import "runtime"

// Config controls pool sizing and queue capacity for MultiThreaded.
type Config struct {
	// Workers is the number of worker goroutines. Defaults to
	// runtime.NumCPU() when zero.
	Workers int
	// LocalQueueCapacity is carried in the config but MultiThreaded does
	// not read it: local deques grow without bound, and every spawn goes
	// through the shared injector.
	LocalQueueCapacity int
}

// DefaultConfig returns Workers=runtime.NumCPU(), LocalQueueCapacity=256.
func DefaultConfig() Config {
	return Config{
		Workers:            runtime.NumCPU(),
		LocalQueueCapacity: 256,
	}
}

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

// Package blocking is the elastic counterpart to the executor package:
// where executor keeps a small, fixed-size worker pool so a task's await
// points always resolve promptly, blocking is for work that genuinely
// can't be made async-friendly — DNS lookups through the libc resolver,
// synchronous file APIs outside the driver's operation catalog, CPU-bound
// spans a caller doesn't want to burn an executor slot on. It grows and
// shrinks its goroutine count with load instead of bounding it.
package blocking

import "time"

// Config tunes a Pool.
type Config struct {
	// MaxIdleWorkers bounds how many idle workers the pool keeps warm
	// between bursts of work before they age out.
	MaxIdleWorkers int
	// WorkerMaxAge is how long a pooled worker lives: once this much time
	// has passed since it was created, it exits after finishing its
	// current task.
	WorkerMaxAge time.Duration
	// QueueCapacity is the size of the buffered task queue; once full,
	// Spawn falls back to an unpooled goroutine rather than blocking the
	// caller.
	QueueCapacity int
}

// DefaultConfig returns sensible defaults for general-purpose blocking
// work.
func DefaultConfig() Config {
	return Config{
		MaxIdleWorkers: 1000,
		WorkerMaxAge:   time.Minute,
		QueueCapacity:  1000,
	}
}

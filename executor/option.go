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

// Option mutates a Config being built up by NewMultiThreadedWithOptions. It
// is the functional-options gloss over Config that callers outside this
// package use instead of constructing a Config literal directly.
type Option func(*Config)

// WithWorkers overrides the worker goroutine count.
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

// WithLocalQueueCapacity sets Config.LocalQueueCapacity, which MultiThreaded
// does not read (see Config).
func WithLocalQueueCapacity(n int) Option {
	return func(c *Config) { c.LocalQueueCapacity = n }
}

// NewMultiThreadedWithOptions applies opts over DefaultConfig and starts
// the resulting pool.
func NewMultiThreadedWithOptions(opts ...Option) *MultiThreaded {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewMultiThreaded(cfg)
}

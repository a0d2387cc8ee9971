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

// Package timer implements the hierarchical timer wheel corio.Sleep and
// corio.Timeout are built on: five cascaded wheels at 1ms/1s/1min/1hr/1day
// granularity (1000/60/60/24/365 slots respectively), the same calendar
// shape classic kernel and Netty-style hashed wheel timers use to support
// deadlines from a millisecond to just under a year without the O(log n)
// bookkeeping a priority-queue-based timer needs.
//
// The original runtime this package is modeled on (original_source's
// time/wheel.rs) uses a single flat wheel sized to the caller's tick
// budget; this package keeps its insert/advance vocabulary but cascades
// across five levels instead, since the spec calls for deadlines well
// beyond what a single 1ms-granularity wheel can hold without an
// enormous slot count.
package timer

import "github.com/corio/corio/task"

// entry is one pending deadline. id lets Cancel find and remove it from
// whichever level/slot currently holds it without needing a pointer the
// caller could use after it fires and is recycled.
type entry struct {
	id       uint64
	deadline uint64 // absolute deadline, in wheel ticks (1 tick = 1ms)
	waker    task.Waker
	canceled bool
}

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
	"time"

	"github.com/corio/corio/task"
)

// regState is a registration's lifecycle: Waiting for a completion,
// Cancelling after the caller dropped its Progress handle before one
// arrived, or Done once the kernel has reported a result.
type regState int

const (
	stateWaiting regState = iota
	stateCancelling
	stateDone
)

// registration is the driver's bookkeeping for one in-flight operation,
// keyed by the monotonic id stored in the submission entry's UserData.
// Using an id to look this up instead of a pointer embedded in the
// kernel-visible entry (the teacher's userdata.go trick) avoids handing
// the kernel anything that could outlive a Go GC cycle doing something
// surprising with it, and keeps the graph id+lookup rather than
// back-pointer shaped per the design notes.
type registration struct {
	op          Operation
	state       regState
	res         int32
	waker       *task.Waker
	submittedAt time.Time
}

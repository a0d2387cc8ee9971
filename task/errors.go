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

package task

import "fmt"

// ErrPanicked wraps a panic value recovered from a task's body, surfaced to
// whoever is waiting on the task's JoinHandle instead of crashing the
// worker that ran it.
type ErrPanicked struct {
	Value any
}

func (e *ErrPanicked) Error() string {
	return fmt.Sprintf("task: panicked: %v", e.Value)
}

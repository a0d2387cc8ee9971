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
	"time"

	"github.com/corio/corio/timer"
)

// Sleep suspends the calling goroutine for delay, or until ctx is done,
// whichever comes first. It is built directly on the package timer's
// hierarchical wheel.
func Sleep(ctx context.Context, delay time.Duration) error {
	return timer.Sleep(ctx, delay)
}

// Timeout runs fn and returns its result if fn finishes within delay, or
// timer.ErrTimeoutElapsed if the deadline fires first. fn is never
// forcibly stopped if it loses the race — this runtime only ever asks
// work to wind down, never terminates it forcibly.
func Timeout(ctx context.Context, delay time.Duration, fn func(context.Context) error) error {
	return timer.Timeout(ctx, delay, fn)
}

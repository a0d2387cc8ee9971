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

package timer

import (
	"context"
	"time"

	"github.com/corio/corio/task"
)

// Sleep blocks the calling goroutine until delay has elapsed on the
// default Driver's wheel, or ctx is canceled first. This is the
// building block corio.Sleep is a thin wrapper over; it lives here
// rather than in the root package so it can be unit-tested against a
// fake nowFunc without dragging in the rest of the runtime.
func Sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	done := make(chan struct{})
	waker := task.NewWaker(func() { close(done) })
	cancel := Get().Schedule(delay, waker)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	}
}

// Timeout runs fn on a new goroutine with a context that is canceled once
// delay elapses, returning fn's error, or ErrTimeoutElapsed if the delay
// fired first (ctx's own error if ctx ended first). Timeout does not wait
// for fn after the deadline; canceling fn's context only asks it to wind
// down early, it does not forcibly stop it.
func Timeout(ctx context.Context, delay time.Duration, fn func(context.Context) error) error {
	tctx, tcancel := context.WithCancel(ctx)
	defer tcancel()

	done := make(chan struct{})
	waker := task.NewWaker(func() { tcancel(); close(done) })
	cancel := Get().Schedule(delay, waker)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- fn(tctx)
	}()

	select {
	case err := <-errCh:
		select {
		case <-done:
		default:
			cancel()
		}
		return err
	case <-tctx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTimeoutElapsed
	}
}

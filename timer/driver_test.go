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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corio/corio/task"
)

func TestDriverScheduleFires(t *testing.T) {
	d := NewDriver()
	defer d.Shutdown()

	done := make(chan struct{})
	d.Schedule(5*time.Millisecond, task.NewWaker(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waker never fired")
	}
}

func TestDriverCancelPreventsFire(t *testing.T) {
	d := NewDriver()
	defer d.Shutdown()

	fired := make(chan struct{})
	cancel := d.Schedule(50*time.Millisecond, task.NewWaker(func() { close(fired) }))
	assert.True(t, cancel())

	select {
	case <-fired:
		t.Fatal("canceled waker fired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSleepReturnsAfterDelay(t *testing.T) {
	Reset()
	defer Reset()

	start := time.Now()
	err := Sleep(context.Background(), 10*time.Millisecond)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 9*time.Millisecond)
}

func TestSleepReturnsOnContextCancel(t *testing.T) {
	Reset()
	defer Reset()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Sleep(ctx, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTimeoutReturnsFnResultWhenFast(t *testing.T) {
	Reset()
	defer Reset()

	err := Timeout(context.Background(), 100*time.Millisecond, func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)
}

func TestTimeoutExpiresBeforeFnFinishes(t *testing.T) {
	Reset()
	defer Reset()

	block := make(chan struct{})
	defer close(block)

	err := Timeout(context.Background(), 5*time.Millisecond, func(ctx context.Context) error {
		<-block
		return nil
	})
	assert.ErrorIs(t, err, ErrTimeoutElapsed)
}

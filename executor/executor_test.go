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

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corio/corio/task"
)

func TestSingleSpawnRunsAndReturnsValue(t *testing.T) {
	ex := NewSingle()
	defer ex.Shutdown()

	h := Spawn(ex, context.Background(), func(ctx context.Context) int { return 21 * 2 })
	v, err := h.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestSingleBlockOnRunsOnCaller(t *testing.T) {
	ex := NewSingle()
	defer ex.Shutdown()

	var ran bool
	ex.BlockOn(context.Background(), func(ctx context.Context) { ran = true })
	assert.True(t, ran)
}

func TestSingleManySpawnsAllComplete(t *testing.T) {
	ex := NewSingle()
	defer ex.Shutdown()

	const n = 100
	var counter atomic.Int64
	for i := 0; i < n; i++ {
		h := Spawn(ex, context.Background(), func(ctx context.Context) int {
			counter.Add(1)
			return 0
		})
		_, err := h.Wait(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int64(n), counter.Load())
}

func TestMultiThreadedSpawnAcrossWorkers(t *testing.T) {
	ex := NewMultiThreaded(Config{Workers: 4})
	defer ex.Shutdown()

	const n = 200
	var counter atomic.Int64
	handles := make([]*task.JoinHandle[int], n)
	for i := 0; i < n; i++ {
		handles[i] = Spawn(ex, context.Background(), func(ctx context.Context) int {
			counter.Add(1)
			return 0
		})
	}
	for _, h := range handles {
		_, err := h.Wait(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int64(n), counter.Load())
}

func TestMultiThreadedStealingUnblocksIdleWorkers(t *testing.T) {
	ex := NewMultiThreaded(Config{Workers: 2})
	defer ex.Shutdown()

	start := time.Now()
	const n = 50
	done := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		Spawn(ex, context.Background(), func(ctx context.Context) int {
			time.Sleep(2 * time.Millisecond)
			done <- struct{}{}
			return 0
		})
	}
	for i := 0; i < n; i++ {
		<-done
	}
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestMultiThreadedShutdownIsIdempotent(t *testing.T) {
	ex := NewMultiThreaded(Config{Workers: 2})
	ex.Shutdown()
	ex.Shutdown()
}

func TestMultiThreadedPanicDoesNotCrashPool(t *testing.T) {
	ex := NewMultiThreaded(Config{Workers: 2})
	defer ex.Shutdown()

	h := Spawn(ex, context.Background(), func(ctx context.Context) int { panic("boom") })
	_, err := h.Wait(context.Background())
	require.Error(t, err)
	var pe *task.ErrPanicked
	require.ErrorAs(t, err, &pe)

	h2 := Spawn(ex, context.Background(), func(ctx context.Context) int { return 9 })
	v, err := h2.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, v)
}

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

package blocking

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corio/corio/task"
)

func TestSpawnRunsAndReturnsValue(t *testing.T) {
	p := NewPool("test", DefaultConfig())
	h := Spawn(p, context.Background(), func(ctx context.Context) int { return 7 * 6 })
	v, err := h.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestSpawnManyGrowsAndDrainsPool(t *testing.T) {
	p := NewPool("test", Config{MaxIdleWorkers: 4, WorkerMaxAge: 50 * time.Millisecond, QueueCapacity: 8})

	const n = 500
	var counter atomic.Int64
	handles := make([]*task.JoinHandle[int], n)
	for i := 0; i < n; i++ {
		handles[i] = Spawn(p, context.Background(), func(ctx context.Context) int {
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

func TestSpawnPanicSurfacesViaJoinHandle(t *testing.T) {
	p := NewPool("test", DefaultConfig())
	h := Spawn(p, context.Background(), func(ctx context.Context) int { panic("boom") })
	_, err := h.Wait(context.Background())
	require.Error(t, err)
	var pe *task.ErrPanicked
	require.True(t, errors.As(err, &pe))
}

func TestQueueOverflowFallsBackToUnpooledGoroutine(t *testing.T) {
	p := NewPool("test", Config{MaxIdleWorkers: 0, WorkerMaxAge: time.Hour, QueueCapacity: 1})

	const n = 50
	handles := make([]*task.JoinHandle[int], n)
	for i := 0; i < n; i++ {
		handles[i] = Spawn(p, context.Background(), func(ctx context.Context) int { return 1 })
	}
	var total int
	for _, h := range handles {
		v, err := h.Wait(context.Background())
		require.NoError(t, err)
		total += v
	}
	assert.Equal(t, n, total)
}

func TestWorkerAgesOutAfterMaxAge(t *testing.T) {
	p := NewPool("test", Config{MaxIdleWorkers: 10, WorkerMaxAge: 5 * time.Millisecond, QueueCapacity: 8})

	h := Spawn(p, context.Background(), func(ctx context.Context) int { return 1 })
	_, err := h.Wait(context.Background())
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return p.CurrentWorkers() == 0
	}, time.Second, time.Millisecond)
}

func TestDefaultPoolIsSharedAndUsable(t *testing.T) {
	h := Spawn(Default(), context.Background(), func(ctx context.Context) string { return "ok" })
	v, err := h.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

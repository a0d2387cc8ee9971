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

package corsync

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemaphoreLimitsConcurrency(t *testing.T) {
	sem := NewSemaphore(2)
	var inFlight atomic.Int32
	var maxSeen atomic.Int32

	const workers = 8
	done := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			tok, err := sem.Acquire(context.Background())
			require.NoError(t, err)
			defer tok.Release()

			n := inFlight.Add(1)
			for {
				m := maxSeen.Load()
				if n <= m || maxSeen.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
		}()
	}
	for i := 0; i < workers; i++ {
		<-done
	}
	assert.LessOrEqual(t, maxSeen.Load(), int32(2))
}

func TestSemaphoreTryAcquireWouldBlock(t *testing.T) {
	sem := NewSemaphore(1)
	tok, err := sem.TryAcquire()
	require.NoError(t, err)

	_, err = sem.TryAcquire()
	assert.ErrorIs(t, err, ErrWouldBlock)

	tok.Release()
	tok2, err := sem.TryAcquire()
	require.NoError(t, err)
	tok2.Release()
}

func TestSemaphoreAcquireContextCanceled(t *testing.T) {
	sem := NewSemaphore(1)
	tok, err := sem.Acquire(context.Background())
	require.NoError(t, err)
	defer tok.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err = sem.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

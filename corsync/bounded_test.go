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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedSendRecvFIFO(t *testing.T) {
	b := NewBounded[int](4)
	for i := 0; i < 4; i++ {
		require.NoError(t, b.Send(context.Background(), i))
	}
	for i := 0; i < 4; i++ {
		v, err := b.Recv(context.Background())
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
}

func TestBoundedSendBlocksWhenFull(t *testing.T) {
	b := NewBounded[int](1)
	require.NoError(t, b.Send(context.Background(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := b.Send(ctx, 2)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBoundedMPMC(t *testing.T) {
	b := NewBounded[int](8)
	const n = 200
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			require.NoError(t, b.Send(context.Background(), i))
		}
	}()

	seen := make([]bool, n)
	for i := 0; i < n; i++ {
		v, err := b.Recv(context.Background())
		require.NoError(t, err)
		seen[v] = true
	}
	wg.Wait()
	for i, ok := range seen {
		assert.Truef(t, ok, "missing value %d", i)
	}
}

func TestBoundedCloseDrainsThenErrors(t *testing.T) {
	b := NewBounded[int](4)
	require.NoError(t, b.Send(context.Background(), 1))
	b.Close()

	v, err := b.Recv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = b.Recv(context.Background())
	assert.ErrorIs(t, err, ErrClosed)

	err = b.Send(context.Background(), 2)
	assert.ErrorIs(t, err, ErrClosed)
}

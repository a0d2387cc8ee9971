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

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRunCompletes(t *testing.T) {
	ran := false
	tk := New(context.Background(), func(ctx context.Context) { ran = true })
	tk.Run()
	assert.True(t, ran)
	_, ok := tk.Panicked()
	assert.False(t, ok)
}

func TestTaskRecoversPanic(t *testing.T) {
	tk := New(context.Background(), func(ctx context.Context) { panic("boom") })
	tk.Run()
	v, ok := tk.Panicked()
	require.True(t, ok)
	assert.Equal(t, "boom", v)
}

func TestJoinHandleWaitReturnsValue(t *testing.T) {
	tk, h := NewTyped(context.Background(), func(ctx context.Context) int { return 42 })
	go tk.Run()

	v, err := h.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, h.IsDone())
}

func TestJoinHandleWaitSurfacesPanic(t *testing.T) {
	tk, h := NewTyped(context.Background(), func(ctx context.Context) int { panic("oops") })
	go tk.Run()

	_, err := h.Wait(context.Background())
	require.Error(t, err)
	var pe *ErrPanicked
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "oops", pe.Value)
}

func TestJoinHandleWaitContextCanceledDoesNotStopTask(t *testing.T) {
	started := make(chan struct{})
	finish := make(chan struct{})
	tk, h := NewTyped(context.Background(), func(ctx context.Context) int {
		close(started)
		<-finish
		return 1
	})
	go tk.Run()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := h.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(finish)
	v, err := h.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

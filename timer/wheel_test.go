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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corio/corio/task"
)

func fireCounter() (task.Waker, *int) {
	n := 0
	return task.NewWaker(func() { n++ }), &n
}

func TestWheelFiresAtExactTick(t *testing.T) {
	w := NewWheel()
	waker, n := fireCounter()
	w.Insert(10, waker)

	due := w.Advance(9)
	assert.Empty(t, due)
	assert.Equal(t, 0, *n)

	due = w.Advance(10)
	require.Len(t, due, 1)
	due[0].Wake()
	assert.Equal(t, 1, *n)
}

func TestWheelCancelPreventsFire(t *testing.T) {
	w := NewWheel()
	waker, n := fireCounter()
	id := w.Insert(10, waker)

	ok := w.Cancel(id)
	assert.True(t, ok)

	due := w.Advance(20)
	assert.Empty(t, due)
	assert.Equal(t, 0, *n)
}

func TestWheelCancelAfterFireReturnsFalse(t *testing.T) {
	w := NewWheel()
	waker, _ := fireCounter()
	id := w.Insert(5, waker)
	w.Advance(5)
	assert.False(t, w.Cancel(id))
}

func TestWheelCascadesAcrossLevels(t *testing.T) {
	w := NewWheel()
	waker, n := fireCounter()
	// Past level 0's 1000-tick span: lands in level 1, must cascade down
	// through level 0 before it can fire.
	deadline := uint64(2500)
	w.Insert(deadline, waker)

	due := w.Advance(deadline - 1)
	assert.Empty(t, due)

	due = w.Advance(deadline)
	require.Len(t, due, 1)
	due[0].Wake()
	assert.Equal(t, 1, *n)
}

func TestWheelManyEntriesEachFireOnce(t *testing.T) {
	w := NewWheel()
	const n = 200
	counts := make([]int, n)
	for i := 0; i < n; i++ {
		idx := i
		w.Insert(uint64(i+1), task.NewWaker(func() { counts[idx]++ }))
	}
	for tick := uint64(1); tick <= n; tick++ {
		due := w.Advance(tick)
		for _, d := range due {
			d.Wake()
		}
	}
	for i, c := range counts {
		assert.Equalf(t, 1, c, "entry %d fired %d times", i, c)
	}
	assert.Equal(t, 0, w.Len())
}

func TestWheelDeadlineBeyondMaxDelayIsClamped(t *testing.T) {
	w := NewWheel()
	waker, n := fireCounter()
	w.Insert(MaxDelay*2, waker)

	due := w.Advance(MaxDelay)
	require.Len(t, due, 1)
	due[0].Wake()
	assert.Equal(t, 1, *n)
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutexLockUnlock(t *testing.T) {
	m := NewMutex(0)
	g, err := m.Lock(context.Background())
	require.NoError(t, err)
	*g.Value()++
	g.Unlock()

	g2, err := m.Lock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, *g2.Value())
	g2.Unlock()
}

func TestMutexPoisonsOnPanic(t *testing.T) {
	m := NewMutex(0)

	assert.Panics(t, func() {
		_ = m.LockFunc(context.Background(), func(v *int) error {
			panic("boom")
		})
	})

	_, err := m.Lock(context.Background())
	assert.ErrorIs(t, err, ErrPoisoned)
}

func TestMutexLockFuncReturnsError(t *testing.T) {
	m := NewMutex(0)
	wantErr := assert.AnError
	err := m.LockFunc(context.Background(), func(v *int) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// not poisoned by an ordinary returned error
	_, lockErr := m.Lock(context.Background())
	require.NoError(t, lockErr)
}

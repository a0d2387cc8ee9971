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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnboundedNeverBlocksOnSend(t *testing.T) {
	u := NewUnbounded[int]()
	for i := 0; i < 10000; i++ {
		require.NoError(t, u.Send(i))
	}
	assert.Equal(t, 10000, u.Len())
}

func TestUnboundedFIFO(t *testing.T) {
	u := NewUnbounded[string]()
	require.NoError(t, u.Send("a"))
	require.NoError(t, u.Send("b"))

	v, err := u.Recv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, err = u.Recv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestUnboundedCloseWakesAllWaiters(t *testing.T) {
	u := NewUnbounded[int]()
	const waiters = 5
	errs := make(chan error, waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			_, err := u.Recv(context.Background())
			errs <- err
		}()
	}
	time.Sleep(20 * time.Millisecond)
	u.Close()

	for i := 0; i < waiters; i++ {
		select {
		case err := <-errs:
			assert.ErrorIs(t, err, ErrClosed)
		case <-time.After(time.Second):
			t.Fatal("not every waiter woke up after Close")
		}
	}
}

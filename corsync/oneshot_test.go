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

func TestOneshotSendThenRecv(t *testing.T) {
	tx, rx := NewOneshot[int]()
	require.NoError(t, tx.Send(7))

	got, err := rx.Recv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestOneshotRecvThenSend(t *testing.T) {
	tx, rx := NewOneshot[string]()

	resultCh := make(chan string, 1)
	go func() {
		v, err := rx.Recv(context.Background())
		require.NoError(t, err)
		resultCh <- v
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, tx.Send("hello"))

	select {
	case v := <-resultCh:
		assert.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("receiver never woke up")
	}
}

func TestOneshotSenderDroppedBeforeSend(t *testing.T) {
	tx, rx := NewOneshot[int]()
	tx.Close()

	_, err := rx.Recv(context.Background())
	assert.ErrorIs(t, err, ErrSenderDropped)
	assert.ErrorIs(t, err, ErrChannelDropped)
}

func TestOneshotRecvContextCanceled(t *testing.T) {
	_, rx := NewOneshot[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := rx.Recv(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOneshotDoubleSendPanics(t *testing.T) {
	tx, _ := NewOneshot[int]()
	require.NoError(t, tx.Send(1))
	assert.Panics(t, func() { _ = tx.Send(2) })
}

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
)

func TestPulseWakesAllWaiters(t *testing.T) {
	p := NewPulse()
	const waiters = 5
	woke := make(chan struct{}, waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			_ = p.Wait(context.Background())
			woke <- struct{}{}
		}()
	}
	time.Sleep(20 * time.Millisecond)
	p.Fire()

	for i := 0; i < waiters; i++ {
		select {
		case <-woke:
		case <-time.After(time.Second):
			t.Fatal("not every waiter woke up after Fire")
		}
	}
}

func TestPulseWaitContextCanceled(t *testing.T) {
	p := NewPulse()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

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
)

// Semaphore is a counting semaphore with a fixed capacity. It is the
// building block Mutex is defined on top of (a Mutex is a Semaphore with
// size 1 plus a poison flag).
type Semaphore struct {
	slots chan struct{}
}

// NewSemaphore creates a semaphore that allows up to size concurrent holders.
func NewSemaphore(size int) *Semaphore {
	if size <= 0 {
		panic("corsync: semaphore size must be positive")
	}
	s := &Semaphore{slots: make(chan struct{}, size)}
	for i := 0; i < size; i++ {
		s.slots <- struct{}{}
	}
	return s
}

// AcquireToken represents one held slot. Release must be called exactly once.
type AcquireToken struct {
	sem *Semaphore
}

// Acquire blocks until a slot is available or ctx is done.
func (s *Semaphore) Acquire(ctx context.Context) (AcquireToken, error) {
	select {
	case <-s.slots:
		return AcquireToken{sem: s}, nil
	case <-ctx.Done():
		return AcquireToken{}, ctx.Err()
	}
}

// TryAcquire acquires a slot without blocking, returning ErrWouldBlock if
// none is free.
func (s *Semaphore) TryAcquire() (AcquireToken, error) {
	select {
	case <-s.slots:
		return AcquireToken{sem: s}, nil
	default:
		return AcquireToken{}, ErrWouldBlock
	}
}

// Release returns the held slot to the semaphore. Calling Release on the
// zero AcquireToken panics. A second Release of the same token is not
// detected: it returns one more slot, and blocks if every slot is
// already free.
func (t AcquireToken) Release() {
	if t.sem == nil {
		panic("corsync: Release called on a token that never acquired a slot")
	}
	t.sem.slots <- struct{}{}
}

// Available reports how many slots are currently free. Intended for metrics
// and tests, not for making acquire decisions (it is stale the instant it
// is read).
func (s *Semaphore) Available() int {
	return len(s.slots)
}

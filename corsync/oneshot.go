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
)

// oneshotState mirrors the Init/Sent/Returned/Dropped state machine of the
// channel this type is modeled on: at most one value ever crosses it, and
// once the sender goes away the receiver observes ErrSenderDropped instead
// of blocking forever.
type oneshotState int

const (
	oneshotInit oneshotState = iota
	oneshotSent
	oneshotReturned
	oneshotDropped
)

// oneshotInner is the shared state between a Sender and a Receiver. Exactly
// one of each exists per Oneshot, enforced by NewOneshot handing out both
// halves once.
type oneshotInner[V any] struct {
	mu    sync.Mutex
	state oneshotState
	value V
	ready chan struct{}
}

// Sender is the write half of a Oneshot[V]. Send may be called at most once.
type Sender[V any] struct {
	inner *oneshotInner[V]
}

// Receiver is the read half of a Oneshot[V]. Recv may be called at most once.
type Receiver[V any] struct {
	inner *oneshotInner[V]
}

// NewOneshot creates a single-value channel and returns its two halves.
func NewOneshot[V any]() (Sender[V], Receiver[V]) {
	inner := &oneshotInner[V]{ready: make(chan struct{})}
	return Sender[V]{inner}, Receiver[V]{inner}
}

// Send delivers value to the receiver. It never blocks: if this Sender was
// already Close'd, Send reports ErrSenderDropped and the value is
// discarded, exactly like sending on a channel nobody will ever read from.
func (s Sender[V]) Send(value V) error {
	inner := s.inner
	inner.mu.Lock()
	defer inner.mu.Unlock()

	switch inner.state {
	case oneshotDropped:
		return ErrSenderDropped
	case oneshotInit:
		inner.value = value
		inner.state = oneshotSent
		close(inner.ready)
		return nil
	default:
		// Sent/Returned: Send called twice, which is a caller bug in every
		// implementation this type is modeled on. Surface it the same way
		// a double-close would.
		panic("corsync: Send called more than once on the same Oneshot")
	}
}

// Close drops the sender without delivering a value. A pending Recv wakes
// with ErrSenderDropped. Safe to call even if Send already happened.
func (s Sender[V]) Close() {
	inner := s.inner
	inner.mu.Lock()
	defer inner.mu.Unlock()
	if inner.state == oneshotInit {
		inner.state = oneshotDropped
		close(inner.ready)
	}
}

// Recv blocks until a value is sent, the sender is dropped, or ctx is done.
func (r Receiver[V]) Recv(ctx context.Context) (V, error) {
	inner := r.inner
	select {
	case <-inner.ready:
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}

	inner.mu.Lock()
	defer inner.mu.Unlock()
	switch inner.state {
	case oneshotSent:
		inner.state = oneshotReturned
		return inner.value, nil
	case oneshotDropped:
		var zero V
		return zero, ErrSenderDropped
	default:
		var zero V
		return zero, ErrSenderDropped
	}
}

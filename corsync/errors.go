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

// Package corsync provides the coordination primitives used by corio tasks
// to talk to each other: a single-value Oneshot, bounded and unbounded mpmc
// queues, a counting Semaphore, an async Mutex and a broadcast Pulse.
//
// None of these types touch the driver or the executor directly — they are
// built entirely out of channels and a sync.Mutex-guarded state struct, so
// they work the same whether the caller is inside a spawned task or a plain
// goroutine that never touches corio at all.
package corsync

import (
	"errors"
	"fmt"
)

// ErrChannelDropped is the generic "the peer end went away" sentinel. No
// operation returns it directly: ErrSenderDropped wraps it, and
// Bounded/Unbounded report a closed channel with ErrClosed instead.
var ErrChannelDropped = errors.New("corsync: channel dropped")

// ErrSenderDropped is Oneshot's distinct spelling of the same condition: a
// Receiver.Recv call unblocks because the Sender was Close'd (or dropped
// without ever calling Send) rather than because a value arrived. Oneshot
// has exactly two participants and a naturally one-way lifetime, so unlike
// Bounded/Unbounded's multi-producer/multi-consumer "a peer went away"
// shape, which side dropped is always known and worth naming. It wraps
// ErrChannelDropped so callers that only check the generic sentinel still
// match via errors.Is.
var ErrSenderDropped = fmt.Errorf("corsync: sender dropped: %w", ErrChannelDropped)

// ErrClosed is returned by operations attempted on an already-closed queue.
var ErrClosed = errors.New("corsync: queue closed")

// ErrPoisoned is returned by Mutex.Lock when a previous holder panicked
// while holding the guard.
var ErrPoisoned = errors.New("corsync: mutex poisoned")

// ErrWouldBlock is returned by the non-blocking Try* variants when the
// operation cannot complete immediately.
var ErrWouldBlock = errors.New("corsync: operation would block")

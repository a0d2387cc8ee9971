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
	"sync/atomic"
)

// Mutex guards a value of type T behind a single-slot Semaphore, the same
// construction used by the runtime this type is modeled on: acquiring the
// lock is acquiring the only slot in a size-1 semaphore. Go has no
// destructors, so where the original poisons the mutex from the guard's
// Drop impl when the holder is panicking, here poisoning is explicit:
// callers that may panic while holding the lock should use LockFunc, which
// poisons on panic and re-panics, instead of manual Lock/Unlock.
type Mutex[T any] struct {
	sem      *Semaphore
	poisoned atomic.Bool
	value    T
}

// NewMutex creates a Mutex guarding the given initial value.
func NewMutex[T any](value T) *Mutex[T] {
	return &Mutex[T]{sem: NewSemaphore(1), value: value}
}

// Guard is the held lock. The zero Guard is not valid; only values returned
// by Lock/TryLock hold a real token.
type Guard[T any] struct {
	m     *Mutex[T]
	token AcquireToken
}

// Lock blocks until the mutex is free or ctx is done. It returns
// ErrPoisoned without blocking if a previous holder panicked.
func (m *Mutex[T]) Lock(ctx context.Context) (*Guard[T], error) {
	if m.poisoned.Load() {
		return nil, ErrPoisoned
	}
	tok, err := m.sem.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if m.poisoned.Load() {
		tok.Release()
		return nil, ErrPoisoned
	}
	return &Guard[T]{m: m, token: tok}, nil
}

// TryLock acquires the mutex without blocking.
func (m *Mutex[T]) TryLock() (*Guard[T], error) {
	if m.poisoned.Load() {
		return nil, ErrPoisoned
	}
	tok, err := m.sem.TryAcquire()
	if err != nil {
		return nil, err
	}
	return &Guard[T]{m: m, token: tok}, nil
}

// Value returns the guarded value. Only valid while the guard is held.
func (g *Guard[T]) Value() *T {
	return &g.m.value
}

// Unlock releases the mutex.
func (g *Guard[T]) Unlock() {
	g.token.Release()
}

// Poison marks the mutex as permanently unusable. Every future Lock/TryLock
// returns ErrPoisoned. Used by LockFunc when the guarded closure panics.
func (m *Mutex[T]) Poison() {
	m.poisoned.Store(true)
}

// LockFunc acquires the mutex, runs fn with the guarded value, unlocks, and
// returns fn's error. If fn panics, the mutex is poisoned and the panic is
// re-raised after the slot is released, so the panic does not leave the
// mutex permanently held.
func (m *Mutex[T]) LockFunc(ctx context.Context, fn func(*T) error) (err error) {
	g, lockErr := m.Lock(ctx)
	if lockErr != nil {
		return lockErr
	}
	defer func() {
		if r := recover(); r != nil {
			m.Poison()
			g.Unlock()
			panic(r)
		}
		g.Unlock()
	}()
	err = fn(g.Value())
	return err
}

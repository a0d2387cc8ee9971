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

// Pulse is a level-free broadcast notification: every Wait call in flight
// when Fire is called wakes up, but Pulse carries no payload and remembers
// no history, unlike Oneshot. The MultiThreaded executor's parker uses it
// to wake a sleeping worker when a task becomes runnable.
type Pulse struct {
	mu  sync.Mutex
	gen chan struct{}
}

// NewPulse creates a Pulse ready to Fire and Wait on.
func NewPulse() *Pulse {
	return &Pulse{gen: make(chan struct{})}
}

// Fire wakes every goroutine currently blocked in Wait. Fire calls that
// don't overlap any Wait call are not remembered — Pulse has no queue.
func (p *Pulse) Fire() {
	p.mu.Lock()
	old := p.gen
	p.gen = make(chan struct{})
	p.mu.Unlock()
	close(old)
}

// Wait blocks until the next Fire call or until ctx is done.
func (p *Pulse) Wait(ctx context.Context) error {
	p.mu.Lock()
	gen := p.gen
	p.mu.Unlock()

	select {
	case <-gen:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

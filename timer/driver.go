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
	"sync"
	"sync/atomic"
	"time"

	"github.com/corio/corio/task"
)

// tickInterval is the driver's own clock granularity. It matches level 0's
// slot width (1ms) since ticking any coarser would make level 0 useless.
const tickInterval = time.Millisecond

// Driver owns a Wheel and a background goroutine that advances it roughly
// every tickInterval, firing due wakers as it goes. A single Driver is
// meant to back an entire runtime instance; Get/Reset/Shutdown give it
// the same process-wide singleton lifecycle the driver package uses for
// its I/O reactor, so every corio.Sleep call in a process shares one
// ticking goroutine instead of spawning its own.
type Driver struct {
	wheel   *Wheel
	started time.Time

	wake chan uint64 // deadline hint from Schedule; run drains it without ticking early
	done chan struct{}
	wg   sync.WaitGroup

	closed atomic.Bool
}

// NewDriver creates a Driver and starts its background ticking goroutine.
func NewDriver() *Driver {
	d := &Driver{
		wheel:   NewWheel(),
		started: nowFunc(),
		wake:    make(chan uint64, 1),
		done:    make(chan struct{}),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// nowFunc is a seam for tests; production code always uses time.Now.
var nowFunc = time.Now

func (d *Driver) elapsedTicks() uint64 {
	return uint64(nowFunc().Sub(d.started) / tickInterval)
}

func (d *Driver) run() {
	defer d.wg.Done()
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return
		case <-ticker.C:
			d.advance()
		case deadline := <-d.wake:
			// An entry was scheduled earlier than the wheel has already
			// advanced past expecting; nothing to do but let the next
			// natural tick (or a closer wake request) catch it — ticks
			// are 1ms apart so there is no meaningful earlier moment to
			// jump to, this channel only exists so Schedule never blocks
			// trying to hand the driver a hint while it is mid-tick.
			_ = deadline
		}
	}
}

func (d *Driver) advance() {
	due := d.wheel.Advance(d.elapsedTicks())
	for _, w := range due {
		w.Wake()
	}
}

// Schedule arranges for waker to fire after delay elapses (clamped to
// MaxDelay) and returns a Cancel func.
func (d *Driver) Schedule(delay time.Duration, waker task.Waker) (cancel func() bool) {
	if delay < 0 {
		delay = 0
	}
	deadline := d.elapsedTicks() + uint64(delay/tickInterval)
	id := d.wheel.Insert(deadline, waker)
	select {
	case d.wake <- deadline:
	default:
	}
	return func() bool { return d.wheel.Cancel(id) }
}

// Shutdown stops the background ticking goroutine. Entries still pending
// never fire.
func (d *Driver) Shutdown() {
	if !d.closed.CompareAndSwap(false, true) {
		return
	}
	close(d.done)
	d.wg.Wait()
}

var (
	defaultDriver   *Driver
	defaultDriverMu sync.Mutex
)

// Get returns the process-wide default Driver, creating it on first use.
func Get() *Driver {
	defaultDriverMu.Lock()
	defer defaultDriverMu.Unlock()
	if defaultDriver == nil {
		defaultDriver = NewDriver()
	}
	return defaultDriver
}

// Reset shuts down and clears the process-wide default Driver. It exists
// for tests that need a clean wheel between cases.
func Reset() {
	defaultDriverMu.Lock()
	defer defaultDriverMu.Unlock()
	if defaultDriver != nil {
		defaultDriver.Shutdown()
		defaultDriver = nil
	}
}

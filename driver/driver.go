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

package driver

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/corio/corio/internal/rtlog"
	"github.com/corio/corio/metrics"
	"github.com/corio/corio/task"
)

// Driver is the process-singleton I/O reactor: a Ring plus the id-keyed
// registration map and reaper goroutine that turn its completions into
// woken Progress handles.
type Driver struct {
	ring Ring
	log  *rtlog.Logger
	m    metrics.Driver

	idCounter atomic.Uint64

	regsMu sync.Mutex
	regs   map[uint64]*registration

	shutdown atomic.Bool
	reaperWG sync.WaitGroup
}

func newDriver(ring Ring) *Driver {
	d := &Driver{
		ring: ring,
		log:  rtlog.Default().With("driver"),
		regs: make(map[uint64]*registration),
	}
	d.reaperWG.Add(1)
	go d.reap()
	return d
}

// Metrics returns a snapshot of this Driver's submit/complete counters,
// in-flight queue depth, and completion-latency histogram.
func (d *Driver) Metrics() metrics.DriverSnapshot {
	return d.m.Snapshot()
}

// Submit registers op, builds its submission entry, and hands it to the
// ring. It returns a Progress handle the caller uses to await the typed
// result, ErrDriverShutdown after Shutdown, or the backend's submit error.
// An op the backend can carry neither on the ring nor through a blocking
// fallback is still accepted here; its Wait then fails with an *OpError
// whose Errno is EIO, not with ErrUnsupportedOp.
func Submit[T any](d *Driver, op Operation) (*Progress[T], error) {
	if d.shutdown.Load() {
		return nil, ErrDriverShutdown
	}

	id := d.idCounter.Add(1)
	reg := &registration{op: op, state: stateWaiting, submittedAt: time.Now()}

	d.regsMu.Lock()
	d.regs[id] = reg
	d.regsMu.Unlock()

	if err := d.ring.Submit(id, op); err != nil {
		d.regsMu.Lock()
		delete(d.regs, id)
		d.regsMu.Unlock()
		return nil, err
	}

	d.m.RecordSubmit()
	return &Progress[T]{id: id, d: d, op: op}, nil
}

// reap drains completions off the ring and updates their registrations,
// waking anyone already blocked on a Wait call.
func (d *Driver) reap() {
	defer d.reaperWG.Done()
	for {
		if d.shutdown.Load() {
			return
		}
		results, err := d.ring.Wait()
		if err != nil {
			d.log.Warnf("ring wait: %v", err)
			continue
		}
		for _, r := range results {
			d.complete(r.ID, r.Res)
		}
	}
}

func (d *Driver) complete(id uint64, res int32) {
	d.regsMu.Lock()
	reg, ok := d.regs[id]
	if !ok {
		// Already cancelled and retired before this completion arrived.
		d.regsMu.Unlock()
		return
	}
	switch reg.state {
	case stateWaiting:
		reg.state = stateDone
		reg.res = res
		waker := reg.waker
		elapsed := time.Since(reg.submittedAt)
		d.regsMu.Unlock()
		d.m.RecordComplete(elapsed, res < 0)
		if waker != nil {
			waker.Wake()
		}
	case stateCancelling:
		delete(d.regs, id)
		d.regsMu.Unlock()
	case stateDone:
		d.regsMu.Unlock()
		panic("driver: bug: double completion")
	default:
		d.regsMu.Unlock()
	}
}

// poll checks id's registration without blocking. ready is false if the
// operation is still waiting; res carries the final result once ready.
func (d *Driver) poll(id uint64, waker task.Waker) (res int32, ready bool) {
	d.regsMu.Lock()
	defer d.regsMu.Unlock()

	reg, exists := d.regs[id]
	if !exists {
		panic("corio: progress handle already consumed")
	}
	switch reg.state {
	case stateDone:
		delete(d.regs, id)
		return reg.res, true
	case stateWaiting:
		reg.waker = &waker
		return 0, false
	default:
		panic("driver: bug: poll on cancelling registration")
	}
}

// cancel marks id's registration as cancelling (if still waiting) or
// retires it immediately (if already done and nobody ever called Wait).
func (d *Driver) cancel(id uint64) {
	d.regsMu.Lock()
	defer d.regsMu.Unlock()

	reg, ok := d.regs[id]
	if !ok {
		return
	}
	switch reg.state {
	case stateWaiting:
		reg.state = stateCancelling
	case stateDone:
		delete(d.regs, id)
	}
}

// Shutdown stops accepting new submissions, wakes the reaper, and waits
// for it to exit. It is idempotent.
func (d *Driver) Shutdown() {
	if !d.shutdown.CompareAndSwap(false, true) {
		return
	}
	d.ring.Wake()
	d.reaperWG.Wait()
	_ = d.ring.Close()
}

var (
	defaultMu     sync.Mutex
	defaultDriver *Driver
)

// Init idempotently constructs the process-wide default Driver from cfg.
// Subsequent calls are no-ops; use Get to retrieve the instance any call
// created. It panics if no backend (io_uring or the blocking-pool poller)
// can be constructed at all, since a process with neither has no way to
// run this package's operations.
func Init(cfg Config) *Driver {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultDriver == nil {
		ring, err := newPlatformRing(cfg)
		if err != nil {
			panic("driver: no usable backend: " + err.Error())
		}
		defaultDriver = newDriver(ring)
	}
	return defaultDriver
}

// Get returns the process-wide default Driver, initializing it with
// DefaultConfig on first use.
func Get() *Driver {
	defaultMu.Lock()
	if defaultDriver != nil {
		d := defaultDriver
		defaultMu.Unlock()
		return d
	}
	defaultMu.Unlock()
	return Init(DefaultConfig())
}

// Shutdown tears down the process-wide default Driver, if one exists.
func Shutdown() {
	defaultMu.Lock()
	d := defaultDriver
	defaultDriver = nil
	defaultMu.Unlock()
	if d != nil {
		d.Shutdown()
	}
}

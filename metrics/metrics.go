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

// Package metrics carries the atomic-counter-plus-latency-histogram
// instrumentation shared by the I/O driver and the task executors. It is
// deliberately dependency-free (sync/atomic and time only) so it imposes no
// cost on callers who never read a Snapshot.
package metrics

import (
	"sync/atomic"
	"time"
)

// latencyBuckets are the histogram bucket upper bounds in nanoseconds,
// logarithmically spaced from 1us to 10s.
var latencyBuckets = [...]uint64{
	1_000,
	10_000,
	100_000,
	1_000_000,
	10_000_000,
	100_000_000,
	1_000_000_000,
	10_000_000_000,
}

const numBuckets = len(latencyBuckets)

// histogram is the cumulative-bucket latency tracker shared by Driver and
// Executor below; bucket[i] holds the count of samples with latency <=
// latencyBuckets[i].
type histogram struct {
	total   atomic.Uint64
	count   atomic.Uint64
	buckets [numBuckets]atomic.Uint64
}

func (h *histogram) record(latencyNs uint64) {
	h.total.Add(latencyNs)
	h.count.Add(1)
	for i, b := range latencyBuckets {
		if latencyNs <= b {
			h.buckets[i].Add(1)
		}
	}
}

// percentile estimates the latency at p (0.0-1.0) by linear interpolation
// across the cumulative buckets.
func (h *histogram) percentile(p float64) uint64 {
	total := h.count.Load()
	if total == 0 {
		return 0
	}
	target := uint64(float64(total) * p)
	var prevBound, prevCount uint64
	for i, bound := range latencyBuckets {
		c := h.buckets[i].Load()
		if c >= target {
			if c == prevCount {
				return bound
			}
			frac := float64(target-prevCount) / float64(c-prevCount)
			return prevBound + uint64(frac*float64(bound-prevBound))
		}
		prevBound, prevCount = bound, c
	}
	return latencyBuckets[numBuckets-1]
}

// Driver holds one I/O driver's counters: how many operations were
// submitted, how many completed (split success/error), how deep the
// in-flight registration set has gotten, and how long completions took.
// Grounded on the per-device Metrics struct of the ublk block driver this
// corpus carries, narrowed from its read/write/discard/flush-specific
// counters to the single Operation abstraction this driver submits.
type Driver struct {
	submitted  atomic.Uint64
	completed  atomic.Uint64
	errored    atomic.Uint64
	queueDepth atomic.Int64
	maxDepth   atomic.Int64
	latency    histogram
}

// RecordSubmit is called once per successful Driver.Submit.
func (m *Driver) RecordSubmit() {
	m.submitted.Add(1)
	depth := m.queueDepth.Add(1)
	for {
		cur := m.maxDepth.Load()
		if depth <= cur || m.maxDepth.CompareAndSwap(cur, depth) {
			break
		}
	}
}

// RecordComplete is called once per completion the reaper delivers, with
// the wall time elapsed since the matching RecordSubmit and whether the
// kernel (or fallback worker) reported a negative-errno result.
func (m *Driver) RecordComplete(latency time.Duration, failed bool) {
	m.completed.Add(1)
	if failed {
		m.errored.Add(1)
	}
	m.queueDepth.Add(-1)
	m.latency.record(uint64(latency.Nanoseconds()))
}

// DriverSnapshot is a point-in-time read of a Driver's counters.
type DriverSnapshot struct {
	Submitted     uint64
	Completed     uint64
	Errored       uint64
	InFlight      int64
	MaxQueueDepth int64
	AvgLatency    time.Duration
	P50Latency    time.Duration
	P99Latency    time.Duration
}

// Snapshot reads m's current counters without resetting them.
func (m *Driver) Snapshot() DriverSnapshot {
	count := m.latency.count.Load()
	var avg time.Duration
	if count > 0 {
		avg = time.Duration(m.latency.total.Load() / count)
	}
	return DriverSnapshot{
		Submitted:     m.submitted.Load(),
		Completed:     m.completed.Load(),
		Errored:       m.errored.Load(),
		InFlight:      m.queueDepth.Load(),
		MaxQueueDepth: m.maxDepth.Load(),
		AvgLatency:    avg,
		P50Latency:    time.Duration(m.latency.percentile(0.50)),
		P99Latency:    time.Duration(m.latency.percentile(0.99)),
	}
}

// Executor holds one executor's counters: tasks scheduled onto it,
// completed (split clean/panicked), its current runnable-queue depth, and
// how long a task sat between Spawn and first poll ("schedule latency").
// Same grounding as Driver above, applied to task.Task instead of I/O ops.
type Executor struct {
	scheduled     atomic.Uint64
	completed     atomic.Uint64
	panicked      atomic.Uint64
	queueDepth    atomic.Int64
	maxDepth      atomic.Int64
	scheduleDelay histogram
}

// RecordScheduled is called once per task handed to an executor through
// Spawn; moving a task between queues (injector batches, sibling steals)
// does not record again.
func (m *Executor) RecordScheduled() {
	m.scheduled.Add(1)
	depth := m.queueDepth.Add(1)
	for {
		cur := m.maxDepth.Load()
		if depth <= cur || m.maxDepth.CompareAndSwap(cur, depth) {
			break
		}
	}
}

// RecordRun is called once a worker goroutine has finished running a
// task, with the wall time from RecordScheduled to the start of the run
// and whether the task body panicked.
func (m *Executor) RecordRun(scheduleDelay time.Duration, panicked bool) {
	m.completed.Add(1)
	if panicked {
		m.panicked.Add(1)
	}
	m.queueDepth.Add(-1)
	m.scheduleDelay.record(uint64(scheduleDelay.Nanoseconds()))
}

// ExecutorSnapshot is a point-in-time read of an Executor's counters.
type ExecutorSnapshot struct {
	Scheduled         uint64
	Completed         uint64
	Panicked          uint64
	QueueDepth        int64
	MaxQueueDepth     int64
	AvgScheduleDelay  time.Duration
	P99ScheduleDelay  time.Duration
}

// Snapshot reads m's current counters without resetting them.
func (m *Executor) Snapshot() ExecutorSnapshot {
	count := m.scheduleDelay.count.Load()
	var avg time.Duration
	if count > 0 {
		avg = time.Duration(m.scheduleDelay.total.Load() / count)
	}
	return ExecutorSnapshot{
		Scheduled:        m.scheduled.Load(),
		Completed:        m.completed.Load(),
		Panicked:         m.panicked.Load(),
		QueueDepth:       m.queueDepth.Load(),
		MaxQueueDepth:    m.maxDepth.Load(),
		AvgScheduleDelay: avg,
		P99ScheduleDelay: time.Duration(m.scheduleDelay.percentile(0.99)),
	}
}

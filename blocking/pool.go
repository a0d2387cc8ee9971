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

package blocking

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/corio/corio/internal/rtlog"
	"github.com/corio/corio/task"
)

type queued struct {
	ctx context.Context
	t   *task.Task
}

// Pool is an elastic goroutine pool: workers spin up as the task queue
// backs up and exit once they have lived longer than WorkerMaxAge, instead of the executor
// package's fixed worker count.
type Pool struct {
	name string
	log  *rtlog.Logger

	workers atomic.Int32
	maxIdle int32
	maxAge  int64 // milliseconds

	tasks     chan queued
	unixMilli atomic.Int64
}

// NewPool creates a Pool per cfg. A zero cfg.MaxIdleWorkers/QueueCapacity
// falls back to DefaultConfig's values.
func NewPool(name string, cfg Config) *Pool {
	def := DefaultConfig()
	if cfg.MaxIdleWorkers <= 0 {
		cfg.MaxIdleWorkers = def.MaxIdleWorkers
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = def.QueueCapacity
	}
	if cfg.WorkerMaxAge <= 0 {
		cfg.WorkerMaxAge = def.WorkerMaxAge
	}
	return &Pool{
		name:    name,
		log:     rtlog.Default().With("blocking." + name),
		tasks:   make(chan queued, cfg.QueueCapacity),
		maxIdle: int32(cfg.MaxIdleWorkers),
		maxAge:  cfg.WorkerMaxAge.Milliseconds(),
	}
}

// CurrentWorkers reports the pool's live goroutine count.
func (p *Pool) CurrentWorkers() int {
	return int(p.workers.Load())
}

// submit implements executor's submitter-shaped contract so blocking.Spawn
// can share the same free-function pattern as executor.Spawn.
func (p *Pool) submit(t *task.Task) {
	q := queued{ctx: context.Background(), t: t}
	select {
	case p.tasks <- q:
	default:
		// Queue is full: run unpooled rather than make the caller wait on
		// a pool that is plainly saturated.
		go p.runTask(q)
		return
	}
	if len(p.tasks) == 0 {
		return
	}
	go p.spinUpWorker()
}

func (p *Pool) runTask(q queued) {
	q.t.Run()
	if v, panicked := q.t.Panicked(); panicked {
		p.log.Warnf("pool %s: task %d panicked: %v", p.name, q.t.ID(), v)
	}
}

func (p *Pool) spinUpWorker() {
	id := p.workers.Add(1)
	defer p.workers.Add(-1)

	if id > p.maxIdle {
		for {
			select {
			case q := <-p.tasks:
				p.runTask(q)
			default:
				return
			}
		}
	}

	createdAt := time.Now().UnixMilli()
	for q := range p.tasks {
		p.runTask(q)

		now := p.unixMilli.Load()
		if now == 0 {
			now = time.Now().UnixMilli()
			if p.unixMilli.CompareAndSwap(0, now) {
				go p.runAgeTicker()
			}
		}
		if now-createdAt > p.maxAge {
			return
		}
	}
}

func newNoopQueued() queued {
	return queued{ctx: context.Background(), t: task.New(context.Background(), func(context.Context) {})}
}

// runAgeTicker periodically nudges every worker with a noop task so idle
// workers past MaxAge notice and exit, mirroring the teacher pool's
// ticker-driven aging instead of per-worker timers.
func (p *Pool) runAgeTicker() {
	defer p.unixMilli.Store(0)

	d := time.Duration(p.maxAge) * time.Millisecond / 100
	if d < time.Millisecond {
		d = time.Millisecond
	}
	t := time.NewTicker(d)
	defer t.Stop()

	for now := range t.C {
		if p.CurrentWorkers() == 0 {
			return
		}
		p.unixMilli.Store(now.UnixMilli())
		p.tasks <- newNoopQueued()
	}
}

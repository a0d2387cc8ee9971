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

//go:build linux

package driver

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/corio/corio/blocking"
	"github.com/corio/corio/internal/epoll"
)

// pollerRing is the fallback Ring used when io_uring_setup fails (old
// kernel, seccomp profile without io_uring, missing
// IORING_FEAT_SINGLE_MMAP). It keeps a real epoll instance alive for
// future fd-readiness-driven operations, but today every operation reaches
// this backend through its RunBlockingOperation path, dispatched onto the
// blocking package's pool the same way gaio's watcher loop hands a
// ready fd off to worker goroutines rather than servicing it inline.
type pollerRing struct {
	poller *epoll.Poller
	pool   *blocking.Pool

	cq     chan CQEResult
	wake   chan struct{}
	closed atomic.Bool
	wg     sync.WaitGroup
}

func newPollerRing(cfg Config) (Ring, error) {
	p, err := epoll.New()
	if err != nil {
		return nil, err
	}
	entries := cfg.Entries
	if entries == 0 {
		entries = DefaultConfig().Entries
	}
	return &pollerRing{
		poller: p,
		pool:   blocking.NewPool("driver-fallback", blocking.DefaultConfig()),
		cq:     make(chan CQEResult, entries),
		wake:   make(chan struct{}, 1),
	}, nil
}

func (pr *pollerRing) Submit(id uint64, op Operation) error {
	if pr.closed.Load() {
		return ErrDriverShutdown
	}
	rb, ok := op.(RunBlockingOperation)
	if !ok {
		pr.deliver(CQEResult{ID: id, Res: negErrno(ErrUnsupportedOp)})
		return nil
	}

	handle := blocking.Spawn(pr.pool, context.Background(), func(ctx context.Context) CQEResult {
		res, err := rb.RunBlocking(ctx)
		if err != nil {
			res = negErrno(err)
		}
		return CQEResult{ID: id, Res: res}
	})

	pr.wg.Add(1)
	go func() {
		defer pr.wg.Done()
		result, err := handle.Wait(context.Background())
		if err != nil {
			result = CQEResult{ID: id, Res: negErrno(err)}
		}
		pr.deliver(result)
	}()
	return nil
}

func (pr *pollerRing) deliver(r CQEResult) {
	if pr.closed.Load() {
		return
	}
	pr.cq <- r
	select {
	case pr.wake <- struct{}{}:
	default:
	}
}

func (pr *pollerRing) Wait() ([]CQEResult, error) {
	select {
	case r := <-pr.cq:
		out := []CQEResult{r}
		for {
			select {
			case r := <-pr.cq:
				out = append(out, r)
				continue
			default:
			}
			break
		}
		return out, nil
	case <-pr.wake:
		return nil, nil
	}
}

// Wake unblocks a reaper parked in Wait with no pending completions, used
// during shutdown.
func (pr *pollerRing) Wake() {
	select {
	case pr.wake <- struct{}{}:
	default:
	}
}

func (pr *pollerRing) Close() error {
	pr.closed.Store(true)
	pr.wg.Wait()
	return pr.poller.Close()
}

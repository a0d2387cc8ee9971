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
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRing is an in-memory Ring used to exercise Driver/Progress without a
// real kernel io_uring instance. Submit immediately queues a completion
// unless the test holds it back via hold.
type fakeRing struct {
	mu      sync.Mutex
	pending []CQEResult
	wake    chan struct{}
	closed  bool

	hold bool // when true, Submit records the op but doesn't complete it
	held map[uint64]Operation
}

func newFakeRing() *fakeRing {
	return &fakeRing{wake: make(chan struct{}, 1), held: make(map[uint64]Operation)}
}

func (f *fakeRing) Submit(id uint64, op Operation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hold {
		f.held[id] = op
		return nil
	}
	f.pending = append(f.pending, CQEResult{ID: id, Res: 42})
	select {
	case f.wake <- struct{}{}:
	default:
	}
	return nil
}

// complete manually finishes a held operation with res, simulating a
// delayed kernel completion.
func (f *fakeRing) complete(id uint64, res int32) {
	f.mu.Lock()
	delete(f.held, id)
	f.pending = append(f.pending, CQEResult{ID: id, Res: res})
	f.mu.Unlock()
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

func (f *fakeRing) Wait() ([]CQEResult, error) {
	for {
		f.mu.Lock()
		if len(f.pending) > 0 {
			out := f.pending
			f.pending = nil
			f.mu.Unlock()
			return out, nil
		}
		if f.closed {
			f.mu.Unlock()
			return nil, nil
		}
		f.mu.Unlock()
		<-f.wake
	}
}

func (f *fakeRing) Wake() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

func (f *fakeRing) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.Wake()
	return nil
}

// noopOp is a minimal Operation whose ExtractResult just forwards the raw
// completion result cast to int.
type noopOp struct{}

func (noopOp) Opcode() uint8        { return opUnsupported }
func (noopOp) Build(sqe *SQE)       {}
func (noopOp) ExtractResult(res int32) (any, error) {
	n, err := checkRes("noop", res)
	if err != nil {
		return nil, err
	}
	return int(n), nil
}

func TestSubmitWaitReturnsExtractedResult(t *testing.T) {
	ring := newFakeRing()
	d := newDriver(ring)
	defer d.Shutdown()

	p, err := Submit[int](d, noopOp{})
	require.NoError(t, err)

	v, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestSubmitWaitSurfacesOpError(t *testing.T) {
	ring := newFakeRing()
	ring.hold = true
	d := newDriver(ring)
	defer d.Shutdown()

	p, err := Submit[int](d, noopOp{})
	require.NoError(t, err)

	var id uint64
	for k := range ring.held {
		id = k
	}
	ring.complete(id, -2) // -ENOENT

	_, err = p.Wait(context.Background())
	require.Error(t, err)
	var opErr *OpError
	assert.ErrorAs(t, err, &opErr)
}

func TestWaitBlocksUntilLateCompletion(t *testing.T) {
	ring := newFakeRing()
	ring.hold = true
	d := newDriver(ring)
	defer d.Shutdown()

	p, err := Submit[int](d, noopOp{})
	require.NoError(t, err)

	var id uint64
	for k := range ring.held {
		id = k
	}

	done := make(chan struct{})
	go func() {
		v, werr := p.Wait(context.Background())
		assert.NoError(t, werr)
		assert.Equal(t, 7, v)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	ring.complete(id, 7)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait never returned after completion")
	}
}

func TestWaitReturnsContextErrorOnCancel(t *testing.T) {
	ring := newFakeRing()
	ring.hold = true
	d := newDriver(ring)
	defer d.Shutdown()

	p, err := Submit[int](d, noopOp{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCancelThenLateCompletionIsRetiredSilently(t *testing.T) {
	ring := newFakeRing()
	ring.hold = true
	d := newDriver(ring)
	defer d.Shutdown()

	p, err := Submit[int](d, noopOp{})
	require.NoError(t, err)

	var id uint64
	for k := range ring.held {
		id = k
	}

	p.Cancel()
	// Completing after cancel must not panic (double-completion guard only
	// fires for a second completion of the SAME still-registered id).
	ring.complete(id, 1)
	time.Sleep(10 * time.Millisecond)
}

func TestSubmitAfterShutdownFails(t *testing.T) {
	ring := newFakeRing()
	d := newDriver(ring)
	d.Shutdown()

	_, err := Submit[int](d, noopOp{})
	assert.ErrorIs(t, err, ErrDriverShutdown)
}

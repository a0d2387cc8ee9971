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
	"syscall"

	"github.com/corio/corio/blocking"
	"github.com/corio/corio/internal/iouring"
)

// wakeUserData is the sentinel UserData value used by Wake's NOP SQE. It is
// never handed out by the id allocator (which starts at 1), so the reaper
// can tell a wake-up completion apart from a real operation's completion.
const wakeUserData = 0

// iouringRing is the Ring implementation backed by a real Linux io_uring
// instance. Completion processing is single-threaded from the driver's
// reaper goroutine; Submit is called from arbitrary goroutines
// and serializes on submitMu, mirroring how the deleted internal/iouring
// event loop batched submissions behind one producer lock before entering
// the kernel.
//
// Not every Operation the catalog hands this backend has a kernel opcode to
// submit: connect/bind/listen/socket/truncate are modeled with the
// opUnsupported sentinel (see result.go), and a handful of real opcodes may
// not exist on an older kernel even though io_uring_setup itself succeeded.
// Submit routes both cases onto fallbackPool exactly the way pollerRing
// does, per spec.md §4.1's "fallback path is a per-operation decision, not
// a whole-backend one" — this ring only ever swaps backend wholesale when
// io_uring_setup fails outright (see newPlatformRing).
type iouringRing struct {
	ring      *iouring.IoUring
	submitMu  sync.Mutex
	supported [256]bool

	fallbackPool *blocking.Pool
	fallbackCQ   chan CQEResult
	fallbackWG   sync.WaitGroup
}

func newIouringRing(cfg Config) (Ring, error) {
	entries := cfg.Entries
	if entries == 0 {
		entries = DefaultConfig().Entries
	}
	r, err := iouring.NewIoUring(entries)
	if err != nil {
		return nil, err
	}
	ir := &iouringRing{
		ring:         r,
		fallbackPool: blocking.NewPool("driver-iouring-fallback", blocking.DefaultConfig()),
		fallbackCQ:   make(chan CQEResult, entries),
	}
	ir.probeOpcodes()
	return ir, nil
}

// probeOpcodes marks the opcodes this kernel is known to accept. Lacking a
// registered IORING_REGISTER_PROBE round trip, this conservatively enables
// the handful of opcodes every kernel new enough to reach
// IORING_FEAT_SINGLE_MMAP (5.4+) also supports, plus the rarer opcodes this
// catalog actually builds SQEs for (openat, tee, shutdown) so Submit's
// Supports gate doesn't force those onto the fallback pool unnecessarily —
// if the running kernel truly lacks one of them despite the feature check,
// it still just surfaces -EINVAL through the normal completion-error path.
func (ir *iouringRing) probeOpcodes() {
	for _, op := range []uint8{
		iouring.IORING_OP_NOP,
		iouring.IORING_OP_READ,
		iouring.IORING_OP_WRITE,
		iouring.IORING_OP_RECV,
		iouring.IORING_OP_SEND,
		iouring.IORING_OP_ACCEPT,
		iouring.IORING_OP_CLOSE,
		iouring.IORING_OP_FSYNC,
		iouring.IORING_OP_OPENAT,
		iouring.IORING_OP_TEE,
		iouring.IORING_OP_SHUTDOWN,
	} {
		ir.supported[op] = true
	}
}

// Supports reports whether opcode is known to be handled directly by this
// ring, as opposed to needing the RunBlocking fallback.
func (ir *iouringRing) Supports(opcode uint8) bool {
	return ir.supported[opcode]
}

func (ir *iouringRing) Submit(id uint64, op Operation) error {
	if op.Opcode() == opUnsupported || !ir.Supports(op.Opcode()) {
		return ir.submitFallback(id, op)
	}

	ir.submitMu.Lock()
	defer ir.submitMu.Unlock()

	sqe := ir.ring.PeekSQE(true)
	if sqe == nil {
		if _, errno := ir.ring.Submit(); errno != 0 {
			return &OpError{Op: "submit", Errno: errno}
		}
		sqe = ir.ring.PeekSQE(true)
		if sqe == nil {
			return ErrDriverShutdown
		}
	}

	view := SQE{}
	op.Build(&view)

	sqe.Opcode = op.Opcode()
	sqe.Fd = view.Fd
	sqe.Addr = uint64(view.Addr)
	sqe.Len = view.Len
	sqe.Off = view.Off
	sqe.OpcodeFlags = view.OpcodeFlags
	sqe.UserData = id

	ir.ring.AdvanceSQ()
	_, errno := ir.ring.Submit()
	if errno != 0 {
		return &OpError{Op: "submit", Errno: errno}
	}
	return nil
}

// submitFallback dispatches op onto the blocking pool when it has no
// kernel opcode to ride (opUnsupported) or the running kernel hasn't
// probed as supporting its opcode, the same dispatch ring_poller_linux.go
// uses for its whole backend. The completion is delivered through
// fallbackCQ and the reaper is nudged via a real NOP completion so a
// WaitCQE blocked on the kernel ring notices it promptly.
func (ir *iouringRing) submitFallback(id uint64, op Operation) error {
	rb, ok := op.(RunBlockingOperation)
	if !ok {
		ir.deliverFallback(CQEResult{ID: id, Res: negErrno(ErrUnsupportedOp)})
		return nil
	}

	handle := blocking.Spawn(ir.fallbackPool, context.Background(), func(ctx context.Context) CQEResult {
		res, err := rb.RunBlocking(ctx)
		if err != nil {
			res = negErrno(err)
		}
		return CQEResult{ID: id, Res: res}
	})

	ir.fallbackWG.Add(1)
	go func() {
		defer ir.fallbackWG.Done()
		result, err := handle.Wait(context.Background())
		if err != nil {
			result = CQEResult{ID: id, Res: negErrno(err)}
		}
		ir.deliverFallback(result)
	}()
	return nil
}

func (ir *iouringRing) deliverFallback(r CQEResult) {
	ir.fallbackCQ <- r
	ir.Wake()
}

func (ir *iouringRing) Wait() ([]CQEResult, error) {
	cqe, err := ir.ring.WaitCQE()
	if err != nil {
		return nil, err
	}

	var out []CQEResult
	for cqe != nil {
		if cqe.UserData != wakeUserData {
			out = append(out, CQEResult{ID: cqe.UserData, Res: cqe.Res})
		}
		ir.ring.AdvanceCQ()
		cqe = ir.ring.PeekCQE()
	}

	for {
		select {
		case r := <-ir.fallbackCQ:
			out = append(out, r)
			continue
		default:
		}
		break
	}
	return out, nil
}

// Wake submits a NOP so a reaper blocked in WaitCQE's io_uring_enter
// returns with a completion to drain, the same technique an eventfd-backed
// wakeup serves for epoll.
func (ir *iouringRing) Wake() {
	ir.submitMu.Lock()
	defer ir.submitMu.Unlock()

	sqe := ir.ring.PeekSQE(true)
	if sqe == nil {
		ir.ring.Submit()
		sqe = ir.ring.PeekSQE(true)
		if sqe == nil {
			return
		}
	}
	sqe.Opcode = iouring.IORING_OP_NOP
	sqe.UserData = wakeUserData
	ir.ring.AdvanceSQ()
	ir.ring.Submit()
}

func (ir *iouringRing) Close() error {
	ir.fallbackWG.Wait()
	return ir.ring.Close()
}

// newPlatformRing builds the best available Ring for this process: a real
// io_uring instance when the kernel supports it, falling back to the epoll
// poller (see ring_poller_linux.go) when io_uring_setup fails (container
// seccomp profile, kernel < 5.4, IORING_FEAT_SINGLE_MMAP missing).
func newPlatformRing(cfg Config) (Ring, error) {
	ring, err := newIouringRing(cfg)
	if err == nil {
		return ring, nil
	}
	if poller, pollerErr := newPollerRing(cfg); pollerErr == nil {
		return poller, nil
	}
	return nil, &OpError{Op: "io_uring_setup", Errno: syscall.ENOSYS, Inner: err}
}

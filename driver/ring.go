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

// CQEResult is one completion: the id it was submitted under (an SQE's
// UserData) and the kernel's raw result (bytes transferred, or a negative
// errno).
type CQEResult struct {
	ID  uint64
	Res int32
}

// Ring abstracts the two backends driver.go drives: the linux io_uring
// ring, and the poller ring used when io_uring is unavailable, which runs
// every operation's RunBlocking on the blocking pool. Opcodes the probed
// io_uring instance doesn't support go to the io_uring ring's own
// fallback pool, not to the poller ring. Keeping
// driver.go behind this interface rather than a build-tag'd concrete type
// is grounded on ehrlich-b-go-ublk/internal/uring/interface.go's
// Ring/stub-Ring split — a real-vs-fallback interface, selected once at
// Init time by the build tags on each backend file, never re-chosen at
// runtime ("no hot reconfiguration after first use").
type Ring interface {
	// Submit enqueues op under id and makes it visible to the kernel (or,
	// for a fallback, dispatches op's RunBlocking onto a blocking pool). An
	// op with neither a ring opcode nor RunBlocking is not rejected here:
	// it completes with negErrno(ErrUnsupportedOp), which is -EIO.
	Submit(id uint64, op Operation) error
	// Wait blocks until at least one completion is ready and returns every
	// completion currently available. It returns early (with a possibly
	// empty slice) when Wake is called from another goroutine.
	Wait() ([]CQEResult, error)
	// Wake unblocks a goroutine currently parked in Wait, used by
	// Shutdown to let the reaper notice the shutdown flag promptly.
	Wake()
	// Close releases the backend's resources. Submit/Wait must not be
	// called after Close.
	Close() error
}

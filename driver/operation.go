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

import "context"

// Operation is one submittable unit of work: an opcode plus enough state
// to build the ring's submission entry and later turn its raw result into
// a typed value. Every entry in the operation catalog (read.go, write.go,
// accept.go, ...) implements this.
//
// Dynamic dispatch through this interface is the Go stand-in for the
// "enum of operations or vtable" either-is-fine call in the original
// design: a vtable is the idiomatic mechanism in Go, where an enum would
// need a type switch per opcode at every call site instead.
type Operation interface {
	// Opcode returns the io_uring opcode this operation submits as.
	Opcode() uint8
	// Build populates a submission entry's operation-specific fields
	// (fd, address, length, offset, flags). sqe is an *SQE so this
	// package's two backends (ring and poller) can share one Operation
	// catalog.
	Build(sqe *SQE)
	// ExtractResult turns a raw completion result (bytes transferred, or
	// a negative errno) into the operation's typed outcome.
	ExtractResult(res int32) (any, error)
}

// RunBlockingOperation is implemented by operations that can still make
// progress through the blocking pool when the probed backend doesn't
// support their opcode. Operations that don't implement it fail fast with
// ErrUnsupportedOp instead of silently degrading to a worse backend.
type RunBlockingOperation interface {
	Operation
	RunBlocking(ctx context.Context) (int32, error)
}

// SQE is the backend-neutral view of a submission entry an Operation.Build
// populates. Both the io_uring ring backend and the poller fallback map
// these fields onto their own wire shapes.
type SQE struct {
	Fd          int32
	Addr        uintptr
	Len         uint32
	Off         uint64
	OpcodeFlags uint32
}

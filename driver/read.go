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
	"unsafe"

	"github.com/corio/corio/internal/iouring"
)

// ReadOp reads into Buf from Fd at the explicit byte Offset (0 is the
// start of the file, on the ring and the pread fallback alike); callers
// wanting "current position" semantics for a stream socket should use
// Recv instead.
type ReadOp struct {
	Fd     int32
	Buf    []byte
	Offset uint64
}

// NewRead validates buf's length and returns a ready-to-submit ReadOp.
func NewRead(fd int32, buf []byte, offset uint64) (*ReadOp, error) {
	if err := checkLen(buf); err != nil {
		return nil, err
	}
	return &ReadOp{Fd: fd, Buf: buf, Offset: offset}, nil
}

func (r *ReadOp) Opcode() uint8 { return iouring.IORING_OP_READ }

func (r *ReadOp) Build(sqe *SQE) {
	sqe.Fd = r.Fd
	sqe.Off = r.Offset
	sqe.Len = uint32(len(r.Buf))
	if len(r.Buf) > 0 {
		sqe.Addr = uintptr(unsafe.Pointer(&r.Buf[0]))
	}
}

func (r *ReadOp) ExtractResult(res int32) (any, error) {
	n, err := checkRes("read", res)
	if err != nil {
		return nil, err
	}
	return r.Buf[:n], nil
}

func (r *ReadOp) RunBlocking(ctx context.Context) (int32, error) {
	n, err := syscallPread(r.Fd, r.Buf, int64(r.Offset))
	if err != nil {
		return negErrno(err), nil
	}
	return int32(n), nil
}

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
	"syscall"
	"unsafe"

	"github.com/corio/corio/internal/iouring"
)

// RecvOp receives into Buf from a connected/accepted socket Fd. NewRecv
// fills a nil buf from the driver's buffer pool using its size argument,
// and the caller takes ownership of the returned slice (Free it when
// done). The Size field is not read or set by this package.
type RecvOp struct {
	Fd   int32
	Buf  []byte
	Size int
}

// NewRecv returns a RecvOp, allocating a pooled buffer of size bytes if
// buf is nil.
func NewRecv(fd int32, buf []byte, size int) (*RecvOp, error) {
	if buf == nil {
		buf = Malloc(size)
	}
	if err := checkLen(buf); err != nil {
		return nil, err
	}
	return &RecvOp{Fd: fd, Buf: buf}, nil
}

func (r *RecvOp) Opcode() uint8 { return iouring.IORING_OP_RECV }

func (r *RecvOp) Build(sqe *SQE) {
	sqe.Fd = r.Fd
	sqe.Len = uint32(len(r.Buf))
	if len(r.Buf) > 0 {
		sqe.Addr = uintptr(unsafe.Pointer(&r.Buf[0]))
	}
}

func (r *RecvOp) ExtractResult(res int32) (any, error) {
	n, err := checkRes("recv", res)
	if err != nil {
		return nil, err
	}
	return r.Buf[:n], nil
}

func (r *RecvOp) RunBlocking(ctx context.Context) (int32, error) {
	n, _, err := syscall.Recvfrom(int(r.Fd), r.Buf, 0)
	if err != nil {
		return negErrno(err), nil
	}
	return int32(n), nil
}

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

// WriteOp writes Buf to Fd at Offset.
type WriteOp struct {
	Fd     int32
	Buf    []byte
	Offset uint64
}

// NewWrite validates buf's length and returns a ready-to-submit WriteOp.
func NewWrite(fd int32, buf []byte, offset uint64) (*WriteOp, error) {
	if err := checkLen(buf); err != nil {
		return nil, err
	}
	return &WriteOp{Fd: fd, Buf: buf, Offset: offset}, nil
}

func (w *WriteOp) Opcode() uint8 { return iouring.IORING_OP_WRITE }

func (w *WriteOp) Build(sqe *SQE) {
	sqe.Fd = w.Fd
	sqe.Off = w.Offset
	sqe.Len = uint32(len(w.Buf))
	if len(w.Buf) > 0 {
		sqe.Addr = uintptr(unsafe.Pointer(&w.Buf[0]))
	}
}

func (w *WriteOp) ExtractResult(res int32) (any, error) {
	n, err := checkRes("write", res)
	if err != nil {
		return nil, err
	}
	return int(n), nil
}

func (w *WriteOp) RunBlocking(ctx context.Context) (int32, error) {
	n, err := syscallPwrite(w.Fd, w.Buf, int64(w.Offset))
	if err != nil {
		return negErrno(err), nil
	}
	return int32(n), nil
}

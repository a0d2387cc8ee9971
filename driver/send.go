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

// SendOp sends Buf on a connected/accepted socket Fd.
type SendOp struct {
	Fd  int32
	Buf []byte
}

// NewSend validates buf's length and returns a ready-to-submit SendOp.
func NewSend(fd int32, buf []byte) (*SendOp, error) {
	if err := checkLen(buf); err != nil {
		return nil, err
	}
	return &SendOp{Fd: fd, Buf: buf}, nil
}

func (s *SendOp) Opcode() uint8 { return iouring.IORING_OP_SEND }

func (s *SendOp) Build(sqe *SQE) {
	sqe.Fd = s.Fd
	sqe.Len = uint32(len(s.Buf))
	if len(s.Buf) > 0 {
		sqe.Addr = uintptr(unsafe.Pointer(&s.Buf[0]))
	}
}

func (s *SendOp) ExtractResult(res int32) (any, error) {
	n, err := checkRes("send", res)
	if err != nil {
		return nil, err
	}
	return int(n), nil
}

func (s *SendOp) RunBlocking(ctx context.Context) (int32, error) {
	err := syscall.Sendto(int(s.Fd), s.Buf, 0, nil)
	if err != nil {
		return negErrno(err), nil
	}
	return int32(len(s.Buf)), nil
}

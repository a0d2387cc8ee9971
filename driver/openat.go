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

// OpenatOp opens Path relative to Dirfd (syscall.AT_FDCWD for the process
// working directory).
type OpenatOp struct {
	Dirfd int32
	Path  string
	Flags int
	Mode  uint32

	pathBytes []byte // NUL-terminated, kept alive for the ring backend
}

func NewOpenat(dirfd int32, path string, flags int, mode uint32) *OpenatOp {
	b := make([]byte, len(path)+1)
	copy(b, path)
	return &OpenatOp{Dirfd: dirfd, Path: path, Flags: flags, Mode: mode, pathBytes: b}
}

func (o *OpenatOp) Opcode() uint8 { return iouring.IORING_OP_OPENAT }

func (o *OpenatOp) Build(sqe *SQE) {
	sqe.Fd = o.Dirfd
	sqe.Addr = uintptr(unsafe.Pointer(&o.pathBytes[0]))
	sqe.Len = o.Mode
	sqe.OpcodeFlags = uint32(o.Flags)
}

func (o *OpenatOp) ExtractResult(res int32) (any, error) {
	n, err := checkRes("openat", res)
	if err != nil {
		return nil, err
	}
	return int32(n), nil
}

func (o *OpenatOp) RunBlocking(ctx context.Context) (int32, error) {
	fd, err := syscall.Openat(int(o.Dirfd), o.Path, o.Flags, o.Mode)
	if err != nil {
		return negErrno(err), nil
	}
	return int32(fd), nil
}

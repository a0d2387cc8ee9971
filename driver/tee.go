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

	"github.com/corio/corio/internal/iouring"
)

// TeeOp duplicates up to Len bytes from the pipe FdIn into the pipe FdOut
// without consuming the source, mirroring tee(2). It has no portable
// blocking-syscall equivalent, so it is linux/io_uring-only: RunBlocking
// always reports ErrUnsupportedOp.
type TeeOp struct {
	FdIn  int32
	FdOut int32
	Len   uint32
}

func NewTee(fdIn, fdOut int32, length uint32) *TeeOp {
	return &TeeOp{FdIn: fdIn, FdOut: fdOut, Len: length}
}

func (t *TeeOp) Opcode() uint8 { return iouring.IORING_OP_TEE }

func (t *TeeOp) Build(sqe *SQE) {
	sqe.Fd = t.FdIn
	sqe.Off = uint64(t.FdOut)
	sqe.Len = t.Len
}

func (t *TeeOp) ExtractResult(res int32) (any, error) {
	n, err := checkRes("tee", res)
	if err != nil {
		return nil, err
	}
	return int(n), nil
}

func (t *TeeOp) RunBlocking(ctx context.Context) (int32, error) {
	return 0, ErrUnsupportedOp
}

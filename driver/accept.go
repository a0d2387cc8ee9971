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

	"github.com/corio/corio/internal/iouring"
)

// AcceptOp accepts a new connection on listening socket Fd.
type AcceptOp struct {
	Fd int32
}

func NewAccept(fd int32) *AcceptOp { return &AcceptOp{Fd: fd} }

func (a *AcceptOp) Opcode() uint8 { return iouring.IORING_OP_ACCEPT }

func (a *AcceptOp) Build(sqe *SQE) {
	sqe.Fd = a.Fd
}

func (a *AcceptOp) ExtractResult(res int32) (any, error) {
	n, err := checkRes("accept", res)
	if err != nil {
		return nil, err
	}
	return int32(n), nil
}

func (a *AcceptOp) RunBlocking(ctx context.Context) (int32, error) {
	nfd, _, err := syscall.Accept(int(a.Fd))
	if err != nil {
		return negErrno(err), nil
	}
	return int32(nfd), nil
}

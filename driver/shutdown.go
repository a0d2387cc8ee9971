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

// ShutdownOp shuts down one or both halves of a connected socket Fd (how
// is SHUT_RD/SHUT_WR/SHUT_RDWR).
type ShutdownOp struct {
	Fd  int32
	How int32
}

func NewShutdown(fd int32, how int32) *ShutdownOp { return &ShutdownOp{Fd: fd, How: how} }

func (s *ShutdownOp) Opcode() uint8 { return iouring.IORING_OP_SHUTDOWN }

func (s *ShutdownOp) Build(sqe *SQE) {
	sqe.Fd = s.Fd
	sqe.Len = uint32(s.How)
}

func (s *ShutdownOp) ExtractResult(res int32) (any, error) {
	_, err := checkRes("shutdown", res)
	return nil, err
}

func (s *ShutdownOp) RunBlocking(ctx context.Context) (int32, error) {
	if err := syscall.Shutdown(int(s.Fd), int(s.How)); err != nil {
		return negErrno(err), nil
	}
	return 0, nil
}

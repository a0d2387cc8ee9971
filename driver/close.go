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

// CloseOp closes Fd.
type CloseOp struct {
	Fd int32
}

func NewClose(fd int32) *CloseOp { return &CloseOp{Fd: fd} }

func (c *CloseOp) Opcode() uint8 { return iouring.IORING_OP_CLOSE }

func (c *CloseOp) Build(sqe *SQE) { sqe.Fd = c.Fd }

func (c *CloseOp) ExtractResult(res int32) (any, error) {
	_, err := checkRes("close", res)
	return nil, err
}

func (c *CloseOp) RunBlocking(ctx context.Context) (int32, error) {
	if err := syscall.Close(int(c.Fd)); err != nil {
		return negErrno(err), nil
	}
	return 0, nil
}

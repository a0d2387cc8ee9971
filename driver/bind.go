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
)

// BindOp binds Fd to Addr. bind(2) has no io_uring opcode of its own; it
// always runs through the blocking pool.
type BindOp struct {
	Fd   int32
	Addr syscall.Sockaddr
}

func NewBind(fd int32, addr syscall.Sockaddr) *BindOp { return &BindOp{Fd: fd, Addr: addr} }

func (b *BindOp) Opcode() uint8 { return opUnsupported }
func (b *BindOp) Build(sqe *SQE) {}
func (b *BindOp) ExtractResult(res int32) (any, error) {
	_, err := checkRes("bind", res)
	return nil, err
}
func (b *BindOp) RunBlocking(ctx context.Context) (int32, error) {
	if err := syscall.Bind(int(b.Fd), b.Addr); err != nil {
		return negErrno(err), nil
	}
	return 0, nil
}

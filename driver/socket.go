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

// SocketOp creates a new socket fd.
type SocketOp struct {
	Domain, Type, Protocol int
}

func NewSocket(domain, typ, protocol int) *SocketOp {
	return &SocketOp{Domain: domain, Type: typ, Protocol: protocol}
}

func (s *SocketOp) Opcode() uint8 { return opUnsupported }
func (s *SocketOp) Build(sqe *SQE) {}
func (s *SocketOp) ExtractResult(res int32) (any, error) {
	n, err := checkRes("socket", res)
	if err != nil {
		return nil, err
	}
	return int32(n), nil
}
func (s *SocketOp) RunBlocking(ctx context.Context) (int32, error) {
	fd, err := syscall.Socket(s.Domain, s.Type, s.Protocol)
	if err != nil {
		return negErrno(err), nil
	}
	return int32(fd), nil
}

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

// ListenOp marks Fd as accepting connections with the given backlog.
// A backlog of 0 is normalized to 1: the kernel clamps differently across
// io_uring and plain listen(2), and normalizing here keeps behavior
// identical between backends instead of passing the raw value through.
type ListenOp struct {
	Fd      int32
	Backlog int
}

func NewListen(fd int32, backlog int) *ListenOp {
	if backlog <= 0 {
		backlog = 1
	}
	return &ListenOp{Fd: fd, Backlog: backlog}
}

func (l *ListenOp) Opcode() uint8 { return opUnsupported }
func (l *ListenOp) Build(sqe *SQE) {}
func (l *ListenOp) ExtractResult(res int32) (any, error) {
	_, err := checkRes("listen", res)
	return nil, err
}
func (l *ListenOp) RunBlocking(ctx context.Context) (int32, error) {
	if err := syscall.Listen(int(l.Fd), l.Backlog); err != nil {
		return negErrno(err), nil
	}
	return 0, nil
}

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

// ConnectOp connects Fd (already created via Socket) to Addr. Building a
// kernel-ABI raw sockaddr for IORING_OP_CONNECT's SQE would mean
// reimplementing the per-sockaddr-family byte layout syscall.Sockaddr
// deliberately keeps private (even golang.org/x/sys/unix's equivalent
// conversion is unexported); this runtime instead always routes Connect
// through the blocking pool via RunBlocking, which can use the stdlib's
// own syscall.Connect and let it do that conversion internally. Opcode
// is opUnsupported so the probe step never tries the ring path for it.
type ConnectOp struct {
	Fd            int32
	Addr          syscall.Sockaddr
	firstCallMade bool
}

func NewConnect(fd int32, addr syscall.Sockaddr) *ConnectOp {
	return &ConnectOp{Fd: fd, Addr: addr}
}

func (c *ConnectOp) Opcode() uint8 { return opUnsupported }

func (c *ConnectOp) Build(sqe *SQE) {}

func (c *ConnectOp) ExtractResult(res int32) (any, error) {
	_, err := checkRes("connect", res)
	return nil, err
}

// RunBlocking retries a non-blocking connect(2) until it settles.
// EALREADY means the prior attempt is still in flight (map back to
// EINPROGRESS so the caller's retry loop keeps waiting); EISCONN on a
// retried call means the first attempt actually succeeded.
func (c *ConnectOp) RunBlocking(ctx context.Context) (int32, error) {
	err := syscall.Connect(int(c.Fd), c.Addr)
	if !c.firstCallMade {
		c.firstCallMade = true
		if err == syscall.EINPROGRESS {
			return negErrno(syscall.EINPROGRESS), nil
		}
		if err != nil {
			return negErrno(err), nil
		}
		return 0, nil
	}
	switch err {
	case syscall.EISCONN:
		return 0, nil
	case syscall.EALREADY:
		return negErrno(syscall.EINPROGRESS), nil
	case nil:
		return 0, nil
	default:
		return negErrno(err), nil
	}
}

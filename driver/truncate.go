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

// TruncateOp resizes Fd to Size bytes. ftruncate(2) has no io_uring
// opcode; it always runs through the blocking pool.
type TruncateOp struct {
	Fd   int32
	Size int64
}

func NewTruncate(fd int32, size int64) *TruncateOp { return &TruncateOp{Fd: fd, Size: size} }

func (t *TruncateOp) Opcode() uint8 { return opUnsupported }
func (t *TruncateOp) Build(sqe *SQE) {}
func (t *TruncateOp) ExtractResult(res int32) (any, error) {
	_, err := checkRes("truncate", res)
	return nil, err
}
func (t *TruncateOp) RunBlocking(ctx context.Context) (int32, error) {
	if err := syscall.Ftruncate(int(t.Fd), t.Size); err != nil {
		return negErrno(err), nil
	}
	return 0, nil
}

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

// FsyncOp flushes Fd's data (and metadata, unless DataOnly) to stable
// storage.
type FsyncOp struct {
	Fd       int32
	DataOnly bool
}

func NewFsync(fd int32, dataOnly bool) *FsyncOp { return &FsyncOp{Fd: fd, DataOnly: dataOnly} }

func (f *FsyncOp) Opcode() uint8 { return iouring.IORING_OP_FSYNC }

func (f *FsyncOp) Build(sqe *SQE) {
	sqe.Fd = f.Fd
	if f.DataOnly {
		sqe.OpcodeFlags = 1 // IORING_FSYNC_DATASYNC
	}
}

func (f *FsyncOp) ExtractResult(res int32) (any, error) {
	_, err := checkRes("fsync", res)
	return nil, err
}

func (f *FsyncOp) RunBlocking(ctx context.Context) (int32, error) {
	var err error
	if f.DataOnly {
		err = syscall.Fdatasync(int(f.Fd))
	} else {
		err = syscall.Fsync(int(f.Fd))
	}
	if err != nil {
		return negErrno(err), nil
	}
	return 0, nil
}

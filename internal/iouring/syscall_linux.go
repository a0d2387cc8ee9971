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

//go:build linux && !mips64 && !mips64le

package iouring

import (
	"syscall"
	"unsafe"
)

// Linux syscall numbers for io_uring on every architecture except the
// mips64 family, which allocates its table at a different base (see
// syscall_linux_mips.go). These three numbers have been stable across
// amd64, arm64, 386, arm, riscv64, ppc64(le) and s390x since io_uring
// was introduced in kernel 5.1.
const (
	sysIoUringSetup    = 425
	sysIoUringEnter    = 426
	sysIoUringRegister = 427
)

// Setup initializes io_uring.
// Creates an io_uring instance with the specified number of entries.
// Returns the io_uring file descriptor on success.
func Setup(entries uint32, params *IoUringParams) (int, error) {
	fd, _, errno := syscall.Syscall(
		sysIoUringSetup,
		uintptr(entries),
		uintptr(unsafe.Pointer(params)),
		0,
	)
	if errno != 0 {
		return -1, errno
	}
	return int(fd), nil
}

// Enter submits queued SQEs and optionally waits for completions.
func Enter(fd int, toSubmit uint32, minComplete uint32, flags uint32, sig unsafe.Pointer) (int, syscall.Errno) {
	r, _, errno := syscall.Syscall6(
		sysIoUringEnter,
		uintptr(fd),
		uintptr(toSubmit),
		uintptr(minComplete),
		uintptr(flags),
		uintptr(sig),
		0,
	)
	return int(r), errno
}

// Register registers resources (buffers, files, eventfds) with an io_uring instance.
func Register(fd int, opcode uint32, arg unsafe.Pointer, nrArgs uint32) syscall.Errno {
	_, _, errno := syscall.Syscall6(
		sysIoUringRegister,
		uintptr(fd),
		uintptr(opcode),
		uintptr(arg),
		uintptr(nrArgs),
		0,
		0,
	)
	return errno
}

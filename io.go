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

package corio

import (
	"syscall"

	"github.com/corio/corio/driver"
)

// The I/O operation catalog: thin free functions over driver.Submit that
// build one Operation each and hand it to the process-wide Driver
// (driver.Get()). Each returns a Progress handle the caller awaits with
// Wait(ctx) on its own time, exactly as driver.Submit itself does — this
// package only saves the caller from importing driver directly and
// constructing Operation values by hand.

func Read(fd int32, buf []byte, offset uint64) (*driver.Progress[[]byte], error) {
	op, err := driver.NewRead(fd, buf, offset)
	if err != nil {
		return nil, err
	}
	return driver.Submit[[]byte](driver.Get(), op)
}

func Write(fd int32, buf []byte, offset uint64) (*driver.Progress[int], error) {
	op, err := driver.NewWrite(fd, buf, offset)
	if err != nil {
		return nil, err
	}
	return driver.Submit[int](driver.Get(), op)
}

func Recv(fd int32, buf []byte, size int) (*driver.Progress[[]byte], error) {
	op, err := driver.NewRecv(fd, buf, size)
	if err != nil {
		return nil, err
	}
	return driver.Submit[[]byte](driver.Get(), op)
}

func Send(fd int32, buf []byte) (*driver.Progress[int], error) {
	op, err := driver.NewSend(fd, buf)
	if err != nil {
		return nil, err
	}
	return driver.Submit[int](driver.Get(), op)
}

func Accept(fd int32) (*driver.Progress[int32], error) {
	return driver.Submit[int32](driver.Get(), driver.NewAccept(fd))
}

func Connect(fd int32, addr syscall.Sockaddr) (*driver.Progress[struct{}], error) {
	return driver.Submit[struct{}](driver.Get(), driver.NewConnect(fd, addr))
}

func Bind(fd int32, addr syscall.Sockaddr) (*driver.Progress[struct{}], error) {
	return driver.Submit[struct{}](driver.Get(), driver.NewBind(fd, addr))
}

func Listen(fd int32, backlog int) (*driver.Progress[struct{}], error) {
	return driver.Submit[struct{}](driver.Get(), driver.NewListen(fd, backlog))
}

func Socket(domain, typ, protocol int) (*driver.Progress[int32], error) {
	return driver.Submit[int32](driver.Get(), driver.NewSocket(domain, typ, protocol))
}

func Close(fd int32) (*driver.Progress[struct{}], error) {
	return driver.Submit[struct{}](driver.Get(), driver.NewClose(fd))
}

func Openat(dirfd int32, path string, flags int, mode uint32) (*driver.Progress[int32], error) {
	return driver.Submit[int32](driver.Get(), driver.NewOpenat(dirfd, path, flags, mode))
}

func Truncate(fd int32, size int64) (*driver.Progress[struct{}], error) {
	return driver.Submit[struct{}](driver.Get(), driver.NewTruncate(fd, size))
}

func Fsync(fd int32, dataOnly bool) (*driver.Progress[struct{}], error) {
	return driver.Submit[struct{}](driver.Get(), driver.NewFsync(fd, dataOnly))
}

func Shutdown(fd int32, how int32) (*driver.Progress[struct{}], error) {
	return driver.Submit[struct{}](driver.Get(), driver.NewShutdown(fd, how))
}

func Tee(fdIn, fdOut int32, length uint32) (*driver.Progress[int], error) {
	return driver.Submit[int](driver.Get(), driver.NewTee(fdIn, fdOut, length))
}

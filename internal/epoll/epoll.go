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

//go:build linux

// Package epoll wraps epoll_create1/epoll_ctl/epoll_wait for the readiness-poller
// fallback backend used on kernels or architectures where io_uring is unavailable.
package epoll

import (
	"syscall"
)

// Event mirrors the subset of epoll event flags the fallback driver cares about.
const (
	EventIn    = syscall.EPOLLIN
	EventOut   = syscall.EPOLLOUT
	EventErr   = syscall.EPOLLERR
	EventHup   = syscall.EPOLLHUP
	EventRDHup = 0x2000 // EPOLLRDHUP, not exported by the syscall package on every arch
)

// Poller is a thin, allocation-free wrapper around one epoll instance.
type Poller struct {
	fd int
}

// New creates a new epoll instance with close-on-exec set.
func New() (*Poller, error) {
	fd, err := syscall.EpollCreate1(syscall.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &Poller{fd: fd}, nil
}

// Add registers fd for the given event mask, tagging the event with fd itself
// so Wait's caller can recover which descriptor became ready.
func (p *Poller) Add(fd int, events uint32) error {
	ev := syscall.EpollEvent{Events: events, Fd: int32(fd)}
	return syscall.EpollCtl(p.fd, syscall.EPOLL_CTL_ADD, fd, &ev)
}

// Modify updates the event mask registered for fd.
func (p *Poller) Modify(fd int, events uint32) error {
	ev := syscall.EpollEvent{Events: events, Fd: int32(fd)}
	return syscall.EpollCtl(p.fd, syscall.EPOLL_CTL_MOD, fd, &ev)
}

// Remove unregisters fd. It is not an error to remove an fd that was never added.
func (p *Poller) Remove(fd int) error {
	err := syscall.EpollCtl(p.fd, syscall.EPOLL_CTL_DEL, fd, nil)
	if err == syscall.ENOENT {
		return nil
	}
	return err
}

// Wait blocks until at least one registered fd is ready, timeoutMs elapses
// (a negative value blocks indefinitely), or the wait is interrupted. EINTR
// is retried transparently, matching the io_uring ring's Submit/WaitCQE
// behavior so callers never have to special-case it.
func (p *Poller) Wait(events []syscall.EpollEvent, timeoutMs int) (int, error) {
	for {
		n, err := syscall.EpollWait(p.fd, events, timeoutMs)
		if err == syscall.EINTR {
			continue
		}
		return n, err
	}
}

// Close releases the epoll file descriptor.
func (p *Poller) Close() error {
	if p.fd < 0 {
		return nil
	}
	err := syscall.Close(p.fd)
	p.fd = -1
	return err
}

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

// Package netio wraps the corio I/O operation catalog with the narrower,
// connection-shaped surface a TCP client or server actually wants:
// Listener.Accept and Conn.Read/Write/Close instead of manually building
// and waiting on a driver.Progress for every call. It plays the role
// cloudwego-gopkg's netx package plays for net.Conn, adapted from wrapping
// an already-connected net.Conn to wrapping a raw driver file descriptor
// this runtime owns end to end.
package netio

import (
	"context"
	"net"
	"syscall"

	"github.com/corio/corio"
)

// Conn is a single accepted or connected socket, driven entirely through
// the corio I/O catalog rather than the standard library's net package.
type Conn struct {
	fd int32
}

// NewConn wraps an already-open socket fd (as returned by Listener.Accept
// or a manual corio.Socket+Connect) as a Conn.
func NewConn(fd int32) *Conn {
	return &Conn{fd: fd}
}

// Fd returns the raw file descriptor backing this connection.
func (c *Conn) Fd() int32 {
	return c.fd
}

// Read submits a Recv against the connection's fd and waits for it to
// complete, returning the number of bytes placed into buf.
func (c *Conn) Read(ctx context.Context, buf []byte) (int, error) {
	p, err := corio.Recv(c.fd, buf, len(buf))
	if err != nil {
		return 0, err
	}
	got, err := p.Wait(ctx)
	return len(got), err
}

// Write submits a Send against the connection's fd and waits for it to
// complete, returning the number of bytes accepted by the kernel.
func (c *Conn) Write(ctx context.Context, buf []byte) (int, error) {
	p, err := corio.Send(c.fd, buf)
	if err != nil {
		return 0, err
	}
	return p.Wait(ctx)
}

// Close submits a Close against the connection's fd and waits for it to
// complete.
func (c *Conn) Close(ctx context.Context) error {
	p, err := corio.Close(c.fd)
	if err != nil {
		return err
	}
	_, err = p.Wait(ctx)
	return err
}

// Listener is a bound and listening TCP socket driven through the corio
// I/O catalog; Accept hands back one Conn per incoming connection.
type Listener struct {
	fd int32
}

// Listen creates a socket, binds it to addr, and starts listening with the
// given backlog (see driver.NewListen for how a non-positive backlog is
// normalized). addr must be a *net.TCPAddr; other address families are not
// yet wired through this package.
func Listen(ctx context.Context, addr *net.TCPAddr, backlog int) (*Listener, error) {
	domain := syscall.AF_INET
	if addr.IP.To4() == nil {
		domain = syscall.AF_INET6
	}

	sp, err := corio.Socket(domain, syscall.SOCK_STREAM, 0)
	if err != nil {
		return nil, err
	}
	fd, err := sp.Wait(ctx)
	if err != nil {
		return nil, err
	}

	sa, err := sockaddr(addr)
	if err != nil {
		return nil, err
	}

	bp, err := corio.Bind(fd, sa)
	if err != nil {
		return nil, err
	}
	if _, err := bp.Wait(ctx); err != nil {
		return nil, err
	}

	lp, err := corio.Listen(fd, backlog)
	if err != nil {
		return nil, err
	}
	if _, err := lp.Wait(ctx); err != nil {
		return nil, err
	}

	return &Listener{fd: fd}, nil
}

// Accept waits for and returns the next incoming connection.
func (l *Listener) Accept(ctx context.Context) (*Conn, error) {
	p, err := corio.Accept(l.fd)
	if err != nil {
		return nil, err
	}
	fd, err := p.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return NewConn(fd), nil
}

// Close tears the listening socket down.
func (l *Listener) Close(ctx context.Context) error {
	p, err := corio.Close(l.fd)
	if err != nil {
		return err
	}
	_, err = p.Wait(ctx)
	return err
}

func sockaddr(addr *net.TCPAddr) (syscall.Sockaddr, error) {
	if ip4 := addr.IP.To4(); ip4 != nil {
		var sa syscall.SockaddrInet4
		sa.Port = addr.Port
		copy(sa.Addr[:], ip4)
		return &sa, nil
	}
	var sa syscall.SockaddrInet6
	sa.Port = addr.Port
	copy(sa.Addr[:], addr.IP.To16())
	return &sa, nil
}

// Dial creates a socket and connects it to addr, returning the connected
// Conn once the handshake completes.
func Dial(ctx context.Context, addr *net.TCPAddr) (*Conn, error) {
	domain := syscall.AF_INET
	if addr.IP.To4() == nil {
		domain = syscall.AF_INET6
	}

	sp, err := corio.Socket(domain, syscall.SOCK_STREAM, 0)
	if err != nil {
		return nil, err
	}
	fd, err := sp.Wait(ctx)
	if err != nil {
		return nil, err
	}

	sa, err := sockaddr(addr)
	if err != nil {
		return nil, err
	}

	cp, err := corio.Connect(fd, sa)
	if err != nil {
		return nil, err
	}
	if _, err := cp.Wait(ctx); err != nil {
		return nil, err
	}

	return NewConn(fd), nil
}

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

package netio

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/corio/corio"
)

// TestLoopbackAcceptConnectRoundTrips exercises a listener accepting one
// loopback connection, a dialer writing to it, and the accepted side
// reading the bytes back, end to end through the corio I/O catalog.
func TestLoopbackAcceptConnectRoundTrips(t *testing.T) {
	corio.RunTest(t, func(ctx context.Context) {
		addr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 34591}
		ln, err := Listen(ctx, addr, 1)
		require.NoError(t, err)
		defer ln.Close(ctx)

		accepted := make(chan *Conn, 1)
		acceptErr := make(chan error, 1)
		go func() {
			c, err := ln.Accept(ctx)
			if err != nil {
				acceptErr <- err
				return
			}
			accepted <- c
		}()

		client, err := Dial(ctx, addr)
		require.NoError(t, err)
		defer client.Close(ctx)

		var server *Conn
		select {
		case server = <-accepted:
		case err := <-acceptErr:
			t.Fatalf("accept failed: %v", err)
		case <-time.After(2 * time.Second):
			t.Fatal("accept never completed")
		}
		defer server.Close(ctx)

		n, err := client.Write(ctx, []byte("hello netio"))
		require.NoError(t, err)
		require.Equal(t, len("hello netio"), n)

		buf := make([]byte, 64)
		n, err = server.Read(ctx, buf)
		require.NoError(t, err)
		require.Equal(t, "hello netio", string(buf[:n]))
	})
}

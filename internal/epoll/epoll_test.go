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

package epoll

import (
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPollerReadReady(t *testing.T) {
	if _, err := New(); err != nil {
		t.Skipf("epoll unavailable: %v", err)
	}
	p, err := New()
	require.NoError(t, err)
	defer p.Close()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	require.NoError(t, p.Add(int(r.Fd()), EventIn))

	_, err = w.Write([]byte("x"))
	require.NoError(t, err)

	events := make([]syscall.EpollEvent, 4)
	n, err := p.Wait(events, 1000)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, int32(r.Fd()), events[0].Fd)
}

func TestPollerRemoveUnknownFd(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Skipf("epoll unavailable: %v", err)
	}
	defer p.Close()
	require.NoError(t, p.Remove(999))
}

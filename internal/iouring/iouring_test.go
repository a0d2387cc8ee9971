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

package iouring

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// skipIfUnsupported skips a test when not running on Linux, or when the
// running kernel lacks io_uring (Setup returns ENOSYS/ENOSYS-like errors
// on anything older than 5.1, or inside containers that seccomp it away).
func skipIfUnsupported(t *testing.T) *IoUring {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("io_uring is linux-only")
	}
	ring, err := NewIoUring(8)
	if err != nil {
		t.Skipf("io_uring unavailable on this host/kernel: %v", err)
	}
	return ring
}

func TestNewIoUring(t *testing.T) {
	ring := skipIfUnsupported(t)
	defer ring.Close()

	require.NotZero(t, ring.params.Features&IORING_FEAT_SINGLE_MMAP)
	require.Equal(t, uint32(0), ring.PendingSQEs())
}

func TestNopRoundTrip(t *testing.T) {
	ring := skipIfUnsupported(t)
	defer ring.Close()

	sqe := ring.PeekSQE(true)
	require.NotNil(t, sqe)
	sqe.Opcode = IORING_OP_NOP
	sqe.UserData = 42
	ring.AdvanceSQ()

	n, errno := ring.Submit()
	require.Zero(t, errno)
	require.Equal(t, 1, n)

	cqe, err := ring.WaitCQE()
	require.NoError(t, err)
	require.Equal(t, uint64(42), cqe.UserData)
	ring.AdvanceCQ()
}

func TestPeekSQEFullRing(t *testing.T) {
	ring := skipIfUnsupported(t)
	defer ring.Close()

	filled := 0
	for {
		sqe := ring.PeekSQE(true)
		if sqe == nil {
			break
		}
		sqe.Opcode = IORING_OP_NOP
		ring.AdvanceSQ()
		filled++
		if filled > 64 {
			t.Fatal("ring never reports full")
		}
	}
	require.Positive(t, filled)

	_, errno := ring.Submit()
	require.Zero(t, errno)
	for i := 0; i < filled; i++ {
		_, err := ring.WaitCQE()
		require.NoError(t, err)
		ring.AdvanceCQ()
	}
}

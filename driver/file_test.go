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

package driver

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestDriverWriteThenReadRoundTripsThroughRealRing exercises a full
// Submit/Wait cycle through the process-wide Driver (whichever backend
// newPlatformRing picked on this kernel — io_uring or the blocking-pool
// fallback) rather than a fakeRing, writing to and reading from a real
// temp file. Build-tag gated to linux since that's the only GOOS
// newPlatformRing attempts a real io_uring ring on.
func TestDriverWriteThenReadRoundTripsThroughRealRing(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "corio-driver-")
	require.NoError(t, err)
	defer f.Close()

	fd := int32(f.Fd())
	d := Get()

	wop, err := NewWrite(fd, []byte("driver round trip"), 0)
	require.NoError(t, err)
	wp, err := Submit[int](d, wop)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := wp.Wait(ctx)
	require.NoError(t, err)
	require.Equal(t, len("driver round trip"), n)

	buf := make([]byte, 64)
	rop, err := NewRead(fd, buf, 0)
	require.NoError(t, err)
	rp, err := Submit[[]byte](d, rop)
	require.NoError(t, err)

	got, err := rp.Wait(ctx)
	require.NoError(t, err)
	require.Equal(t, "driver round trip", string(got))
}

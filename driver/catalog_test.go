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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenReadRoundTripsThroughRunBlocking(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "corio-driver-*")
	require.NoError(t, err)
	defer f.Close()
	fd := int32(f.Fd())

	w, err := NewWrite(fd, []byte("hello corio"), 0)
	require.NoError(t, err)
	res, werr := w.RunBlocking(context.Background())
	require.NoError(t, werr)
	v, err := w.ExtractResult(res)
	require.NoError(t, err)
	assert.Equal(t, len("hello corio"), v)

	buf := make([]byte, 32)
	r, err := NewRead(fd, buf, 0)
	require.NoError(t, err)
	res, rerr := r.RunBlocking(context.Background())
	require.NoError(t, rerr)
	out, err := r.ExtractResult(res)
	require.NoError(t, err)
	assert.Equal(t, "hello corio", string(out.([]byte)))
}

func TestNewSendAcceptsEmptyBuffer(t *testing.T) {
	_, err := NewSend(3, make([]byte, 0))
	require.NoError(t, err)
}

func TestCloseRunBlockingClosesFd(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "corio-driver-close-*")
	require.NoError(t, err)
	fd := int32(f.Fd())

	c := NewClose(fd)
	res, err := c.RunBlocking(context.Background())
	require.NoError(t, err)
	_, err = c.ExtractResult(res)
	require.NoError(t, err)

	// A second close of the same fd surfaces EBADF through the
	// negated-errno convention.
	res2, err := c.RunBlocking(context.Background())
	require.NoError(t, err)
	assert.Less(t, res2, int32(0))
}

func TestListenNormalizesNonPositiveBacklog(t *testing.T) {
	l := NewListen(3, 0)
	assert.Equal(t, 1, l.Backlog)
	l2 := NewListen(3, -5)
	assert.Equal(t, 1, l2.Backlog)
	l3 := NewListen(3, 16)
	assert.Equal(t, 16, l3.Backlog)
}

func TestTruncateOpcodeIsUnsupportedByRing(t *testing.T) {
	tr := NewTruncate(3, 1024)
	assert.Equal(t, uint8(opUnsupported), tr.Opcode())
}

func TestTeeRunBlockingReportsUnsupported(t *testing.T) {
	op := NewTee(3, 4, 128)
	_, err := op.RunBlocking(context.Background())
	assert.ErrorIs(t, err, ErrUnsupportedOp)
}

func TestFsyncBuildSetsDatasyncFlag(t *testing.T) {
	f := NewFsync(5, true)
	var sqe SQE
	f.Build(&sqe)
	assert.Equal(t, uint32(1), sqe.OpcodeFlags)

	f2 := NewFsync(5, false)
	var sqe2 SQE
	f2.Build(&sqe2)
	assert.Equal(t, uint32(0), sqe2.OpcodeFlags)
}

func TestOpenatKeepsPathBytesNulTerminated(t *testing.T) {
	o := NewOpenat(-100, "/tmp/corio-test", 0, 0o644)
	var sqe SQE
	o.Build(&sqe)
	assert.NotZero(t, sqe.Addr)
	assert.Equal(t, byte(0), o.pathBytes[len(o.pathBytes)-1])
}

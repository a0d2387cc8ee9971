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

import "syscall"

// opUnsupported marks an Operation that has no io_uring opcode of its own
// (bind/listen/socket/truncate: plain synchronous syscalls with nothing to
// submit to a ring) so the probe step always routes it to RunBlocking.
const opUnsupported = 0xFF

// checkLen validates that a buffer's length fits the uint32 width
// IOUringSQE.Len uses, per the edge case spec.md calls out for send/write.
func checkLen(buf []byte) error {
	if uint64(len(buf)) > 0xFFFFFFFF {
		return ErrBufferTooLarge
	}
	return nil
}

// checkRes turns a raw completion result into an error if it represents a
// negated errno, grounded on the convention every io_uring opcode and this
// package's poller fallback share: res < 0 means -errno, res >= 0 is a
// byte count or other non-negative outcome.
func checkRes(op string, res int32) (int32, error) {
	if res < 0 {
		return 0, &OpError{Op: op, Errno: syscall.Errno(-res)}
	}
	return res, nil
}

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
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrDriverShutdown is returned by Submit after Shutdown has run.
	ErrDriverShutdown = errors.New("driver: shut down")
	// ErrUnsupportedOp is what TeeOp.RunBlocking returns, and what the
	// backends pass to negErrno when an op has neither a ring opcode nor a
	// blocking fallback. negErrno maps it to -EIO, so a caller's
	// Progress.Wait sees an *OpError with Errno EIO rather than this value.
	ErrUnsupportedOp = errors.New("driver: operation not supported by this backend")
	// ErrBufferTooLarge is returned when a buffer's length does not fit a
	// uint32, the width io_uring's SQE.Len field allows.
	ErrBufferTooLarge = errors.New("driver: buffer length exceeds uint32")
)

// OpError wraps a negative-errno kernel result with the operation name that
// produced it.
type OpError struct {
	Op    string
	Errno syscall.Errno
	Inner error
}

func (e *OpError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("driver: %s: %v", e.Op, e.Inner)
	}
	return fmt.Sprintf("driver: %s: %v", e.Op, e.Errno)
}

func (e *OpError) Unwrap() error {
	if e.Inner != nil {
		return e.Inner
	}
	return e.Errno
}

func (e *OpError) Is(target error) bool {
	if errno, ok := target.(syscall.Errno); ok {
		return e.Errno == errno
	}
	return false
}

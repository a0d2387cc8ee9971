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

// negErrno turns a syscall error into the negated-errno convention every
// completion result in this package uses (res < 0 means -errno), so
// RunBlocking implementations can report failures the same way the ring
// backend's completions do.
func negErrno(err error) int32 {
	if err == nil {
		return 0
	}
	if errno, ok := err.(syscall.Errno); ok {
		return -int32(errno)
	}
	return -int32(syscall.EIO)
}

func syscallPread(fd int32, buf []byte, offset int64) (int, error) {
	return syscall.Pread(int(fd), buf, offset)
}

func syscallPwrite(fd int32, buf []byte, offset int64) (int, error) {
	return syscall.Pwrite(int(fd), buf, offset)
}

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

//go:build cgo

package corioffi

/*
#include <stddef.h>
#include <stdint.h>

// lio_callback is the shape every lio_<op> completion callback must have:
// result_code follows the kernel convention (negative = negated errno),
// buf/len are only meaningful for read-shaped operations and are NULL/0
// otherwise. The callback owns buf after the call and must free it.
typedef void (*lio_callback)(int64_t result_code, void *buf, size_t len);

static inline void lio_invoke(lio_callback cb, int64_t result_code, void *buf, size_t len) {
    cb(result_code, buf, len);
}
*/
import "C"

import (
	"context"
	"unsafe"

	"github.com/corio/corio"
	"github.com/corio/corio/driver"
)

// negErrno maps a Go error from the driver catalog onto the negated-errno
// convention the C side expects, matching how a raw kernel completion
// already encodes failure.
func negErrno(err error) C.int64_t {
	if err == nil {
		return 0
	}
	var opErr *driver.OpError
	if asOpError(err, &opErr) {
		return C.int64_t(-int64(opErr.Errno))
	}
	return -1
}

func asOpError(err error, target **driver.OpError) bool {
	for err != nil {
		if oe, ok := err.(*driver.OpError); ok {
			*target = oe
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// lio_write writes len(buf) bytes from buf to fd at offset, invoking cb
// once with the number of bytes written (or a negated errno).
//
//export lio_write
func lio_write(fd C.int32_t, buf *C.char, length C.size_t, offset C.uint64_t, cb C.lio_callback) {
	goBuf := C.GoBytes(unsafe.Pointer(buf), C.int(length))
	go func() {
		p, err := corio.Write(int32(fd), goBuf, uint64(offset))
		if err != nil {
			C.lio_invoke(cb, negErrno(err), nil, 0)
			return
		}
		n, err := p.Wait(context.Background())
		if err != nil {
			C.lio_invoke(cb, negErrno(err), nil, 0)
			return
		}
		C.lio_invoke(cb, C.int64_t(n), nil, 0)
	}()
}

// lio_read reads up to length bytes from fd at offset, invoking cb with
// the bytes read via (buf_ptr, buf_len); cb must free buf_ptr with
// C.free/the platform equivalent once done with it.
//
//export lio_read
func lio_read(fd C.int32_t, length C.size_t, offset C.uint64_t, cb C.lio_callback) {
	go func() {
		buf := make([]byte, int(length))
		p, err := corio.Read(int32(fd), buf, uint64(offset))
		if err != nil {
			C.lio_invoke(cb, negErrno(err), nil, 0)
			return
		}
		got, err := p.Wait(context.Background())
		if err != nil {
			C.lio_invoke(cb, negErrno(err), nil, 0)
			return
		}
		cBuf := C.CBytes(got)
		C.lio_invoke(cb, C.int64_t(len(got)), cBuf, C.size_t(len(got)))
	}()
}

// lio_close closes fd, invoking cb with 0 on success or a negated errno.
//
//export lio_close
func lio_close(fd C.int32_t, cb C.lio_callback) {
	go func() {
		p, err := corio.Close(int32(fd))
		if err != nil {
			C.lio_invoke(cb, negErrno(err), nil, 0)
			return
		}
		if _, err := p.Wait(context.Background()); err != nil {
			C.lio_invoke(cb, negErrno(err), nil, 0)
			return
		}
		C.lio_invoke(cb, 0, nil, 0)
	}()
}

// lio_fsync flushes fd (data-only if data_only is nonzero), invoking cb
// with 0 on success or a negated errno.
//
//export lio_fsync
func lio_fsync(fd C.int32_t, dataOnly C.int32_t, cb C.lio_callback) {
	go func() {
		p, err := corio.Fsync(int32(fd), dataOnly != 0)
		if err != nil {
			C.lio_invoke(cb, negErrno(err), nil, 0)
			return
		}
		if _, err := p.Wait(context.Background()); err != nil {
			C.lio_invoke(cb, negErrno(err), nil, 0)
			return
		}
		C.lio_invoke(cb, 0, nil, 0)
	}()
}

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

import "github.com/corio/corio/cache/mempool"

// Malloc returns a buffer of exactly size bytes from a size-classed pool,
// for Read/Recv calls that pass a nil buffer and want the driver to own
// its lifecycle. It is the "attached buffers" custodian the I/O operations
// hand callers a slice from without the caller having allocated it.
func Malloc(size int) []byte {
	return mempool.Malloc(size)
}

// Free returns a buffer obtained from Malloc to its pool. Using buf after
// calling Free is undefined, same as the pool it wraps.
func Free(buf []byte) {
	mempool.Free(buf)
}

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

// Package corioffi exports the driver I/O catalog to C callers as a set of
// lio_<name> symbols, each taking the operation's arguments plus a plain C
// callback function pointer invoked once on completion with
// (result_code int64_t, buf_ptr void*, buf_len size_t). Result encoding
// matches the kernel convention the rest of this module already uses:
// nonnegative is the success value, negative is a negated errno.
//
// lio_write copies the caller's buffer at call time; the caller keeps
// ownership of it and nothing is handed back through the callback.
// lio_read takes no buffer: it reads into its own memory and passes the
// callback a C-allocated copy, which the callback is responsible for
// freeing. This package is never imported by the rest of the module — it is
// an external collaborator built only when compiling with -tags cgo, and
// has no Go-side caller to verify its own contract against.
package corioffi

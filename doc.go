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

// Package corio is the public entry point of an async I/O runtime: a
// single- or multi-threaded task executor (package executor), an
// io_uring/epoll I/O driver (package driver), coordination primitives
// (package corsync), and a hierarchical timer wheel (package timer),
// wired together behind one Runtime.
//
// A process builds exactly one Runtime, either with SingleThreaded for a
// current-goroutine-style scheduler or MultiThreaded for a work-stealing
// pool, and drives it with BlockOn. Code running inside BlockOn reaches
// the active Runtime through its context.Context, so Spawn, Sleep, and the
// I/O operations below never need the Runtime threaded through explicitly.
package corio

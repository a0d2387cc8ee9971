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

package corio

import (
	"context"
	"testing"
)

// RunTest runs f to completion on a SingleThreaded Runtime scoped to t: the
// Runtime is torn down via t.Cleanup once the test finishes, so callers
// never need their own defer. Tests that want to assert on errors should
// have f report them through t directly (t.Error/t.Fatal) rather than a
// return value, matching how the rest of this module's own test suite is
// written.
func RunTest(t *testing.T, f func(context.Context)) {
	t.Helper()

	rt := SingleThreaded()
	t.Cleanup(rt.Shutdown)

	_, err := BlockOn(context.Background(), rt, func(ctx context.Context) (struct{}, error) {
		f(ctx)
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("corio: RunTest body returned error: %v", err)
	}
}

// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package prefetch provides an optional write-prefetch hint, gated per
// architecture the way the teacher's hwy/dispatch_{amd64,arm64,other}.go
// files gate SIMD capability: a package-level capability flag, set once
// at package initialization from an arch-specific check, with an
// environment-variable escape hatch
// for testing and debugging (mirroring hwy's HWY_NO_SIMD).
//
// Go has no portable standard-library prefetch intrinsic. Rather than
// drop to assembly (out of scope: the teacher reaches for assembly only
// via its generated, vendor-maintained asm/ wrappers, which this module
// has no equivalent generator for), Write uses the same trick several
// performance-sensitive Go codebases use: a throwaway read of the target
// address, relying on the CPU's hardware prefetcher and cache-fill
// behavior to pull the containing line in before the real access. This
// has no observable effect on program semantics (spec.md §4.2: "Must
// not affect observable semantics") beyond its cache-timing side effect,
// which is the entire point.
package prefetch

import (
	"os"
	"unsafe"
)

// enabled is computed once at package initialization from
// archAvailable, which the arch-specific dispatch file defines
// (dispatch_amd64.go, dispatch_arm64.go, dispatch_other.go — mirroring
// hwy/dispatch_{amd64,arm64,other}.go's split) to report whether this
// CPU is one the touch-read trick is worth using on, and from the
// RIPSHUFFLE_NO_PREFETCH override.
var enabled = archAvailable() && !envDisabled()

func envDisabled() bool {
	v := os.Getenv("RIPSHUFFLE_NO_PREFETCH")
	return v != "" && v != "0" && v != "false"
}

// Available reports whether write-prefetch hints are enabled for this
// process. Disabled via the RIPSHUFFLE_NO_PREFETCH environment
// variable, for benchmarking and for platforms where the touch-read
// trick measurably hurts (e.g. under a race detector or a memory
// sanitizer, where every extra read is instrumented).
func Available() bool {
	return enabled
}

// Write issues a write-prefetch hint for the memory at p. p must point
// to at least one valid, readable byte; Write performs a read, not a
// write, so it is safe to call on memory the caller does not yet intend
// to have modified (it only asks the cache hierarchy to warm the line).
// Unlike Go-level touches of typed values, reading a single byte
// through unsafe.Pointer never boxes or allocates, keeping this on the
// zero-allocation hot path spec.md §1 requires.
//
// No-op when Available() is false.
func Write(p unsafe.Pointer) {
	if !enabled || p == nil {
		return
	}
	// Blank-assigning a read through unsafe.Pointer is the standard Go
	// idiom for a deliberately discarded touch: the compiler cannot
	// prove an arbitrary unsafe.Pointer dereference is side-effect free,
	// so it keeps the load instead of eliding it as dead code. Unlike a
	// shared package-level sink, this has no cross-goroutine state, so
	// concurrent callers from ParShuffle's fanned-out goroutines never
	// race on it.
	_ = *(*byte)(p)
}

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

// Package swap implements the swap kernels this module moves elements
// with: One, exchanging a single pair of slice elements (the workhorse
// the base-case shuffle calls on every exchange), OneUnchecked, its
// pointer-arithmetic counterpart, and Blocks/BlocksUnchecked,
// exchanging two equal-length, non-overlapping ranges. Each pair
// mirrors spec.md §4.4's checked/unchecked split: the checked path is
// always sound; the unchecked path reinterprets the operands via
// unsafe.Pointer to skip Go's per-index bounds check, the same
// reinterpret-cast idiom the teacher uses to move data in and out of
// SIMD registers (hwy/memory.go, hwy/asm's Float32x4 family).
package swap

import "unsafe"

// One exchanges a single pair of elements.
func One[T any](a []T, i, j int) {
	a[i], a[j] = a[j], a[i]
}

// OneUnchecked exchanges a[i] and a[j] via a pointer-arithmetic copy
// through a scratch value, rather than Go's normal indexed access.
// Caller-enforced precondition: 0 <= i, j < len(a); out-of-range
// indices are undefined behavior, not a checked error.
func OneUnchecked[T any](a []T, i, j int) {
	size := unsafe.Sizeof(a[0])
	base := unsafe.Pointer(&a[0])
	pi := unsafe.Add(base, uintptr(i)*size)
	pj := unsafe.Add(base, uintptr(j)*size)

	var tmp T
	ptmp := unsafe.Pointer(&tmp)
	bytesAt := func(p unsafe.Pointer) []byte { return unsafe.Slice((*byte)(p), size) }

	copy(bytesAt(ptmp), bytesAt(pi))
	copy(bytesAt(pi), bytesAt(pj))
	copy(bytesAt(pj), bytesAt(ptmp))
}

// Blocks exchanges the contents of a[0:n] and b[0:n] element-wise.
// Bounds-checked: panics (via a normal out-of-range slice index) if
// either slice is shorter than n.
func Blocks[T any](a, b []T, n int) {
	if n <= 0 {
		return
	}
	_ = a[n-1]
	_ = b[n-1]
	for i := 0; i < n; i++ {
		a[i], b[i] = b[i], a[i]
	}
}

// BlocksUnchecked exchanges the contents of a[0:n] and b[0:n] via a
// byte-granular copy through a small stack scratch buffer, skipping
// Go's per-element bounds checks and avoiding the interface-shaped
// overhead of a generic element swap.
//
// Preconditions (caller-enforced, per spec.md §4.4 and §7 — violating
// any of these is undefined behavior, not a checked error):
//   - len(a) >= n and len(b) >= n.
//   - a[0:n] and b[0:n] do not overlap.
//   - T's in-memory representation contains no pointers that need a
//     write barrier (true for the numeric/fixed-size element types this
//     is intended for).
func BlocksUnchecked[T any](a, b []T, n int) {
	if n <= 0 {
		return
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return
	}

	const scratchBytes = 4096
	var scratch [scratchBytes]byte

	pa := unsafe.Pointer(&a[0])
	pb := unsafe.Pointer(&b[0])
	total := n * size

	chunk := scratchBytes
	for offset := 0; offset < total; offset += chunk {
		c := min(chunk, total-offset)
		src := unsafe.Add(pa, offset)
		dst := unsafe.Add(pb, offset)

		copy(scratch[:c], unsafe.Slice((*byte)(src), c))
		copy(unsafe.Slice((*byte)(src), c), unsafe.Slice((*byte)(dst), c))
		copy(unsafe.Slice((*byte)(dst), c), scratch[:c])
	}
}

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

// Package fy implements the base-case shuffle: classic Fisher-Yates,
// plus a prefetched variant for runs above a small threshold. This is
// the leaf the recursive scatter-shuffle (seq.go/par.go) bottoms out
// into once a bucket is cache-sized, mirroring the way the teacher's
// hwy/contrib/sort.sortImpl bottoms out into sortInsertion/SortSmall
// below its own size thresholds.
package fy

import (
	"unsafe"

	"github.com/manpen/rip-shuffle/internal/prefetch"
	"github.com/manpen/rip-shuffle/internal/sample"
	"github.com/manpen/rip-shuffle/internal/swap"
)

// Source is the randomness capability the base case needs.
type Source interface {
	sample.Source32
	sample.Source64
}

// Shuffle performs a plain, in-place Fisher-Yates shuffle of data: for
// i from len(data)-1 down to 1, draw j uniformly in [0, i] and swap
// data[i] and data[j]. unsafeKernels selects swap.OneUnchecked over
// swap.One for each exchange (spec.md §4.4/§6's unsafe_kernels knob).
func Shuffle[T any](data []T, rng Source, unsafeKernels bool) {
	swapFn := swap.One[T]
	if unsafeKernels {
		swapFn = swap.OneUnchecked[T]
	}
	for i := len(data) - 1; i > 0; i-- {
		j := sample.Index(rng, i+1)
		swapFn(data, i, j)
	}
}

// ShufflePrefetched is Shuffle's prefetched variant (spec.md §4.3): it
// keeps a small ring of the last `depth` sampled index pairs. Each new
// draw issues a write-prefetch for its target element, and the swap
// drawn `depth` steps earlier (whose target was prefetched back then) is
// applied. Once the draws run out, the pending swaps are applied oldest
// first. It draws exactly the same indices as Shuffle and applies the
// same swaps in the same order, so given identical RNG streams both
// produce the identical permutation; only the timing of each swap
// relative to its draw differs.
//
// Calls Shuffle directly when depth <= 0, when len(data) <= 2*depth, or
// when prefetch.Available() is false.
func ShufflePrefetched[T any](data []T, rng Source, depth int, unsafeKernels bool) {
	n := len(data)
	if n <= 1 {
		return
	}
	if depth <= 0 || !prefetch.Available() || n <= depth*2 {
		Shuffle(data, rng, unsafeKernels)
		return
	}

	swapFn := swap.One[T]
	if unsafeKernels {
		swapFn = swap.OneUnchecked[T]
	}

	// ring[k] holds the index pair (i, j) for the k-th swap still
	// pending prefetch+apply.
	type pending struct{ i, j int }
	ring := make([]pending, depth)

	// Prime the ring with the first `depth` draws, issuing prefetches
	// as we go but not yet applying any swaps.
	i := n - 1
	for k := 0; k < depth; k, i = k+1, i-1 {
		j := sample.Index(rng, i+1)
		ring[k] = pending{i, j}
		prefetch.Write(unsafe.Pointer(&data[j]))
	}

	// Steady state: for each new draw, prefetch its target and apply
	// the oldest still-pending swap.
	pos := 0
	for ; i > 0; i-- {
		j := sample.Index(rng, i+1)
		prefetch.Write(unsafe.Pointer(&data[j]))

		old := ring[pos]
		swapFn(data, old.i, old.j)
		ring[pos] = pending{i, j}
		pos = (pos + 1) % depth
	}

	// Drain the ring: apply the remaining `depth` pending swaps in the
	// order they were queued (oldest first).
	for k := 0; k < depth; k++ {
		p := ring[pos]
		swapFn(data, p.i, p.j)
		pos = (pos + 1) % depth
	}
}

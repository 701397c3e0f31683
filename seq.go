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

package ripshuffle

import (
	"github.com/manpen/rip-shuffle/internal/fy"
	"github.com/manpen/rip-shuffle/internal/scatter"
	"github.com/manpen/rip-shuffle/rng"
)

// SeqShuffle performs an in-place, uniformly random permutation of s
// using rng as its sole source of randomness.
func SeqShuffle[T any](s []T, r rng.Source) {
	SeqShuffleWithOptions(s, r, DefaultOptions())
}

// SeqShuffleWithOptions is SeqShuffle with caller-supplied tuning.
func SeqShuffleWithOptions[T any](s []T, r rng.Source, opts Options) {
	opts.normalize()
	seqShuffle(s, r, &opts)
}

// seqShuffle is the recursive scatter-shuffle core (spec.md §4.6),
// grounded on the teacher's hwy/contrib/sort.sortImpl recursion shape:
// below a cache-sized threshold, hand off to the base case; otherwise
// partition into k buckets and recurse into each. Unlike sortImpl,
// there is no comparison and no early-out (every bucket, however small,
// still needs its own shuffle), so the recursion bottoms out purely on
// size, never on "already in order".
func seqShuffle[T any](data []T, r rng.Source, opts *Options) {
	n := len(data)
	if n <= 1 {
		return
	}
	if n <= opts.CacheThreshold {
		shuffleBaseCase(data, r, opts)
		return
	}

	k := opts.FanOut
	for k > 1 && n < k*opts.StagingBlockSize {
		k >>= 1
	}
	if k <= 1 {
		shuffleBaseCase(data, r, opts)
		return
	}

	lengths := scatter.Partition(data, k, opts.StagingBlockSize, r)
	start := 0
	for _, l := range lengths {
		seqShuffle(data[start:start+l], r, opts)
		start += l
	}
}

// shuffleBaseCase dispatches to fy's plain or prefetched Fisher-Yates,
// per Options.Prefetch and the fixed small-run cutoff below which the
// ring bookkeeping isn't worth it (spec.md §4.3's "P" is only applied
// above that cutoff).
func shuffleBaseCase[T any](data []T, r rng.Source, opts *Options) {
	if opts.Prefetch && len(data) > fyPrefetchThreshold {
		fy.ShufflePrefetched(data, r, opts.PrefetchDepth, opts.UnsafeKernels)
		return
	}
	fy.Shuffle(data, r, opts.UnsafeKernels)
}

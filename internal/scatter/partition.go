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

// Package scatter implements the two-phase random scatter partitioner:
// given a slice and a fan-out k, it rearranges the slice in place into
// k contiguous regions of randomly-drawn lengths such that, conditioned
// on the length vector, every arrangement consistent with those lengths
// is equally likely. This is the partition step the recursive
// scatter-shuffle (seq.go/par.go) uses to fan a large input out into
// k independently-shufflable regions.
//
// Sort-based partitioners (the teacher's hwy/contrib/sort.partitionBase
// family) move each element into the side a comparison decides; here
// there is no comparison; the side is decided by an unbiased draw
// against each bucket's remaining capacity, via the Fenwick-tree
// order-statistic search in fenwick.go. The in-place, single-scan,
// cycle-following rearrangement below is the random-assignment analogue
// of the same swap-into-place technique partitionBase uses.
package scatter

import (
	"sort"
	"unsafe"

	"github.com/manpen/rip-shuffle/internal/prefetch"
	"github.com/manpen/rip-shuffle/internal/sample"
)

// Partition rearranges data in place into contiguous regions and
// returns the length of each region (summing to len(data)). There are k
// regions, except that k is lowered to len(data) when it exceeds it, and
// k == 1 or an empty input yields the single length {len(data)}.
// b is the configured staging block size (config.Options.StagingBlockSize).
// It does not change the swap granularity below: each routed item moves
// via a single element swap, chased through its displacement chain (see
// DESIGN.md's note on this simplification relative to spec.md's literal
// B-sized block flush). It is instead applied as the write-prefetch
// read-ahead distance during the scan, one of the two roles spec.md
// assigns the staging block size.
//
// Partition panics if k <= 0. Callers are expected to have already
// reduced k so that len(data) >= k (spec.md §4.6's "reduced if len <
// k*B" belongs to the caller, since only the caller knows B's role in
// that decision); Partition itself only clamps k to len(data).
func Partition[T any](data []T, k, b int, rng Source) []int {
	n := len(data)
	if k <= 0 {
		panic("scatter: k must be positive")
	}
	if k == 1 || n == 0 {
		return []int{n}
	}
	if k > n {
		k = n
	}

	lengths := bucketLengths(rng, n, k)

	regionStart := make([]int, k)
	for i := 1; i < k; i++ {
		regionStart[i] = regionStart[i-1] + lengths[i-1]
	}

	head := append([]int(nil), regionStart...)
	quota := newFenwick(lengths)

	bucketOf := func(p int) int {
		i := sort.Search(k, func(i int) bool { return regionStart[i] > p }) - 1
		return i
	}

	for p := 0; p < n; p++ {
		if b > 0 && p+b < n {
			prefetch.Write(unsafe.Pointer(&data[p+b]))
		}

		home := bucketOf(p)
		if p < head[home] {
			// Already settled by an earlier displacement chain.
			continue
		}

		item := data[p]
		for {
			t := quota.findByOrder(sample.Index(rng, quota.total))
			quota.add(t, -1)
			dst := head[t]
			head[t]++

			if dst == p {
				data[p] = item
				break
			}
			displaced := data[dst]
			data[dst] = item
			item = displaced
		}
	}

	return lengths
}

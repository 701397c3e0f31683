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

package scatter

// fenwick is a Fenwick (binary indexed) tree over the k remaining bucket
// quotas, supporting O(log k) point updates and O(log k) "find the
// bucket owning order-statistic j" queries. The target-bucket draw in
// Phase 1 (spec.md §4.5's "cumulative-quota search") needs exactly
// this: k is bounded (<=256 by construction, see config.Options) so a
// flat linear scan would also be correct, but re-deriving the
// cumulative array after every single-item decrement makes a naive
// scan O(n*k) overall; the tree keeps partitioning O(n log k).
type fenwick struct {
	tree  []int
	n     int
	total int
}

func newFenwick(counts []int) *fenwick {
	f := &fenwick{tree: make([]int, len(counts)+1), n: len(counts)}
	for i, c := range counts {
		f.add(i, c)
	}
	return f
}

func (f *fenwick) add(i, delta int) {
	f.total += delta
	for i++; i <= f.n; i += i & (-i) {
		f.tree[i] += delta
	}
}

// findByOrder returns the smallest index i whose cumulative (inclusive)
// count exceeds order, i.e. the bucket that owns the order-th item (0
// indexed) among all remaining quota slots laid out bucket by bucket.
func (f *fenwick) findByOrder(order int) int {
	pos := 0
	remaining := order + 1
	logSize := 1
	for logSize*2 <= f.n {
		logSize *= 2
	}
	for pw := logSize; pw > 0; pw >>= 1 {
		next := pos + pw
		if next <= f.n && f.tree[next] < remaining {
			pos = next
			remaining -= f.tree[next]
		}
	}
	return pos
}

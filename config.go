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

// Tuning constants. Defaults are conservative across hardware per
// spec.md's design notes: the exact cache threshold and fan-out that
// minimize wall-clock time are machine dependent, so these are starting
// points, overridable per call via Options.
const (
	// DefaultFanOut is the number of buckets (k) a partition step splits
	// into. Must be a power of two in [2, 256].
	DefaultFanOut = 256

	// DefaultStagingBlockSize is B. The fan-out is halved until
	// len >= k*B, and the partitioner uses B as its write-prefetch
	// read-ahead distance. No items are reserved as a per-bucket staging
	// area: the partitioner moves single elements, not B-sized blocks.
	DefaultStagingBlockSize = 64

	// DefaultCacheThreshold is the slice length (in items, not bytes)
	// below which a leaf is handed directly to the base-case shuffle
	// instead of being partitioned further. 32768 items is a
	// conservative stand-in for "fits comfortably in L2" across a wide
	// range of element sizes; callers with large elements or an unusual
	// cache hierarchy should tune this via Options.
	DefaultCacheThreshold = 32 * 1024

	// DefaultPrefetchDepth is the lookahead (P) used by the prefetched
	// Fisher-Yates variant.
	DefaultPrefetchDepth = 8

	// DefaultParallelThreshold is the minimum slice length before
	// ParShuffle bothers forking instead of falling through to
	// SeqShuffle.
	DefaultParallelThreshold = 1 << 20

	// fyPrefetchThreshold is the minimum run length before the base case
	// switches from plain Fisher-Yates to the prefetched ring variant;
	// below this the ring's bookkeeping outweighs its benefit.
	fyPrefetchThreshold = 32
)

// Options configures a shuffle call, overriding the package defaults.
// Every numeric field left at zero is replaced by its package default
// when the options are used, so the zero value works but leaves
// UnsafeKernels and Prefetch off; DefaultOptions turns both on. Start
// from DefaultOptions and mutate the fields that need to change,
// mirroring the teacher's
// plain-struct configuration style (e.g.
// hwy/contrib/matmul.WorkersPool's constructor parameters) rather than
// a functional-options API the corpus doesn't use anywhere.
type Options struct {
	// FanOut is k, the number of buckets per partition step.
	FanOut int
	// StagingBlockSize is B, used to reduce the fan-out for short slices
	// and as the partitioner's prefetch read-ahead distance (see
	// DefaultStagingBlockSize).
	StagingBlockSize int
	// CacheThreshold is the item-count leaf cutoff for recursion.
	CacheThreshold int
	// PrefetchDepth is P, the lookahead for prefetched Fisher-Yates.
	PrefetchDepth int
	// ParallelThreshold is the minimum length before ParShuffle forks.
	ParallelThreshold int
	// MaxParallelism bounds the number of goroutines ParShuffle may use
	// concurrently. Zero means runtime.GOMAXPROCS(0).
	MaxParallelism int
	// UnsafeKernels selects the unchecked, pointer-arithmetic swap
	// kernel (internal/swap.OneUnchecked) over the bounds-checked one
	// in the base-case shuffle.
	UnsafeKernels bool
	// Prefetch enables write-prefetch hints in the base-case shuffle.
	Prefetch bool
}

// DefaultOptions returns the package's conservative defaults.
func DefaultOptions() Options {
	return Options{
		FanOut:            DefaultFanOut,
		StagingBlockSize:  DefaultStagingBlockSize,
		CacheThreshold:    DefaultCacheThreshold,
		PrefetchDepth:     DefaultPrefetchDepth,
		ParallelThreshold: DefaultParallelThreshold,
		MaxParallelism:    0,
		UnsafeKernels:     true,
		Prefetch:          true,
	}
}

// normalize validates and repairs an Options value in place, panicking
// on a fan-out that can never be made sound (not a power of two). This
// is the module's one runtime check in an otherwise "caller enforces
// preconditions" design (spec.md §7): a public entry point silently
// misbehaving on a bad FanOut is worse than a clear panic naming the
// bad field.
func (o *Options) normalize() {
	if o.FanOut <= 0 {
		o.FanOut = DefaultFanOut
	}
	if o.FanOut&(o.FanOut-1) != 0 {
		panic("ripshuffle: Options.FanOut must be a power of two")
	}
	if o.FanOut > 256 {
		o.FanOut = 256
	}
	if o.StagingBlockSize <= 0 {
		o.StagingBlockSize = DefaultStagingBlockSize
	}
	if o.CacheThreshold <= 0 {
		o.CacheThreshold = DefaultCacheThreshold
	}
	if o.PrefetchDepth <= 0 {
		o.PrefetchDepth = DefaultPrefetchDepth
	}
	if o.ParallelThreshold <= 0 {
		o.ParallelThreshold = DefaultParallelThreshold
	}
}

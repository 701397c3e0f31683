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
	"runtime"

	"github.com/manpen/rip-shuffle/internal/fork"
	"github.com/manpen/rip-shuffle/internal/scatter"
	"github.com/manpen/rip-shuffle/rng"
)

// ParShuffle performs an in-place, uniformly random permutation of s,
// parallelized across a worker pool bounded by Options.MaxParallelism
// (GOMAXPROCS by default). r must be splittable so each forked subtask
// gets its own independent RNG stream (spec.md §9 "RNG splitting").
func ParShuffle[T any](s []T, r rng.Splittable) {
	ParShuffleWithOptions(s, r, DefaultOptions())
}

// ParShuffleWithOptions is ParShuffle with caller-supplied tuning.
func ParShuffleWithOptions[T any](s []T, r rng.Splittable, opts Options) {
	opts.normalize()
	maxParallelism := opts.MaxParallelism
	if maxParallelism <= 0 {
		maxParallelism = runtime.GOMAXPROCS(0)
	}
	pool := fork.NewPool(maxParallelism)
	parShuffle(s, r, pool, &opts)
}

// ParShuffleSeedWith seeds an internal Splittable RNG from r (which
// need not itself be splittable — spec.md §6's par_shuffle_seed_with)
// and runs ParShuffle with it.
func ParShuffleSeedWith[T any](s []T, r rng.Source) {
	ParShuffleSeedWithOptions(s, r, DefaultOptions())
}

// ParShuffleSeedWithOptions is ParShuffleSeedWith with caller-supplied
// tuning.
func ParShuffleSeedWithOptions[T any](s []T, r rng.Source, opts Options) {
	var seed [32]byte
	r.FillBytes(seed[:])
	child := rng.NewXoshiro256SS(0)
	child.SeedFromBytes(seed)
	ParShuffleWithOptions(s, child, opts)
}

// parShuffle is seqShuffle's parallel counterpart (spec.md §4.7): below
// Options.ParallelThreshold it simply defers to the sequential
// recursion (forking has no payoff on a run that small); above it, the
// partition step is the same as seqShuffle's, but each resulting bucket
// is handed to the shared fork.Pool as its own recursive task, with its
// own split-off RNG.
func parShuffle[T any](data []T, r rng.Splittable, pool *fork.Pool, opts *Options) {
	n := len(data)
	if n <= 1 {
		return
	}
	if n <= opts.ParallelThreshold {
		seqShuffle(data, r, opts)
		return
	}

	k := opts.FanOut
	for k > 1 && n < k*opts.StagingBlockSize {
		k >>= 1
	}
	if k <= 1 {
		seqShuffle(data, r, opts)
		return
	}

	lengths := scatter.Partition(data, k, opts.StagingBlockSize, r)

	// Every child RNG is split off here, on the single goroutine driving
	// this recursive step, before any task is handed to the pool — the
	// xoshiro256** core is not goroutine-safe, so splitting must happen
	// before ownership transfers, never inside the forked closures.
	children := make([]rng.Splittable, len(lengths))
	for i := range children {
		children[i] = r.Split()
	}

	tasks := make([]func(), len(lengths))
	start := 0
	for i, l := range lengths {
		bucket := data[start : start+l]
		childRNG := children[i]
		tasks[i] = func() {
			parShuffle(bucket, childRNG, pool, opts)
		}
		start += l
	}
	pool.Fork(tasks...)
}

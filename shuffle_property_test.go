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
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manpen/rip-shuffle/rng"
)

func identity(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	return data
}

func assertIsPermutation(t *testing.T, data []int) {
	t.Helper()
	got := append([]int(nil), data...)
	sort.Ints(got)
	for i, v := range got {
		require.Equal(t, i, v, "not a permutation: missing or duplicate value")
	}
}

// smallOptions forces real partitioning even on the small slices these
// tests use, instead of every case trivially falling straight into the
// Fisher-Yates base case.
func smallOptions() Options {
	o := DefaultOptions()
	o.FanOut = 2
	o.StagingBlockSize = 1
	o.CacheThreshold = 8
	o.ParallelThreshold = 8
	return o
}

func TestSeqShuffle_ConservationAndPermutation(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 8, 100, 5000} {
		data := identity(n)
		SeqShuffleWithOptions(data, rng.NewXoshiro256SS(uint64(n)), smallOptions())
		assertIsPermutation(t, data)
	}
}

func TestSeqShuffle_EdgeCasesN0N1N2(t *testing.T) {
	assert.NotPanics(t, func() {
		SeqShuffle([]int{}, rng.NewXoshiro256SS(1))
	})

	one := []int{42}
	SeqShuffle(one, rng.NewXoshiro256SS(1))
	assert.Equal(t, []int{42}, one)

	const trials = 100000
	headsAtZero := 0
	for i := 0; i < trials; i++ {
		pair := []int{0, 1}
		SeqShuffle(pair, rng.NewXoshiro256SS(uint64(i)))
		if pair[0] == 0 {
			headsAtZero++
		}
	}
	// Expect ~50% within 4 standard deviations of a fair coin.
	mean := trials * 0.5
	stddev := math.Sqrt(trials * 0.5 * 0.5)
	assert.InDelta(t, mean, float64(headsAtZero), 4*stddev)
}

func TestSeqShuffle_N3ExhaustiveDistribution(t *testing.T) {
	const trials = 1000000
	counts := map[[3]int]int{}
	for i := 0; i < trials; i++ {
		data := []int{0, 1, 2}
		SeqShuffle(data, rng.NewXoshiro256SS(uint64(i)))
		counts[[3]int{data[0], data[1], data[2]}]++
	}
	require.Len(t, counts, 6, "all 6 permutations of 3 elements must appear")
	for perm, c := range counts {
		freq := float64(c) / trials
		assert.Truef(t, freq >= 0.160 && freq <= 0.173,
			"permutation %v has skewed frequency %.4f", perm, freq)
	}
}

func TestSeqShuffle_PositionalUniformity(t *testing.T) {
	const n = 1024
	const trials = 2000
	counts := make([][]int, n)
	for i := range counts {
		counts[i] = make([]int, n)
	}

	for trial := 0; trial < trials; trial++ {
		data := identity(n)
		SeqShuffle(data, rng.NewXoshiro256SS(uint64(trial)))
		for pos, v := range data {
			counts[pos][v]++
		}
	}

	expected := float64(trials) / n
	for pos := 0; pos < n; pos++ {
		chi2 := 0.0
		for v := 0; v < n; v++ {
			d := float64(counts[pos][v]) - expected
			chi2 += d * d / expected
		}
		// n-1 degrees of freedom, n=1024: a generous bound that only
		// trips on genuine positional bias, not sampling noise.
		assert.Lessf(t, chi2, float64(n)*1.5, "position %d looks biased (chi2=%.1f)", pos, chi2)
	}
}

func TestSeqShuffle_LargeN_ValidPermutation(t *testing.T) {
	if testing.Short() {
		t.Skip("large-n permutation check skipped in -short mode")
	}
	const n = 1_000_000
	data := identity(n)
	SeqShuffle(data, rng.NewXoshiro256SS(123456789))
	assertIsPermutation(t, data)
}

func TestParShuffle_ConservationAndPermutation(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 8, 100, 5000} {
		data := identity(n)
		ParShuffleWithOptions(data, rng.NewXoshiro256SS(uint64(n)), smallOptions())
		assertIsPermutation(t, data)
	}
}

func TestParShuffle_FallsThroughBelowThreshold(t *testing.T) {
	opts := DefaultOptions()
	data := identity(10)
	ParShuffleWithOptions(data, rng.NewXoshiro256SS(1), opts)
	assertIsPermutation(t, data)
}

func TestParShuffleSeedWith_ConservationAndPermutation(t *testing.T) {
	data := identity(2000)
	ParShuffleSeedWithOptions(data, rng.NewXoshiro256SS(77), smallOptions())
	assertIsPermutation(t, data)
}

// TestSeqVsPar_DistributionalEquivalence checks that, for a fixed small
// n, the sequential and parallel code paths both cover the full set of
// permutations with comparable frequency — they must implement the same
// distribution, not merely each individually look uniform.
func TestSeqVsPar_DistributionalEquivalence(t *testing.T) {
	const trials = 200000
	seqCounts := map[[4]int]int{}
	parCounts := map[[4]int]int{}
	opts := smallOptions()

	for i := 0; i < trials; i++ {
		a := []int{0, 1, 2, 3}
		SeqShuffleWithOptions(a, rng.NewXoshiro256SS(uint64(2*i)), opts)
		seqCounts[[4]int{a[0], a[1], a[2], a[3]}]++

		b := []int{0, 1, 2, 3}
		ParShuffleWithOptions(b, rng.NewXoshiro256SS(uint64(2*i+1)), opts)
		parCounts[[4]int{b[0], b[1], b[2], b[3]}]++
	}

	require.Len(t, seqCounts, 24)
	require.Len(t, parCounts, 24)
	for perm := range seqCounts {
		sf := float64(seqCounts[perm]) / trials
		pf := float64(parCounts[perm]) / trials
		assert.InDeltaf(t, sf, pf, 0.01, "permutation %v: seq=%.4f par=%.4f", perm, sf, pf)
	}
}

func TestSeqShuffle_Deterministic(t *testing.T) {
	a := identity(777)
	b := identity(777)
	SeqShuffle(a, rng.NewXoshiro256SS(2024))
	SeqShuffle(b, rng.NewXoshiro256SS(2024))
	assert.Equal(t, a, b)
}

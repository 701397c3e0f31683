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

import (
	"math"

	"github.com/manpen/rip-shuffle/internal/sample"
)

// Source is the randomness capability the scatter partitioner needs.
type Source interface {
	sample.Source32
	sample.Source64
}

// binomialInversionThreshold bounds n*p for the direct CDF-inversion
// step (BINV): above it, sampleBinomial recursively halves the trial
// count instead, since q^n underflows (and the inversion scan would
// take too many steps) once n*p grows large. Splitting a Binomial(n,p)
// draw into Binomial(n/2,p) + Binomial(n/2,p) is exact (binomials with
// the same p are additive over independent trial counts), so recursion
// preserves the distribution while keeping each leaf's n*p small.
const binomialInversionThreshold = 30

// sampleBinomial draws an exact Binomial(n, p) variate.
func sampleBinomial(rng Source, n int, p float64) int {
	if n <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return n
	}
	if p > 0.5 {
		// Symmetry keeps q^n from underflowing on the q side instead.
		return n - sampleBinomial(rng, n, 1-p)
	}
	if float64(n)*p > binomialInversionThreshold && n > 1 {
		n1 := n / 2
		n2 := n - n1
		return sampleBinomial(rng, n1, p) + sampleBinomial(rng, n2, p)
	}
	return binomialInversion(rng, n, p)
}

// binomialInversion is the BINV algorithm: scan the CDF from x=0 up,
// accumulating the PMF via its recurrence, until it exceeds a uniform
// draw. Cheap (expected O(n*p) steps) whenever n*p is small, which
// sampleBinomial guarantees by recursive halving before calling this.
func binomialInversion(rng Source, n int, p float64) int {
	q := 1 - p
	u := uniformFloat64(rng)

	r := math.Pow(q, float64(n))
	c := r
	x := 0
	for u > c && x < n {
		x++
		r *= (float64(n-x+1) / float64(x)) * (p / q)
		c += r
	}
	return x
}

// uniformFloat64 draws a uniform value in [0, 1) using the top 53 bits
// of a 64-bit word (the standard construction for a float64 with full
// mantissa precision and no rounding bias toward 1.0).
func uniformFloat64(rng Source) float64 {
	return float64(rng.Uint64()>>11) / (1 << 53)
}

// bucketLengths draws the target bucket-length vector (L_1..L_k) for
// partitioning n items into k buckets, via the sequential chain spec.md
// §4.5 describes: draw L_1 with mean n/k from the full population, then
// L_2 with mean (n-L_1)/(k-1) from what's left, and so on, with the
// final bucket taking the exact remainder. Implemented as a chain of
// Binomial(remaining, 1/bucketsLeft) draws, which is the standard exact
// decomposition of a symmetric Multinomial(n; 1/k,...,1/k): conditioning
// on the counts drawn so far, the next bucket's count among what
// remains is Binomial with probability 1/bucketsLeft by the multinomial
// reduction property. This gives each L_i a closed-form marginal mean
// and variance (spec.md §9's "test... against closed-form mean and
// variance"), unlike an ad hoc BTPE-style hypergeometric sampler.
func bucketLengths(rng Source, n, k int) []int {
	lengths := make([]int, k)
	remaining := n
	for i := 0; i < k-1; i++ {
		bucketsLeft := k - i
		if remaining <= 0 {
			continue
		}
		l := sampleBinomial(rng, remaining, 1.0/float64(bucketsLeft))
		lengths[i] = l
		remaining -= l
	}
	lengths[k-1] = remaining
	return lengths
}

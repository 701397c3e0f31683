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

// Package sample implements bounded-integer sampling: drawing a
// uniformly distributed index in [0, n) from a uniform random word,
// without the bias a naive modulo reduction introduces.
package sample

import "math/bits"

// Source32 is the minimal capability needed for 32-bit bounded
// sampling.
type Source32 interface {
	Uint32() uint32
}

// Source64 is the minimal capability needed for 64-bit bounded
// sampling.
type Source64 interface {
	Uint64() uint64
}

// Uint32n draws a uniformly distributed value in [0, n) using Lemire's
// nearly-divisionless method: multiply a random 32-bit word by n, take
// the high 32 bits of the 64-bit product as the candidate, and only
// fall back to rejection sampling (which needs an actual division) when
// the low 32 bits land in the small range where naive multiplication
// would be biased.
//
// Precondition: n > 0 (caller-enforced, per spec.md §4.1 "no failure
// modes" — this function does not check n itself on the hot path; for
// n==0 it returns 0, which lies outside the empty range [0, 0)).
func Uint32n(src Source32, n uint32) uint32 {
	hi, lo := bits.Mul32(src.Uint32(), n)
	if lo < n {
		// Threshold is n values wrapped mod n, i.e. (2^32 - n) mod n,
		// computed without an initial division using -n’s unsigned
		// wraparound.
		threshold := -n % n
		for lo < threshold {
			hi, lo = bits.Mul32(src.Uint32(), n)
		}
	}
	return hi
}

// Uint64n is Uint32n's 64-bit counterpart, used when n exceeds the
// 32-bit range (spec.md §4.1: "For n ≤ 2^32 use 32-bit word; else
// 64-bit").
func Uint64n(src Source64, n uint64) uint64 {
	hi, lo := bits.Mul64(src.Uint64(), n)
	if lo < n {
		threshold := -n % n
		for lo < threshold {
			hi, lo = bits.Mul64(src.Uint64(), n)
		}
	}
	return hi
}

// combinedSource adapts anything exposing both Uint32 and Uint64 (the
// rng.Source shape) so Index can pick the cheaper 32-bit path when n is
// small.
type combinedSource interface {
	Source32
	Source64
}

// Index draws a uniformly distributed value in [0, n) from src, using
// the 32-bit method when n fits in 32 bits and the 64-bit method
// otherwise. This is the entry point the rest of the shuffle core calls
// (spec.md §4.1's sample_index).
//
// Precondition: n > 0.
func Index(src combinedSource, n int) int {
	if n <= 0 {
		panic("sample: Index requires n > 0")
	}
	if uint64(n) <= 1<<32-1 {
		return int(Uint32n(src, uint32(n)))
	}
	return int(Uint64n(src, uint64(n)))
}

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

package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOne_ExchangesPair(t *testing.T) {
	a := []string{"x", "y", "z"}
	One(a, 0, 2)
	assert.Equal(t, []string{"z", "y", "x"}, a)
}

func TestOne_SameIndexIsNoop(t *testing.T) {
	a := []int{1, 2, 3}
	One(a, 1, 1)
	assert.Equal(t, []int{1, 2, 3}, a)
}

func TestOne_StructElements(t *testing.T) {
	type pair struct{ a, b int64 }
	x := []pair{{1, 2}, {3, 4}, {5, 6}}
	One(x, 0, 2)
	assert.Equal(t, []pair{{5, 6}, {3, 4}, {1, 2}}, x)
}

func TestOneUnchecked_ExchangesPair(t *testing.T) {
	a := []string{"x", "y", "z"}
	OneUnchecked(a, 0, 2)
	assert.Equal(t, []string{"z", "y", "x"}, a)
}

func TestOneUnchecked_SameIndexIsNoop(t *testing.T) {
	a := []int{1, 2, 3}
	OneUnchecked(a, 1, 1)
	assert.Equal(t, []int{1, 2, 3}, a)
}

func TestOneUnchecked_MatchesOne(t *testing.T) {
	checked := []int{1, 2, 3, 4, 5}
	unchecked := append([]int(nil), checked...)
	One(checked, 1, 4)
	OneUnchecked(unchecked, 1, 4)
	assert.Equal(t, checked, unchecked)
}

func TestBlocks_ExchangesContents(t *testing.T) {
	a := []int{1, 2, 3, 4}
	b := []int{10, 20, 30, 40}
	Blocks(a, b, 4)
	assert.Equal(t, []int{10, 20, 30, 40}, a)
	assert.Equal(t, []int{1, 2, 3, 4}, b)
}

func TestBlocks_PartialLength(t *testing.T) {
	a := []int{1, 2, 3, 4}
	b := []int{10, 20, 30, 40}
	Blocks(a, b, 2)
	assert.Equal(t, []int{10, 20, 3, 4}, a)
	assert.Equal(t, []int{1, 2, 30, 40}, b)
}

func TestBlocksUnchecked_ExchangesContents(t *testing.T) {
	a := []int64{1, 2, 3, 4, 5}
	b := []int64{-1, -2, -3, -4, -5}
	want_a := append([]int64(nil), b...)
	want_b := append([]int64(nil), a...)

	BlocksUnchecked(a, b, len(a))
	assert.Equal(t, want_a, a)
	assert.Equal(t, want_b, b)
}

func TestBlocksUnchecked_LargerThanScratchBuffer(t *testing.T) {
	const n = 10000
	a := make([]int64, n)
	b := make([]int64, n)
	for i := range a {
		a[i] = int64(i)
		b[i] = int64(-i)
	}
	want_a := append([]int64(nil), b...)
	want_b := append([]int64(nil), a...)

	BlocksUnchecked(a, b, n)
	assert.Equal(t, want_a, a)
	assert.Equal(t, want_b, b)
}

func TestBlocksUnchecked_ZeroLength(t *testing.T) {
	a := []int{1}
	b := []int{2}
	assert.NotPanics(t, func() { BlocksUnchecked(a, b, 0) })
	assert.Equal(t, 1, a[0])
	assert.Equal(t, 2, b[0])
}

func TestBlocksUnchecked_StructElements(t *testing.T) {
	type pair struct{ a, b int64 }
	x := []pair{{1, 2}, {3, 4}}
	y := []pair{{5, 6}, {7, 8}}
	wantX := append([]pair(nil), y...)
	wantY := append([]pair(nil), x...)

	BlocksUnchecked(x, y, 2)
	assert.Equal(t, wantX, x)
	assert.Equal(t, wantY, y)
}

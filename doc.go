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

// Package ripshuffle provides in-place, uniform random shuffling of
// mutable slices.
//
// SeqShuffle is a drop-in, typically faster replacement for a textbook
// Fisher-Yates shuffle. ParShuffle and ParShuffleSeedWith additionally
// exploit a cache-aware recursive partitioning scheme (the "scatter
// shuffle") to fan the work out across goroutines, for throughput on
// large slices.
//
// All three entry points are strictly in-place: the only memory used
// beyond the caller's slice is O(k) scratch per recursive frame, where k
// is the configured fan-out (see Options).
package ripshuffle

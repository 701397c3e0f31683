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

//go:build amd64

package prefetch

import "golang.org/x/sys/cpu"

// archAvailable treats AVX2 support as a proxy for "a CPU generation
// with a hardware prefetcher aggressive enough for the touch-read trick
// to pay for its extra load" — the same role a feature flag plays in
// the teacher's dispatch_amd64.go (cpu.X86.HasAVX gating hasF16C
// there), just gating a cache hint instead of a SIMD code path.
func archAvailable() bool {
	return cpu.X86.HasAVX2
}

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

// Package fork implements a bounded fork-join primitive for the
// parallel scatter-shuffle (par.go / spec.md §4.7, §5). It is grounded
// on the teacher's hwy/contrib/matmul worker pool: that pool exposes a
// StartIfAvailable method that runs the submitted closure inline when
// every worker is already busy, rather than blocking the caller — the
// same inline-fallback discipline Pool.Fork uses here, and for the same
// reason: a parallel scatter-shuffle recurses into forked subtasks that
// themselves fork, so a pool that blocks when full can deadlock (every
// worker waiting on a task queue that nothing will ever drain). The
// teacher's other pool (hwy/contrib/workerpool, a persistent channel
// fed by a fixed goroutine set with no inline fallback) was rejected for
// exactly that reason — see DESIGN.md.
package fork

import "sync"

// Pool bounds the number of concurrently in-flight forked tasks. A
// zero-value (or nil) Pool is usable and behaves as NewPool(1); use
// NewPool to set a specific budget.
type Pool struct {
	tokens chan struct{}
}

// NewPool returns a Pool that allows up to maxParallelism tasks on
// spawned goroutines at once, alongside the tasks Fork runs inline on
// the calling goroutine. Values below 1 are treated as 1, so even the
// smallest pool runs one task on its own goroutine while the caller
// runs the rest inline.
func NewPool(maxParallelism int) *Pool {
	if maxParallelism < 1 {
		maxParallelism = 1
	}
	p := &Pool{tokens: make(chan struct{}, maxParallelism)}
	for i := 0; i < maxParallelism; i++ {
		p.tokens <- struct{}{}
	}
	return p
}

// Fork runs tasks, executing each either on a spawned goroutine (if a
// token is free) or inline on the calling goroutine (if the pool is
// momentarily exhausted). It blocks until every task — inline or
// spawned — has completed.
//
// A panic in any task is captured, the remaining tasks are still
// joined, and the first captured panic is re-raised in the calling
// goroutine once every task has finished (spec.md §5's panic/join
// discipline: a worker's panic must not silently vanish in a detached
// goroutine, and must not prevent siblings from being joined).
func (p *Pool) Fork(tasks ...func()) {
	if len(tasks) == 0 {
		return
	}
	if p == nil || p.tokens == nil {
		p = NewPool(1)
	}

	var wg sync.WaitGroup
	var panicOnce sync.Once
	var firstPanic any

	recordPanic := func(r any) {
		panicOnce.Do(func() { firstPanic = r })
	}

	runGuarded := func(task func()) {
		defer func() {
			if r := recover(); r != nil {
				recordPanic(r)
			}
		}()
		task()
	}

	for _, task := range tasks {
		task := task
		select {
		case <-p.tokens:
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { p.tokens <- struct{}{} }()
				runGuarded(task)
			}()
		default:
			runGuarded(task)
		}
	}

	wg.Wait()
	if firstPanic != nil {
		panic(firstPanic)
	}
}

// Budget reports how many tasks could currently be spawned onto their
// own goroutine before Fork starts running the rest inline.
func (p *Pool) Budget() int {
	if p == nil || p.tokens == nil {
		return 1
	}
	return len(p.tokens)
}

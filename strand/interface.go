/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package strand gives a FIFO, non-overlapping execution context backed by
// another scheduler. Tasks posted to a Strand never run concurrently with
// each other, regardless of how many goroutines post them or how
// concurrent the underlying Scheduler is.
package strand

import (
	"sync"

	"github.com/nabbar/zephyrgo/sender"
)

// Strand is a sender.Scheduler that serializes execution of every task
// posted to it, in the order they were posted.
type Strand interface {
	sender.Scheduler

	// Pending returns the number of tasks currently queued, not counting
	// one that may be running.
	Pending() int
}

// New returns a Strand that drains its queue by reposting itself onto
// base, one task at a time, until the queue is empty.
func New(base sender.Scheduler) Strand {
	return &strand{base: base}
}

type strand struct {
	base sender.Scheduler

	mu      sync.Mutex
	queue   []func()
	running bool
}

func (s *strand) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.queue)
}

// Schedule appends task to the strand's queue. If no drain is currently
// in flight, it kicks one off on the base scheduler.
func (s *strand) Schedule(task func()) {
	if task == nil {
		return
	}

	s.mu.Lock()
	s.queue = append(s.queue, task)
	start := !s.running
	if start {
		s.running = true
	}
	s.mu.Unlock()

	if start {
		s.base.Schedule(s.runOne)
	}
}

// runOne pops and executes exactly one task, then reposts itself; a run
// that finds the queue empty clears the running flag instead. It never
// holds the strand's mutex while executing the task, so a task that
// itself calls Schedule on this strand cannot deadlock.
func (s *strand) runOne() {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.running = false
		s.mu.Unlock()
		return
	}

	task := s.queue[0]
	s.queue = s.queue[1:]
	s.mu.Unlock()

	func() {
		defer func() {
			_ = recover()
		}()
		task()
	}()

	s.base.Schedule(s.runOne)
}

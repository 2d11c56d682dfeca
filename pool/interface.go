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

// Package pool implements a fixed-size worker pool draining a shared task
// queue. It satisfies sender.Scheduler so senders can be started onto it
// directly.
package pool

import (
	"context"

	libatm "github.com/nabbar/zephyrgo/internal/atomic"
	"github.com/nabbar/zephyrgo/metrics"
	"github.com/nabbar/zephyrgo/sender"
)

// Pool is a fixed-size worker pool. Schedule enqueues a task for the next
// free worker; RequestStop drains the queue and joins every worker.
type Pool interface {
	sender.Scheduler

	// Size returns the number of worker goroutines.
	Size() int

	// RequestStop closes the task queue, lets every already-queued task
	// run to completion, and waits for all workers to exit or for ctx to
	// expire. It is idempotent: calling it more than once is a no-op
	// after the first call has returned.
	RequestStop(ctx context.Context) error

	// IsRunning reports whether the pool still accepts new tasks.
	IsRunning() bool

	// WithMetrics wires m as the pool's metrics sink, labelled name;
	// every Schedule call afterward updates the queue-depth gauge. Safe
	// to call at any point in the pool's lifetime.
	WithMetrics(name string, m metrics.Registry)
}

// New starts n worker goroutines and returns the pool handle. n is
// clamped to at least 1.
func New(n int) Pool {
	if n < 1 {
		n = 1
	}

	p := &workerPool{
		tasks:   make(chan func(), n*4),
		size:    n,
		running: libatm.NewValue[bool](),
		metrics: metrics.Noop(),
	}

	p.start()

	return p
}

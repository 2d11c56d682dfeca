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

package pool

import (
	"context"
	"sync"

	libatm "github.com/nabbar/zephyrgo/internal/atomic"
	"github.com/nabbar/zephyrgo/metrics"
)

type workerPool struct {
	tasks chan func()
	size  int

	wg       sync.WaitGroup
	running  libatm.Value[bool]
	stopOnce sync.Once

	name    string
	metrics metrics.Registry
}

func (p *workerPool) WithMetrics(name string, m metrics.Registry) {
	if m == nil {
		m = metrics.Noop()
	}
	p.name = name
	p.metrics = m
}

func (p *workerPool) start() {
	p.running.Store(true)

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)

		go func() {
			defer p.wg.Done()

			for task := range p.tasks {
				runTask(task)
			}
		}()
	}
}

// runTask executes task, recovering a panic so one bad task never kills a
// worker goroutine.
func runTask(task func()) {
	defer func() {
		_ = recover()
	}()

	task()
}

func (p *workerPool) Size() int {
	return p.size
}

func (p *workerPool) IsRunning() bool {
	return p.running.Load()
}

// Schedule enqueues task for a free worker. Once the pool has been asked
// to stop, Schedule runs task synchronously on the caller's goroutine
// instead of silently dropping it: a task handed to Schedule is a
// commitment to run it, not merely to accept it if convenient.
func (p *workerPool) Schedule(task func()) {
	if task == nil {
		return
	}

	if !p.IsRunning() {
		runTask(task)
		return
	}

	defer func() {
		// the channel may have been closed by RequestStop between the
		// IsRunning check above and this send; fall back to running the
		// task inline rather than losing it or panicking the caller.
		if rec := recover(); rec != nil {
			runTask(task)
		}
	}()

	p.tasks <- task
	p.metrics.QueueDepth(p.name, float64(len(p.tasks)))
}

func (p *workerPool) RequestStop(ctx context.Context) error {
	var stopErr error

	p.stopOnce.Do(func() {
		p.running.Store(false)
		close(p.tasks)

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			stopErr = ErrorDrainTimeout.Error()
		}
	})

	return stopErr
}

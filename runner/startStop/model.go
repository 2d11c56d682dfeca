/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package startStop

import (
	"context"
	"sync"
	"time"

	libatm "github.com/nabbar/zephyrgo/internal/atomic"
)

type runner struct {
	mu    sync.Mutex
	start Func
	stop  Func

	running libatm.Value[bool]
	since   libatm.Value[time.Time]

	// last and history carry the error interface, whose dynamic type
	// varies across calls, so they stay behind mu instead of going
	// through the atomic.Value-backed Value[T] (sync/atomic.Value
	// panics if the concrete type stored changes between calls).
	last    error
	history []error
}

func newRunner(start, stop Func) *runner {
	return &runner{
		start:   start,
		stop:    stop,
		running: libatm.NewValue[bool](),
		since:   libatm.NewValue[time.Time](),
	}
}

func (r *runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running.Load() {
		return nil
	}

	var err error
	if r.start != nil {
		err = r.start(ctx)
	}

	r.recordLocked(err)

	if err == nil {
		r.running.Store(true)
		r.since.Store(time.Now())
	}

	return err
}

func (r *runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running.Load() {
		return nil
	}

	var err error
	if r.stop != nil {
		err = r.stop(ctx)
	}

	r.recordLocked(err)
	r.running.Store(false)

	return err
}

func (r *runner) Restart(ctx context.Context) error {
	if err := r.Stop(ctx); err != nil {
		return err
	}

	return r.Start(ctx)
}

func (r *runner) IsRunning() bool {
	return r.running.Load()
}

func (r *runner) Uptime() time.Duration {
	if !r.running.Load() {
		return 0
	}

	return time.Since(r.since.Load())
}

func (r *runner) ErrorsLast() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.last
}

func (r *runner) ErrorsList() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]error, len(r.history))
	copy(out, r.history)

	return out
}

// recordLocked must be called with mu held.
func (r *runner) recordLocked(err error) {
	if err == nil {
		return
	}

	r.last = err
	r.history = append(r.history, err)
}

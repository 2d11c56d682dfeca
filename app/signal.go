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

package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Signal is a process-global notify/wait gate: any number of goroutines
// may Wait concurrently, and a single Notify wakes all of them. Reset
// rearms it for a later Init/Run/Stop cycle.
type Signal struct {
	mu       sync.Mutex
	ch       chan struct{}
	signaled bool
}

// NewSignal returns an unsignaled Signal.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{})}
}

// Wait blocks until Notify has been called or ctx is done, whichever
// comes first.
func (s *Signal) Wait(ctx context.Context) {
	s.mu.Lock()
	ch := s.ch
	s.mu.Unlock()

	select {
	case <-ch:
	case <-ctx.Done():
	}
}

// Notify wakes every current and future Wait call until the next Reset.
// Calling it more than once before a Reset is a no-op.
func (s *Signal) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.signaled {
		return
	}
	s.signaled = true
	close(s.ch)
}

// Reset rearms the Signal for another wait cycle.
func (s *Signal) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.signaled {
		return
	}
	s.signaled = false
	s.ch = make(chan struct{})
}

// IsSignaled reports whether Notify has fired since the last Reset.
func (s *Signal) IsSignaled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signaled
}

// WireOS arranges for the first delivery of any signal in sig (SIGINT and
// SIGTERM if none given) to call Notify, exactly the "signal wiring"
// spec.md §4.10 describes ("SIGINT and SIGTERM both call a process-global
// notifier"). It returns a stop function that releases the underlying
// os/signal registration; callers not holding onto it may simply ignore
// it and let the process exit tear it down. Grounded on the
// signal.NotifyContext idiom used for graceful shutdown wiring throughout
// the ecosystem.
func (s *Signal) WireOS(sig ...os.Signal) context.CancelFunc {
	if len(sig) == 0 {
		sig = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	ctx, stop := signal.NotifyContext(context.Background(), sig...)

	go func() {
		<-ctx.Done()
		s.Notify()
	}()

	return stop
}

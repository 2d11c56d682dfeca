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

// Package startStop wraps a pair of idempotent start/stop functions with
// running-state tracking, uptime, and last-error bookkeeping. It backs the
// lifecycle of the TCP/UDP servers and of the TCP client.
package startStop

import (
	"context"
	"time"
)

// Func is a lifecycle hook invoked with the context passed to Start or
// Stop. Overlapping Start/Stop calls run one at a time under the runner's
// mutex; none of them cancels another's context.
type Func func(ctx context.Context) error

// StartStop tracks the running state of a single start/stop pair.
type StartStop interface {
	// Start runs the configured start function unless already running.
	// Calling Start while running is a no-op returning nil.
	Start(ctx context.Context) error
	// Stop runs the configured stop function unless already stopped.
	// Calling Stop while stopped is a no-op returning nil.
	Stop(ctx context.Context) error
	// Restart calls Stop followed by Start.
	Restart(ctx context.Context) error

	IsRunning() bool
	// Uptime returns the duration since the last successful Start, or 0
	// when not running.
	Uptime() time.Duration

	// ErrorsLast returns the error returned by the most recent Start or
	// Stop call, or nil.
	ErrorsLast() error
	// ErrorsList returns every error recorded across the runner's
	// lifetime, oldest first.
	ErrorsList() []error
}

// New builds a StartStop runner from a start and a stop function. Either
// may be nil, in which case the corresponding transition is a no-op.
func New(start, stop Func) StartStop {
	return newRunner(start, stop)
}

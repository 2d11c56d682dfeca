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

// Package ioengine wraps the Linux io_uring submission/completion interface
// behind five synchronous-from-the-caller's-viewpoint primitives: accept,
// recv, send, recv_from, send_to, plus a sticky cancel. Concurrency comes
// from running many session loops on many worker-pool threads, each
// blocked in exactly one engine call at a time (spec.md §4.1) -- the
// engine itself never spawns a completion-dispatch goroutine.
package ioengine

import (
	"github.com/nabbar/zephyrgo/endpoint"
	liberr "github.com/nabbar/zephyrgo/errors"
	"github.com/nabbar/zephyrgo/logger"
)

// Engine is the process-wide handle owning one io_uring ring. It is safe
// for concurrent use by many goroutines; the implementation serializes
// submit+wait pairs with a mutex (spec.md §5, "Shared-resource policy").
type Engine interface {
	// Accept waits for a single inbound connection on listenFD and
	// returns the accepted client fd (SOCK_NONBLOCK). A negative return
	// carries an engine-level failure; callers translate it to a
	// session-level error.
	Accept(listenFD int) (int, liberr.Error)

	// Recv reads into buf from fd. 0 means the peer closed the
	// connection (success path, not an error); negative is a failure.
	Recv(fd int, buf []byte) (int, liberr.Error)

	// Send writes buf to fd.
	Send(fd int, buf []byte) (int, liberr.Error)

	// RecvFrom reads a single datagram into buf and reports the sender's
	// address.
	RecvFrom(fd int, buf []byte) (int, endpoint.Endpoint, liberr.Error)

	// SendTo writes buf as a single datagram to peer.
	SendTo(fd int, buf []byte, peer endpoint.Endpoint) (int, liberr.Error)

	// Cancel sets a sticky flag: every in-flight and future operation
	// returns ErrorCancelled immediately. A no-op SQE is submitted so any
	// thread currently blocked in io_uring_enter wakes up.
	Cancel()

	// Close releases the ring's mmap regions and closes the ring fd.
	// Callers must ensure no operation is in flight.
	Close() error
}

// Option configures a New call.
type Option func(*engine)

// WithLogger injects the structured logger every op failure is reported
// through, instead of being silently swallowed.
func WithLogger(fn logger.FuncLog) Option {
	return func(e *engine) {
		e.log = fn
	}
}

// WithQueueDepth overrides the default submission/completion ring size
// (128 entries), rounded up to the next power of two by the kernel.
func WithQueueDepth(n uint32) Option {
	return func(e *engine) {
		if n > 0 {
			e.depth = n
		}
	}
}

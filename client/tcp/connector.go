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

// Package tcp is the outbound counterpart of server/tcp: a connector that
// dials a remote endpoint and a Connection that drives the resulting
// socket through a Controller, both reusing the same io_uring engine the
// server side uses for recv/send (spec.md's Non-goals exclude clustering,
// TLS, HTTP/2 and WebSocket, never outbound plain-TCP connections).
package tcp

import (
	"golang.org/x/sys/unix"

	"github.com/nabbar/zephyrgo/endpoint"
	"github.com/nabbar/zephyrgo/ioengine"
	"github.com/nabbar/zephyrgo/sender"
)

// Connect dials addr on pool (so the blocking connect(2) call never runs
// on the caller's own goroutine) and completes with the connected,
// non-blocking file descriptor.
func Connect(pool sender.Scheduler, _ ioengine.Engine, addr endpoint.Endpoint) sender.Sender[int] {
	return sender.LetValue(sender.Schedule(pool), func(struct{}) sender.Sender[int] {
		fd, err := dial(addr)
		if err != nil {
			return sender.Error[int](err)
		}
		return sender.Just(fd)
	})
}

// dial creates a socket, connects it to addr, then switches it to
// non-blocking mode so the shared engine's Recv/Send can drive it
// (spec.md §5, "the accepted client fd (SOCK_NONBLOCK)" -- the same
// invariant holds for an outbound fd once connected).
func dial(addr endpoint.Endpoint) (int, error) {
	domain := unix.AF_INET
	if addr.Family() == endpoint.FamilyV6 {
		domain = unix.AF_INET6
	}

	fd, err := unix.Socket(domain, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, err
	}

	sa, serr := addr.Sockaddr()
	if serr != nil {
		_ = unix.Close(fd)
		return -1, serr
	}

	if err = unix.Connect(fd, sa); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}

	if err = unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}

	return fd, nil
}

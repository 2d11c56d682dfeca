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

// Package group supervises a set of independent TCP or UDP servers (e.g.
// one application listening on several ports) that have no ordering
// relationship between them (spec.md §5, "Between a session and its
// server's accept loop, no ordering" extends naturally to "between two
// independent servers, no ordering"). Unlike app.Application, whose
// plugins fan out strictly in declaration order, a Group starts and
// stops its members concurrently and reports the first failure.
package group

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	liberr "github.com/nabbar/zephyrgo/errors"
)

// Member is the Start(ctx)/Stop(ctx) shape server/tcp.Server,
// server/udp.Server and client/tcp.Client already implement.
type Member interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Group is an unordered collection of Members started and stopped
// together.
type Group struct {
	members []Member
}

// New builds a Group over members, in no particular order.
func New(members ...Member) *Group {
	return &Group{members: members}
}

// Start launches every member concurrently and waits for all of them to
// finish starting, returning the first error encountered (the rest keep
// starting; a plain errgroup.Group leaves ctx uncancelled by a sibling's
// Start failure since starting one server has no bearing on another's
// ability to bind its own socket).
func (g *Group) Start(ctx context.Context) error {
	var eg errgroup.Group

	for _, m := range g.members {
		m := m
		eg.Go(func() error {
			return m.Start(ctx)
		})
	}

	if err := eg.Wait(); err != nil {
		return liberr.As(err)
	}

	return nil
}

// Stop stops every member concurrently and waits for all of them,
// returning the first error encountered. Every member's Stop is still
// invoked even if an earlier one errors, since each owns an independent
// socket that must be released regardless of a sibling's failure.
func (g *Group) Stop(ctx context.Context) error {
	var eg errgroup.Group
	var mu sync.Mutex
	var firstErr error

	for _, m := range g.members {
		m := m
		eg.Go(func() error {
			err := m.Stop(ctx)

			mu.Lock()
			if err != nil && firstErr == nil {
				firstErr = err
			}
			mu.Unlock()

			return nil
		})
	}

	_ = eg.Wait()

	if firstErr != nil {
		return liberr.As(firstErr)
	}

	return nil
}

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

// Package sem wraps golang.org/x/sync/semaphore with a worker/drain
// vocabulary. The TCP server uses it to cap concurrently open sessions.
package sem

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Sem bounds concurrent work to a fixed capacity and lets the owner wait
// for every outstanding worker to finish draining.
type Sem interface {
	// Weighted returns the underlying semaphore for advanced use (e.g.
	// acquiring more than one slot at once).
	Weighted() *semaphore.Weighted

	// NewWorker blocks until a slot is free or ctx is done.
	NewWorker(ctx context.Context) error
	// NewWorkerTry acquires a slot without blocking. Returns false if none
	// is immediately available.
	NewWorkerTry() bool
	// DeferWorker releases the slot acquired by NewWorker/NewWorkerTry.
	// Meant to be called with defer right after a successful acquire.
	DeferWorker()

	// WaitAll blocks until every outstanding worker has called
	// DeferWorker, by acquiring the full capacity of the semaphore.
	WaitAll(ctx context.Context) error
	// DeferMain releases the full capacity acquired by WaitAll.
	DeferMain()

	// Cap returns the configured capacity.
	Cap() int64
}

// New returns a Sem with the given worker capacity.
func New(n int64) Sem {
	return &sem{
		w: semaphore.NewWeighted(n),
		n: n,
	}
}

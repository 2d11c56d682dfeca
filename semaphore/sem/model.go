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

package sem

import (
	"context"

	"golang.org/x/sync/semaphore"
)

type sem struct {
	w *semaphore.Weighted
	n int64
}

func (s *sem) Weighted() *semaphore.Weighted {
	return s.w
}

func (s *sem) Cap() int64 {
	return s.n
}

func (s *sem) NewWorker(ctx context.Context) error {
	return s.w.Acquire(ctx, 1)
}

func (s *sem) NewWorkerTry() bool {
	return s.w.TryAcquire(1)
}

func (s *sem) DeferWorker() {
	s.w.Release(1)
}

func (s *sem) WaitAll(ctx context.Context) error {
	return s.w.Acquire(ctx, s.n)
}

func (s *sem) DeferMain() {
	s.w.Release(s.n)
}

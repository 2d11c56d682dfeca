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

package group_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/zephyrgo/server/group"
)

type fakeMember struct {
	startDelay time.Duration
	startErr   error
	stopErr    error
	started    int32
	stopped    int32
}

func (f *fakeMember) Start(_ context.Context) error {
	time.Sleep(f.startDelay)
	atomic.AddInt32(&f.started, 1)
	return f.startErr
}

func (f *fakeMember) Stop(_ context.Context) error {
	atomic.AddInt32(&f.stopped, 1)
	return f.stopErr
}

var _ = Describe("Group", func() {
	It("starts every member concurrently, not sequentially", func() {
		a := &fakeMember{startDelay: 50 * time.Millisecond}
		b := &fakeMember{startDelay: 50 * time.Millisecond}

		g := group.New(a, b)

		begin := time.Now()
		Expect(g.Start(context.Background())).To(Succeed())
		elapsed := time.Since(begin)

		Expect(elapsed).To(BeNumerically("<", 90*time.Millisecond), "members should start concurrently, not sequentially")
		Expect(a.started).To(BeEquivalentTo(1))
		Expect(b.started).To(BeEquivalentTo(1))
	})

	It("propagates the first start error", func() {
		boom := errors.New("bind failed")
		a := &fakeMember{startErr: boom}
		b := &fakeMember{}

		g := group.New(a, b)

		Expect(g.Start(context.Background())).To(HaveOccurred())
	})

	It("stops every member even after one fails", func() {
		a := &fakeMember{stopErr: errors.New("already closed")}
		b := &fakeMember{}

		g := group.New(a, b)

		Expect(g.Stop(context.Background())).To(HaveOccurred())
		Expect(a.stopped).To(BeEquivalentTo(1))
		Expect(b.stopped).To(BeEquivalentTo(1))
	})
})

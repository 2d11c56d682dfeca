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

package pool_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/zephyrgo/pool"
)

func stopPool(p pool.Pool) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	Expect(p.RequestStop(ctx)).To(Succeed())
}

var _ = Describe("Pool", func() {
	It("runs every scheduled task", func() {
		p := pool.New(4)

		var n int64
		var wg sync.WaitGroup
		wg.Add(100)

		for i := 0; i < 100; i++ {
			p.Schedule(func() {
				atomic.AddInt64(&n, 1)
				wg.Done()
			})
		}

		wg.Wait()
		Expect(atomic.LoadInt64(&n)).To(BeEquivalentTo(100))
		stopPool(p)
	})

	It("makes RequestStop idempotent", func() {
		p := pool.New(2)

		stopPool(p)
		stopPool(p)
		Expect(p.IsRunning()).To(BeFalse())
	})

	It("still runs a task scheduled after stop", func() {
		p := pool.New(1)
		stopPool(p)

		var ran bool
		var wg sync.WaitGroup
		wg.Add(1)

		p.Schedule(func() {
			ran = true
			wg.Done()
		})

		wg.Wait()
		Expect(ran).To(BeTrue())
	})

	It("does not kill a worker when a scheduled task panics", func() {
		p := pool.New(1)

		var wg sync.WaitGroup
		wg.Add(2)

		p.Schedule(func() {
			defer wg.Done()
			panic("boom")
		})

		var ran bool
		p.Schedule(func() {
			defer wg.Done()
			ran = true
		})

		wg.Wait()
		Expect(ran).To(BeTrue())
		stopPool(p)
	})
})

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

package strand_test

import (
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/zephyrgo/pool"
	"github.com/nabbar/zephyrgo/strand"
)

var _ = Describe("Strand", func() {
	It("preserves FIFO order across scheduled tasks", func() {
		p := pool.New(8)
		s := strand.New(p)

		var (
			mu  sync.Mutex
			got []int
		)

		var wg sync.WaitGroup
		wg.Add(50)

		for i := 0; i < 50; i++ {
			i := i
			s.Schedule(func() {
				mu.Lock()
				got = append(got, i)
				mu.Unlock()
				wg.Done()
			})
		}

		wg.Wait()

		for i, v := range got {
			Expect(v).To(Equal(i), "strand did not preserve FIFO order at index %d", i)
		}
	})

	It("never runs two scheduled tasks concurrently", func() {
		p := pool.New(16)
		s := strand.New(p)

		var active int32
		var maxActive int32
		var wg sync.WaitGroup
		wg.Add(100)

		for i := 0; i < 100; i++ {
			s.Schedule(func() {
				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				wg.Done()
			})
		}

		wg.Wait()
		Expect(atomic.LoadInt32(&maxActive)).To(BeEquivalentTo(1))
	})

	It("does not stall the queue when a task panics", func() {
		p := pool.New(4)
		s := strand.New(p)

		var wg sync.WaitGroup
		wg.Add(2)

		s.Schedule(func() {
			defer wg.Done()
			panic("boom")
		})

		var ran bool
		s.Schedule(func() {
			defer wg.Done()
			ran = true
		})

		wg.Wait()
		Expect(ran).To(BeTrue())
	})
})

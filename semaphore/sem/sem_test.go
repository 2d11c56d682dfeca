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

package sem_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/zephyrgo/semaphore/sem"
)

var _ = Describe("Sem", func() {
	It("caps worker try-acquire at its capacity and frees a slot on defer", func() {
		s := sem.New(2)

		Expect(s.NewWorkerTry()).To(BeTrue())
		Expect(s.NewWorkerTry()).To(BeTrue())
		Expect(s.NewWorkerTry()).To(BeFalse())

		s.DeferWorker()
		Expect(s.NewWorkerTry()).To(BeTrue())
	})

	It("blocks WaitAll until every worker has been deferred", func() {
		s := sem.New(1)
		Expect(s.NewWorker(context.Background())).To(Succeed())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := s.WaitAll(ctx)
		Expect(err).To(HaveOccurred(), "WaitAll must not succeed while a worker still holds its slot")

		s.DeferWorker()

		Expect(s.WaitAll(context.Background())).To(Succeed())
		s.DeferMain()
	})
})

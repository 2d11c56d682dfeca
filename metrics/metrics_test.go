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

package metrics_test

import (
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/zephyrgo/metrics"
)

var _ = Describe("Registry", func() {
	It("tracks accepted, rejected, and session counters and serves them", func() {
		reg, err := metrics.New()
		Expect(err).To(BeNil())

		reg.Accepted("tcp-echo")
		reg.Accepted("tcp-echo")
		reg.Rejected("tcp-echo")
		reg.SessionOpened("tcp-echo")
		reg.SessionOpened("tcp-echo")
		reg.SessionClosed("tcp-echo")
		reg.QueueDepth("pool-0", 12)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/metrics", nil)
		reg.Handler().ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(200))

		body := rec.Body.String()
		Expect(body).To(ContainSubstring(`zephyrgo_accepted_total{server="tcp-echo"} 2`))
		Expect(body).To(ContainSubstring(`zephyrgo_rejected_total{server="tcp-echo"} 1`))
		Expect(body).To(ContainSubstring(`zephyrgo_active_sessions{server="tcp-echo"} 1`))
		Expect(body).To(ContainSubstring(`zephyrgo_pool_queue_depth{pool="pool-0"} 12`))
	})
})

var _ = Describe("Noop registry", func() {
	It("never panics on any call", func() {
		n := metrics.Noop()

		Expect(func() {
			n.Accepted("x")
			n.Rejected("x")
			n.SessionOpened("x")
			n.SessionClosed("x")
			n.QueueDepth("x", 1)
			_ = n.Handler()
			_ = n.Registerer()
		}).ToNot(Panic())
	})
})

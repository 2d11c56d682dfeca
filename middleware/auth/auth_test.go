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

package auth

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	codec "github.com/nabbar/zephyrgo/codec/http"
	liberr "github.com/nabbar/zephyrgo/errors"
	"github.com/nabbar/zephyrgo/middleware"
	"github.com/nabbar/zephyrgo/sender"
)

var _ = Describe("Auth middleware", func() {
	It("accepts a matching bearer token", func() {
		mw := New("s3cr3t")

		req := &codec.Request{Header: codec.Header{}}
		req.Header.Set("Authorization", "Bearer s3cr3t")

		out, err := sender.SyncWait(mw(req))
		Expect(err).To(BeNil())
		Expect(out).To(BeIdenticalTo(req))
	})

	It("rejects a missing Authorization header", func() {
		mw := New("s3cr3t")

		_, err := sender.SyncWait(mw(&codec.Request{Header: codec.Header{}}))
		Expect(err).NotTo(BeNil())
		Expect(liberr.As(err).IsCode(middleware.ErrorUnauthorized)).To(BeTrue())
	})

	It("rejects a wrong bearer token", func() {
		mw := New("s3cr3t")

		req := &codec.Request{Header: codec.Header{}}
		req.Header.Set("Authorization", "Bearer wrong")

		_, err := sender.SyncWait(mw(req))
		Expect(err).NotTo(BeNil())
		Expect(liberr.As(err).IsCode(middleware.ErrorUnauthorized)).To(BeTrue())
	})
})

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

package router

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	codec "github.com/nabbar/zephyrgo/codec/http"
	"github.com/nabbar/zephyrgo/sender"
)

func okHandler(body string) Handler {
	return func(_ *codec.Request, _ Context) sender.Sender[*codec.Response] {
		r := codec.NewResponse()
		r.Body = []byte(body)
		return sender.Just(r)
	}
}

var _ = Describe("Router", func() {
	It("dispatches a GET /", func() {
		r := New(nil)
		Expect(r.Get("/", okHandler("Welcome!"))).To(BeNil())

		resp, err := sender.SyncWait(r.Dispatch(&codec.Request{Method: "GET", Path: "/"}))
		Expect(err).To(BeNil())
		Expect(string(resp.Body)).To(Equal("Welcome!"))
	})

	It("binds named path parameters", func() {
		r := New(nil)
		Expect(r.Get("/users/:id/posts/:postID", func(req *codec.Request, _ Context) sender.Sender[*codec.Response] {
			resp := codec.NewResponse()
			resp.Body = []byte(fmt.Sprintf("%s/%s", req.PathParams["id"], req.PathParams["postID"]))
			return sender.Just(resp)
		})).To(BeNil())

		resp, err := sender.SyncWait(r.Dispatch(&codec.Request{Method: "GET", Path: "/users/42/posts/7"}))
		Expect(err).To(BeNil())
		Expect(string(resp.Body)).To(Equal("42/7"))
	})

	It("matches a trailing wildcard", func() {
		r := New(nil)
		Expect(r.Any("/assets/*", okHandler("asset"))).To(BeNil())

		resp, _ := sender.SyncWait(r.Dispatch(&codec.Request{Method: "POST", Path: "/assets/css/app.css"}))
		Expect(string(resp.Body)).To(Equal("asset"))
	})

	It("returns 404 when nothing matches", func() {
		r := New(nil)
		Expect(r.Get("/", okHandler("x"))).To(BeNil())

		resp, err := sender.SyncWait(r.Dispatch(&codec.Request{Method: "GET", Path: "/nope"}))
		Expect(err).To(BeNil())
		Expect(resp.Status).To(Equal(404))
	})

	It("lets the first registered match win", func() {
		r := New(nil)
		Expect(r.Get("/users/:id", okHandler("first"))).To(BeNil())
		Expect(r.Get("/users/:id", okHandler("second"))).To(BeNil())

		resp, _ := sender.SyncWait(r.Dispatch(&codec.Request{Method: "GET", Path: "/users/1"}))
		Expect(string(resp.Body)).To(Equal("first"))
	})

	It("returns 404 on a method mismatch", func() {
		r := New(nil)
		Expect(r.Post("/users", okHandler("created"))).To(BeNil())

		resp, _ := sender.SyncWait(r.Dispatch(&codec.Request{Method: "GET", Path: "/users"}))
		Expect(resp.Status).To(Equal(404))
	})

	It("shares the router Context across handlers", func() {
		ctx := NewContext(map[string]interface{}{"db": "handle"})
		r := New(ctx)
		Expect(r.Get("/", func(_ *codec.Request, c Context) sender.Sender[*codec.Response] {
			v, ok := c.Get("db")
			resp := codec.NewResponse()
			if ok {
				resp.Body = []byte(v.(string))
			}
			return sender.Just(resp)
		})).To(BeNil())

		resp, _ := sender.SyncWait(r.Dispatch(&codec.Request{Method: "GET", Path: "/"}))
		Expect(string(resp.Body)).To(Equal("handle"))
	})

	It("rejects a pattern with an empty capture name", func() {
		_, _, err := compilePattern("/users/:")
		Expect(err).NotTo(BeNil())
		Expect(err.IsCode(ErrorInvalidPattern)).To(BeTrue())
	})
})

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
	codec "github.com/nabbar/zephyrgo/codec/http"
	liberr "github.com/nabbar/zephyrgo/errors"
	"github.com/nabbar/zephyrgo/sender"
)

// Router holds an ordered list of routes plus a shared read-only context.
// Once built, both are safe for concurrent reads from every session
// (spec.md §5, "the router and its context are immutable after
// construction").
type Router struct {
	ctx    Context
	routes []*route
}

// New returns an empty Router carrying ctx as its shared resource map.
func New(ctx Context) *Router {
	if ctx == nil {
		ctx = NewContext(nil)
	}
	return &Router{ctx: ctx}
}

// AddRoute compiles pattern once and appends it to the registration-order
// list; the first route whose method and pattern both match wins at
// Dispatch time.
func (r *Router) AddRoute(method, pattern string, handler Handler) liberr.Error {
	re, names, err := compilePattern(pattern)
	if err != nil {
		return err
	}

	r.routes = append(r.routes, &route{
		method:  method,
		raw:     pattern,
		re:      re,
		names:   names,
		handler: handler,
	})

	return nil
}

// Get, Post, Put, Delete, Patch are method shorthands for AddRoute
// (spec.md §4.6).
func (r *Router) Get(pattern string, h Handler) liberr.Error    { return r.AddRoute("GET", pattern, h) }
func (r *Router) Post(pattern string, h Handler) liberr.Error   { return r.AddRoute("POST", pattern, h) }
func (r *Router) Put(pattern string, h Handler) liberr.Error    { return r.AddRoute("PUT", pattern, h) }
func (r *Router) Delete(pattern string, h Handler) liberr.Error { return r.AddRoute("DELETE", pattern, h) }
func (r *Router) Patch(pattern string, h Handler) liberr.Error  { return r.AddRoute("PATCH", pattern, h) }
func (r *Router) Any(pattern string, h Handler) liberr.Error    { return r.AddRoute(MethodAny, pattern, h) }

// Dispatch matches req against the registration-ordered route table,
// attaches captured path parameters, and invokes the winning handler. No
// match produces a ready 404 sender -- success path, not an error
// (spec.md §7, NoRoute).
func (r *Router) Dispatch(req *codec.Request) sender.Sender[*codec.Response] {
	for _, rt := range r.routes {
		params, ok := rt.matches(req.Method, req.Path)
		if !ok {
			continue
		}

		req.PathParams = params
		return rt.handler(req, r.ctx)
	}

	return sender.Just(notFound())
}

func notFound() *codec.Response {
	resp := codec.NewResponse()
	resp.Status = 404
	resp.StatusText = "Not Found"
	return resp
}

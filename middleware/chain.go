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

// Package middleware wraps a router.Router call in a left-to-right chain
// of request-transforming stages (spec.md C7). Each stage may mutate the
// request, succeed with a new one, or short-circuit with a typed error
// that a common recovery stage maps to a protocol response.
package middleware

import (
	codec "github.com/nabbar/zephyrgo/codec/http"
	liberr "github.com/nabbar/zephyrgo/errors"
	"github.com/nabbar/zephyrgo/router"
	"github.com/nabbar/zephyrgo/sender"
)

// Middleware transforms a request, possibly asynchronously, possibly
// rejecting it (spec.md §3, "Middleware").
type Middleware func(req *codec.Request) sender.Sender[*codec.Request]

// Result is what Pipeline.Call hands back to the session loop: the
// number of input bytes consumed, the bytes to write (if any), and
// whether the session should close after writing them.
type Result struct {
	Consumed int
	Response []byte
	Close    bool
}

// Pipeline is the per-connection object the TCP session drives: feed it
// the session's accumulated receive buffer, get back zero-or-one
// responses plus how many bytes were consumed (spec.md §4.7/§4.8). A
// fresh Pipeline is built per connection so its internal "need more
// bytes" bookkeeping and the per-connection correlation id are never
// shared across sessions (spec.md §4.7, "one per new connection").
type Pipeline interface {
	Call(buf []byte) sender.Sender[Result]
}

// Factory produces one fresh Pipeline per new TCP connection.
type Factory func() Pipeline

// Builder accumulates a router and a middleware chain; Build freezes them
// into a Factory. Router and middlewares are shared read-only state
// across every Pipeline the factory produces.
type Builder struct {
	router      *router.Router
	middlewares []Middleware
}

// NewBuilder starts a Builder targeting r.
func NewBuilder(r *router.Router) *Builder {
	return &Builder{router: r}
}

// Use appends mw to the end of the chain, applied in registration order
// before the router is consulted.
func (b *Builder) Use(mw Middleware) *Builder {
	b.middlewares = append(b.middlewares, mw)
	return b
}

// Build returns a Factory producing fresh http Pipelines, each wrapping
// the frozen router+middleware chain from this Builder.
func (b *Builder) Build() Factory {
	router := b.router
	mws := append([]Middleware(nil), b.middlewares...)

	return func() Pipeline {
		return &httpPipeline{router: router, chain: mws}
	}
}

type httpPipeline struct {
	router *router.Router
	chain  []Middleware
}

// Call runs one full parse -> middleware chain -> route -> serialize
// cycle against buf, the pattern described in spec.md §4.7's ASCII
// diagram, composed entirely of let_value edges so a middleware error
// skips straight to the shared recovery stage.
func (p *httpPipeline) Call(buf []byte) sender.Sender[Result] {
	if !codec.IsComplete(buf) {
		return sender.Just(Result{})
	}

	req, consumed, perr := codec.Parse(buf)
	if perr != nil {
		if perr.IsCode(codec.ErrorIncomplete) {
			return sender.Just(Result{})
		}
		return sender.Just(Result{
			Consumed: len(buf),
			Response: codec.Serialize(errorResponse(400, "Bad Request")),
			Close:    true,
		})
	}

	start := sender.Just(req)

	var chained sender.Sender[*codec.Request] = start
	for _, mw := range p.chain {
		m := mw
		chained = sender.LetValue(chained, m)
	}

	withRoute := sender.LetValue(chained, func(r *codec.Request) sender.Sender[*codec.Response] {
		return p.router.Dispatch(r)
	})

	recovered := sender.UponError(withRoute, func(err error) *codec.Response {
		return recoveryResponse(err)
	})

	return sender.Then(recovered, func(resp *codec.Response) Result {
		return Result{Consumed: consumed, Response: codec.Serialize(resp)}
	})
}

func errorResponse(status int, text string) *codec.Response {
	r := codec.NewResponse()
	r.Status = status
	r.StatusText = text
	return r
}

// recoveryResponse implements the error-kind -> status-code table from
// spec.md §7: Unauthorized -> 401, everything else (ParseMalformed inside
// a middleware, or an uncaught handler error) -> 500. A 400 from a
// malformed request line is handled earlier in Call, before the chain
// even starts, since the codec never produces a *codec.Request to hand a
// middleware in that case.
func recoveryResponse(err error) *codec.Response {
	if le := liberr.As(err); le != nil && le.IsCode(ErrorUnauthorized) {
		return errorResponse(401, "Unauthorized")
	}
	return errorResponse(500, "Internal Server Error")
}

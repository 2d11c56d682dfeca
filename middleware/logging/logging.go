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

// Package logging provides a concrete middleware.Middleware that logs
// method and path for every request passing through it.
package logging

import (
	codec "github.com/nabbar/zephyrgo/codec/http"
	"github.com/nabbar/zephyrgo/logger"
	"github.com/nabbar/zephyrgo/middleware"
	"github.com/nabbar/zephyrgo/sender"
)

// New returns a Middleware that logs "<method> <path>" through log, the
// same request-entry line as the original's logging_middleware. A
// Middleware only sees the request on its way in (its return type is
// sender.Sender[*codec.Request], not the eventual response), so it has
// no way to observe when the router or any later stage finishes; it
// cannot attribute a latency to the request without a deeper hook into
// the pipeline than this middleware shape provides.
func New(log logger.FuncLog) middleware.Middleware {
	return func(req *codec.Request) sender.Sender[*codec.Request] {
		logger.Resolve(log).Entry(logger.Info, "request").
			Field("method", req.Method).
			Field("path", req.Path).
			Send()

		return sender.Just(req)
	}
}

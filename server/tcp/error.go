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

package tcp

import (
	liberr "github.com/nabbar/zephyrgo/errors"
)

const (
	// ErrorListenFailed is returned by Start when the listen socket could
	// not be created, bound or put into listening mode.
	ErrorListenFailed liberr.CodeError = liberr.MinPkgServer + iota + 1

	// ErrorAcceptFailed is logged (not returned) on an engine.Accept
	// failure; the accept loop backs off 100ms and re-arms.
	ErrorAcceptFailed

	// ErrorInvalidConfig is returned by NewFromConfig when the supplied
	// Config fails validator.v10 struct validation or its AcceptBackoff
	// does not parse. An unparseable Listen address returns the endpoint
	// package's own parse error instead.
	ErrorInvalidConfig
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgServer, message)
}

func message(code liberr.CodeError) string {
	switch code {
	case ErrorListenFailed:
		return "failed to create TCP listen socket"
	case ErrorAcceptFailed:
		return "accept failed"
	case ErrorInvalidConfig:
		return "invalid TCP server config"
	}

	return ""
}

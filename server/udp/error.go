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

package udp

import (
	liberr "github.com/nabbar/zephyrgo/errors"
)

const (
	// ErrorBindFailed is returned by Start when the datagram socket could
	// not be created or bound.
	ErrorBindFailed liberr.CodeError = liberr.MinPkgServerUDP + iota + 1

	// ErrorReceiveFailed is logged (not returned) on an engine.RecvFrom
	// failure; the receive loop re-arms regardless.
	ErrorReceiveFailed

	// ErrorInvalidConfig is returned by NewFromConfig when the supplied
	// Config fails validator.v10 struct validation.
	ErrorInvalidConfig
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgServerUDP, message)
}

func message(code liberr.CodeError) string {
	switch code {
	case ErrorBindFailed:
		return "failed to create UDP datagram socket"
	case ErrorReceiveFailed:
		return "recv_from failed"
	case ErrorInvalidConfig:
		return "invalid UDP server config"
	}

	return ""
}

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
	// ErrorConnectFailed is returned by Start when the outbound socket
	// could not be created or connected.
	ErrorConnectFailed liberr.CodeError = liberr.MinPkgClient + iota + 1

	// ErrorWriteFailed is logged when a reply cannot be written back to
	// the server.
	ErrorWriteFailed
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgClient, message)
}

func message(code liberr.CodeError) string {
	switch code {
	case ErrorConnectFailed:
		return "failed to connect outbound TCP socket"
	case ErrorWriteFailed:
		return "failed writing reply to server"
	}

	return ""
}

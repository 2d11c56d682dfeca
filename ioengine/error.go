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

package ioengine

import (
	liberr "github.com/nabbar/zephyrgo/errors"
)

const (
	// ErrorSetupFailed is returned by New when io_uring_setup fails; per
	// spec.md §4.1, ring initialization failure is the only fatal engine
	// error, surfaced at construction.
	ErrorSetupFailed liberr.CodeError = liberr.MinPkgIO + iota + 1
	ErrorMmapFailed
	ErrorCancelled
	ErrorSyscall
	ErrorUnsupportedAddress
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgIO, message)
}

func message(code liberr.CodeError) string {
	switch code {
	case ErrorSetupFailed:
		return "io_uring_setup failed"
	case ErrorMmapFailed:
		return "io_uring ring mmap failed"
	case ErrorCancelled:
		return "io engine was cancelled"
	case ErrorSyscall:
		return "io_uring_enter syscall failed"
	case ErrorUnsupportedAddress:
		return "peer address family not supported by this engine"
	}

	return ""
}

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

package errors

import (
	"runtime"
	"strconv"
)

// CodeError is a small numeric error code, scoped per package through the
// MinPkgXXX constants declared in modules.go.
type CodeError uint16

const (
	UnknownError   CodeError = 0
	UnknownMessage           = "unknown error"
)

// Message builds the textual message associated with a CodeError.
type Message func(code CodeError) string

var idMsgFct = make(map[CodeError]Message)

// RegisterIdFctMessage registers the message function serving every code in
// [minCode, minCode+100). Called once from each package's error.go init.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	idMsgFct[minCode] = fct
}

func messageFor(code CodeError) string {
	for min, fct := range idMsgFct {
		if code >= min && code < min+100 {
			if msg := fct(code); msg != "" {
				return msg
			}
		}
	}

	return UnknownMessage
}

func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

func (c CodeError) Int() int {
	return int(c)
}

func (c CodeError) String() string {
	return strconv.Itoa(c.Int())
}

// Error builds a new Error of this code, optionally chaining parents.
func (c CodeError) Error(parent ...error) Error {
	var fr runtime.Frame

	if pc, file, line, ok := runtime.Caller(1); ok {
		fr = runtime.Frame{File: file, Line: line, PC: pc}
	}

	e := &ers{
		c: c.Uint16(),
		e: messageFor(c),
		t: fr,
	}
	e.Add(parent...)

	return e
}

// ErrorParent is a convenience wrapper for Error with a single parent.
func (c CodeError) ErrorParent(parent error) Error {
	return c.Error(parent)
}

// IfError returns nil when err is nil, otherwise Error(err).
func (c CodeError) IfError(err error) Error {
	if err == nil {
		return nil
	}

	return c.Error(err)
}

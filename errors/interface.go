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

// Package errors provides the numeric-coded error type shared by every
// internal package of this module.
package errors

// Error is a numeric-coded error that can carry a chain of parent errors.
// It satisfies the standard error interface and works with errors.Is and
// errors.As through Unwrap.
type Error interface {
	error

	Code() uint16
	IsCode(code CodeError) bool
	HasCode(code CodeError) bool

	StringError() string

	Add(parent ...error)
	HasParent() bool
	GetParent(withMainError bool) []error

	GetTrace() string

	Unwrap() []error
}

// Is reports whether err is an Error produced by this package.
func Is(err error) bool {
	_, ok := err.(Error)
	return ok
}

// As extracts the Error from err if err is one, or wraps err into an
// UnknownError-coded Error otherwise. Returns nil for a nil err.
func As(err error) Error {
	if err == nil {
		return nil
	}

	if e, ok := err.(Error); ok {
		return e
	}

	return UnknownError.Error(err)
}

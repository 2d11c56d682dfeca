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

// Package http implements the RFC 7230-compatible stream codec (C5):
// IsComplete/Parse turn accumulated connection bytes into a Request,
// Serialize turns a Response back into bytes.
package http

// Header is a case-insensitive multimap, matching RFC 7230's allowance for
// a header field name to repeat.
type Header map[string][]string

func (h Header) Get(name string) string {
	if h == nil {
		return ""
	}
	v := h[canonicalHeader(name)]
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

func (h Header) Values(name string) []string {
	return h[canonicalHeader(name)]
}

func (h Header) Set(name, value string) {
	h[canonicalHeader(name)] = []string{value}
}

func (h Header) Add(name, value string) {
	n := canonicalHeader(name)
	h[n] = append(h[n], value)
}

func canonicalHeader(name string) string {
	b := []byte(name)
	upper := true
	for i, c := range b {
		switch {
		case c == '-':
			upper = true
		case upper:
			if c >= 'a' && c <= 'z' {
				b[i] = c - 'a' + 'A'
			}
			upper = false
		default:
			if c >= 'A' && c <= 'Z' {
				b[i] = c - 'A' + 'a'
			}
		}
	}
	return string(b)
}

// Request is the parsed request record (spec.md §3).
type Request struct {
	Method     string
	Path       string
	Version    string
	Header     Header
	PathParams map[string]string
	Body       []byte
}

// Response is the serialized response record. Status defaults to 200/"OK"
// when left zero (spec.md §3).
type Response struct {
	Status     int
	StatusText string
	Header     Header
	Body       []byte
}

// NewResponse builds a 200/"OK" response with an empty header map, ready
// for handlers to mutate.
func NewResponse() *Response {
	return &Response{Status: 200, StatusText: "OK", Header: Header{}}
}

func (r *Response) effectiveStatus() (int, string) {
	if r.Status == 0 {
		return 200, "OK"
	}
	if r.StatusText == "" {
		return r.Status, statusText(r.Status)
	}
	return r.Status, r.StatusText
}

func statusText(code int) string {
	switch code {
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 204:
		return "No Content"
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 404:
		return "Not Found"
	case 500:
		return "Internal Server Error"
	default:
		return ""
	}
}

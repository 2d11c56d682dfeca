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

// Package router matches a parsed HTTP request against an ordered table of
// (method, path-pattern) rules with named-parameter capture, and dispatches
// to a user handler (spec.md C6).
package router

import (
	"regexp"
	"strings"

	codec "github.com/nabbar/zephyrgo/codec/http"
	liberr "github.com/nabbar/zephyrgo/errors"
	"github.com/nabbar/zephyrgo/sender"
)

// MethodAny matches any HTTP method.
const MethodAny = "*"

// Handler processes a parsed request against the router's shared context
// and returns a sender of the response. A synchronous handler lifts its
// result with sender.Just; an asynchronous one returns an already-started
// composition.
type Handler func(req *codec.Request, ctx Context) sender.Sender[*codec.Response]

// Context is the router's shared, read-only, concurrently-readable
// resource map (spec.md §3, "Router").
type Context interface {
	Get(name string) (interface{}, bool)
}

type mapContext map[string]interface{}

func (m mapContext) Get(name string) (interface{}, bool) {
	v, ok := m[name]
	return v, ok
}

// NewContext builds a Context from a plain map, copied so the caller's map
// can be mutated afterward without affecting already-built routers.
func NewContext(values map[string]interface{}) Context {
	m := make(mapContext, len(values))
	for k, v := range values {
		m[k] = v
	}
	return m
}

// route is a compiled (method, pattern, handler) triple.
type route struct {
	method  string
	raw     string
	re      *regexp.Regexp
	names   []string
	handler Handler
}

// compilePattern turns "/users/:id/posts/*" into a fully-anchored regexp
// with one capture group per ":name" segment, in textual order, and
// escapes every other regex-meta character so path literals (dots,
// plusses) are matched verbatim.
func compilePattern(pattern string) (*regexp.Regexp, []string, liberr.Error) {
	if pattern == "" || pattern[0] != '/' {
		return nil, nil, ErrorInvalidPattern.Error()
	}

	var b strings.Builder
	var names []string

	b.WriteByte('^')

	segments := strings.Split(pattern, "/")
	for i, seg := range segments {
		if i > 0 {
			b.WriteByte('/')
		}

		switch {
		case seg == "*":
			b.WriteString(".*")
		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if name == "" {
				return nil, nil, ErrorInvalidPattern.Error()
			}
			names = append(names, name)
			b.WriteString("([^/]+)")
		default:
			b.WriteString(regexp.QuoteMeta(seg))
		}
	}

	b.WriteByte('$')

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, nil, ErrorInvalidPattern.Error(err)
	}

	return re, names, nil
}

func (r *route) matches(method, path string) (map[string]string, bool) {
	if r.method != MethodAny && r.method != method {
		return nil, false
	}

	m := r.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}

	params := make(map[string]string, len(r.names))
	for i, name := range r.names {
		params[name] = m[i+1]
	}

	return params, true
}

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

// Package logger is the thin structured-logging facade every internal
// package logs through instead of calling fmt.Println or log.Printf
// directly. It bridges github.com/sirupsen/logrus (the concrete sink) with
// github.com/hashicorp/go-hclog's level/field vocabulary, the way the
// teacher's own logger package sits between both ecosystems.
package logger

import (
	"context"
)

// Level mirrors hclog's level constants, kept as our own type so callers
// never need to import hclog directly.
type Level int

const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
)

// Entry is a single structured log line in the making: a level, a message
// and a set of key/value fields, flushed on Send.
type Entry interface {
	Field(key string, value interface{}) Entry
	Error(err error) Entry
	Send()
}

// Logger is the facade injected into ioengine, session, the servers, the
// TCP client, the HTTP logging middleware and the application. SetLevel is separate from the entry builders because it
// is reconfigured at runtime (e.g. from a signal handler) while entries
// are built per call site.
type Logger interface {
	Entry(level Level, message string) Entry
	SetLevel(level Level)

	// With returns a child Logger that attaches field to every entry it
	// produces, matching the teacher's per-component sub-logger pattern.
	// Sessions do not use it: they add their correlation id per entry
	// with Field.
	With(key string, value interface{}) Logger
}

// FuncLog is the injected accessor every component stores instead of a
// concrete Logger, mirroring httpserver.srv's own o.logger() field. A nil
// FuncLog is valid and yields a discarding Logger.
type FuncLog func() Logger

// New builds a Logger writing structured entries through logrus, with a
// background field carrying ctx's values when present (e.g. a request or
// session id attached upstream). ctx may be nil.
func New(ctx context.Context) Logger {
	return newLogrusLogger(ctx)
}

// Discard returns a Logger whose entries are silently dropped, used as
// the default when no FuncLog has been injected.
func Discard() Logger {
	return discardLogger{}
}

// Resolve calls fn and returns its Logger, or a discarding one if fn is
// nil -- the one-liner every component with an injected FuncLog field
// uses instead of repeating the nil check.
func Resolve(fn FuncLog) Logger {
	if fn == nil {
		return Discard()
	}
	return fn()
}

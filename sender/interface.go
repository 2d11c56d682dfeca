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

// Package sender implements a small sender/receiver dataflow model: a
// Sender[T] is a value describing a not-yet-started computation that
// completes on exactly one of three channels (value, error, stopped).
// Composition operators (Then, LetValue, UponError, UponStopped) build new
// senders without starting anything; StartDetached and SyncWait are the
// two ways to actually run one.
package sender

// Receiver is the continuation a Sender is connected to. Exactly one of
// its three methods is called, exactly once, for a given connection.
type Receiver[T any] interface {
	SetValue(v T)
	SetError(err error)
	SetStopped()
}

// OperationState pins the storage needed to run a connected Sender. The
// computation does not begin until Start is called.
type OperationState interface {
	Start()
}

// Sender is a composable description of an asynchronous computation.
// Connect never starts work; it only wires the receiver in.
type Sender[T any] interface {
	Connect(r Receiver[T]) OperationState
}

// Scheduler runs a nullary task, possibly asynchronously. Both the worker
// pool and the strand scheduler implement it.
type Scheduler interface {
	Schedule(task func())
}

// funcReceiver adapts three plain closures to the Receiver interface.
type funcReceiver[T any] struct {
	onValue   func(T)
	onError   func(error)
	onStopped func()
}

func (f funcReceiver[T]) SetValue(v T) {
	if f.onValue != nil {
		f.onValue(v)
	}
}

func (f funcReceiver[T]) SetError(err error) {
	if f.onError != nil {
		f.onError(err)
	}
}

func (f funcReceiver[T]) SetStopped() {
	if f.onStopped != nil {
		f.onStopped()
	}
}

// NewReceiver builds a Receiver from plain closures; any of them may be
// nil, in which case that completion channel is a no-op.
func NewReceiver[T any](onValue func(T), onError func(error), onStopped func()) Receiver[T] {
	return funcReceiver[T]{onValue: onValue, onError: onError, onStopped: onStopped}
}

// funcOperationState adapts a plain closure to OperationState.
type funcOperationState func()

func (f funcOperationState) Start() {
	f()
}

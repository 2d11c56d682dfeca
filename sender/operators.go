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

package sender

import (
	"fmt"
)

// --- just ------------------------------------------------------------

type justSender[T any] struct{ v T }

// Just returns an already-complete sender producing v as soon as it is
// started.
func Just[T any](v T) Sender[T] {
	return justSender[T]{v: v}
}

func (j justSender[T]) Connect(r Receiver[T]) OperationState {
	return funcOperationState(func() {
		r.SetValue(j.v)
	})
}

// --- error ----------------------------------------------------------

type errorSender[T any] struct{ err error }

// Error returns an already-complete sender that fails with err as soon as
// it is started, the error-channel counterpart to Just.
func Error[T any](err error) Sender[T] {
	return errorSender[T]{err: err}
}

func (e errorSender[T]) Connect(r Receiver[T]) OperationState {
	return funcOperationState(func() {
		r.SetError(e.err)
	})
}

// --- schedule ----------------------------------------------------------

type scheduleSender struct{ s Scheduler }

// Schedule returns a sender that completes with no meaningful value once
// the scheduler has run it.
func Schedule(s Scheduler) Sender[struct{}] {
	return scheduleSender{s: s}
}

func (s scheduleSender) Connect(r Receiver[struct{}]) OperationState {
	return funcOperationState(func() {
		s.s.Schedule(func() {
			r.SetValue(struct{}{})
		})
	})
}

// --- then ----------------------------------------------------------

type thenSender[T, U any] struct {
	up Sender[T]
	f  func(T) U
}

// Then runs f on the upstream's produced value, on the upstream's own
// completion context, and forwards the result as the new value.
func Then[T, U any](up Sender[T], f func(T) U) Sender[U] {
	return thenSender[T, U]{up: up, f: f}
}

func (t thenSender[T, U]) Connect(r Receiver[U]) OperationState {
	return t.up.Connect(NewReceiver[T](
		func(v T) {
			safeRun(r, func() U { return t.f(v) })
		},
		r.SetError,
		r.SetStopped,
	))
}

// --- let_value ----------------------------------------------------------

type letValueSender[T, U any] struct {
	up Sender[T]
	f  func(T) Sender[U]
}

// LetValue is like Then but f itself returns a Sender[U], which is
// transparently awaited; the returned operation-state is pinned by the
// closure so it survives until completion.
func LetValue[T, U any](up Sender[T], f func(T) Sender[U]) Sender[U] {
	return letValueSender[T, U]{up: up, f: f}
}

func (l letValueSender[T, U]) Connect(r Receiver[U]) OperationState {
	return l.up.Connect(NewReceiver[T](
		func(v T) {
			defer func() {
				if rec := recover(); rec != nil {
					r.SetError(fmt.Errorf("%v", rec))
				}
			}()

			next := l.f(v)
			op := next.Connect(r)
			op.Start()
		},
		r.SetError,
		r.SetStopped,
	))
}

// --- upon_error / upon_stopped ----------------------------------------

type uponErrorSender[T any] struct {
	up Sender[T]
	f  func(error) T
}

// UponError recovers an upstream error into a value completion.
func UponError[T any](up Sender[T], f func(error) T) Sender[T] {
	return uponErrorSender[T]{up: up, f: f}
}

func (u uponErrorSender[T]) Connect(r Receiver[T]) OperationState {
	return u.up.Connect(NewReceiver[T](
		r.SetValue,
		func(err error) {
			safeRun(r, func() T { return u.f(err) })
		},
		r.SetStopped,
	))
}

type uponStoppedSender[T any] struct {
	up Sender[T]
	f  func() T
}

// UponStopped recovers an upstream cancellation into a value completion.
func UponStopped[T any](up Sender[T], f func() T) Sender[T] {
	return uponStoppedSender[T]{up: up, f: f}
}

func (u uponStoppedSender[T]) Connect(r Receiver[T]) OperationState {
	return u.up.Connect(NewReceiver[T](
		r.SetValue,
		r.SetError,
		func() {
			safeRun(r, u.f)
		},
	))
}

// safeRun calls fn and forwards its result as a value, recovering any
// panic into the error channel instead of crashing the caller.
func safeRun[T any](r Receiver[T], fn func() T) {
	defer func() {
		if rec := recover(); rec != nil {
			r.SetError(fmt.Errorf("%v", rec))
		}
	}()

	r.SetValue(fn())
}

// --- start_detached / sync_wait ----------------------------------------

// StartDetached begins executing s without returning a handle. Panics and
// errors surfacing on the error channel are swallowed; stopped is also a
// no-op. The caller is expected to have already routed errors through
// UponError if it cares about them.
func StartDetached[T any](s Sender[T]) {
	op := s.Connect(NewReceiver[T](nil, nil, nil))
	op.Start()
}

type syncResult[T any] struct {
	v       T
	err     error
	stopped bool
}

// SyncWait begins s and blocks the calling goroutine until it completes,
// returning the produced value or the error (wrapping ErrorStopped if the
// stopped channel fired).
func SyncWait[T any](s Sender[T]) (T, error) {
	done := make(chan syncResult[T], 1)

	op := s.Connect(NewReceiver[T](
		func(v T) { done <- syncResult[T]{v: v} },
		func(err error) { done <- syncResult[T]{err: err} },
		func() { done <- syncResult[T]{stopped: true} },
	))
	op.Start()

	res := <-done

	if res.stopped {
		var zero T
		return zero, ErrorStopped.Error()
	}

	return res.v, res.err
}

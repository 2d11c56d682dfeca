/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

package atomic

import (
	"reflect"
	"sync/atomic"
)

// val is the sole implementation of Value[T]; it keeps the stored value
// and its two configured defaults in three separate sync/atomic.Value
// cells so Load/Store/Swap/CompareAndSwap never need a mutex.
type val[T any] struct {
	av atomic.Value
	dl atomic.Value
	ds atomic.Value
}

func newVal[T any]() *val[T] {
	return &val[T]{}
}

// cast reports whether src holds a T, returning it if so.
func cast[T any](src any) (v T, ok bool) {
	if reflect.DeepEqual(src, v) {
		return v, false
	}
	v, ok = src.(T)
	return v, ok
}

// isEmpty reports whether src is not a T, or is T's zero value.
func isEmpty[T any](src T) bool {
	_, ok := cast[T](any(src))
	return !ok
}

func (o *val[T]) SetDefaultLoad(def T) {
	o.dl.Store(defaultBox[T]{v: def})
}

func (o *val[T]) SetDefaultStore(def T) {
	o.ds.Store(defaultBox[T]{v: def})
}

func (o *val[T]) getDefault(box *atomic.Value) T {
	if b, ok := cast[defaultBox[T]](box.Load()); ok {
		return b.v
	}
	var zero T
	return zero
}

func (o *val[T]) Load() (v T) {
	if stored, ok := cast[T](o.av.Load()); ok {
		return stored
	}
	return o.getDefault(&o.dl)
}

func (o *val[T]) Store(v T) {
	if isEmpty(v) {
		o.av.Store(o.getDefault(&o.ds))
	} else {
		o.av.Store(v)
	}
}

func (o *val[T]) Swap(new T) (old T) {
	if isEmpty(new) {
		new = o.getDefault(&o.ds)
	}

	if stored, ok := cast[T](o.av.Swap(new)); ok {
		return stored
	}
	return o.getDefault(&o.dl)
}

func (o *val[T]) CompareAndSwap(old, new T) (swapped bool) {
	if isEmpty(old) {
		old = o.getDefault(&o.ds)
	}
	if isEmpty(new) {
		new = o.getDefault(&o.ds)
	}
	return o.av.CompareAndSwap(old, new)
}

// defaultBox carries a default value through an atomic.Value, which only
// stores consistent concrete types; wrapping T in a struct lets the zero
// value of T itself be a legitimate default.
type defaultBox[T any] struct {
	v T
}

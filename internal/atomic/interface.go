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

// Package atomic gives the session, strand, pool and server packages a
// typed, lock-free flag cell without each of them reaching for sync/atomic
// and a type switch of its own.
package atomic

// Value is a typed wrapper over sync/atomic.Value. Every session's
// is_active/closed flags, the pool's and servers' running flags, and the
// logger's level all use Value[bool] or Value[T] for their state.
type Value[T any] interface {
	// SetDefaultLoad sets the value Load returns once the cell is empty.
	// Call it before the first Load.
	SetDefaultLoad(def T)
	// SetDefaultStore sets the value substituted for a zero value passed
	// to Store. Call it before the first Store.
	SetDefaultStore(def T)

	// Load returns the current value, or the default load value if the
	// cell has never been stored to.
	Load() (val T)
	// Store sets the value. A zero value is replaced by the default
	// store value instead of being written as-is.
	Store(val T)
	// Swap stores new and returns the previous value.
	Swap(new T) (old T)
	// CompareAndSwap stores new only if the current value equals old,
	// and reports whether the swap happened.
	CompareAndSwap(old, new T) (swapped bool)
}

// NewValue returns a Value[T] whose default load and store values are the
// zero value of T.
func NewValue[T any]() Value[T] {
	var zero T
	return NewValueDefault[T](zero, zero)
}

// NewValueDefault returns a Value[T] with explicit default load and store
// values.
func NewValueDefault[T any](load, store T) Value[T] {
	o := newVal[T]()
	o.SetDefaultLoad(load)
	o.SetDefaultStore(store)
	return o
}

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

package atomic_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libatm "github.com/nabbar/zephyrgo/internal/atomic"
)

var _ = Describe("Value", func() {
	It("returns the zero value before any Store", func() {
		v := libatm.NewValue[bool]()
		Expect(v.Load()).To(BeFalse())
	})

	It("round trips Store and Load", func() {
		v := libatm.NewValue[time.Duration]()
		v.Store(5 * time.Second)
		Expect(v.Load()).To(Equal(5 * time.Second))
	})

	It("honors an explicit default load value", func() {
		v := libatm.NewValueDefault[int](42, 0)
		Expect(v.Load()).To(Equal(42))
	})

	It("swaps and returns the previous value", func() {
		v := libatm.NewValue[int]()
		v.Store(1)
		old := v.Swap(2)
		Expect(old).To(Equal(1))
		Expect(v.Load()).To(Equal(2))
	})

	It("only swaps via CompareAndSwap when the current value matches", func() {
		v := libatm.NewValue[bool]()
		v.Store(true)

		Expect(v.CompareAndSwap(false, true)).To(BeFalse())
		Expect(v.CompareAndSwap(true, false)).To(BeTrue())
		Expect(v.Load()).To(BeFalse())
	})
})

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

package sender_test

import (
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/zephyrgo/sender"
)

type inlineScheduler struct{}

func (inlineScheduler) Schedule(task func()) { task() }

type schedulerFunc func(task func())

func (f schedulerFunc) Schedule(task func()) { f(task) }

type errSenderFunc func(r sender.Receiver[int]) sender.OperationState

func (f errSenderFunc) Connect(r sender.Receiver[int]) sender.OperationState { return f(r) }

type opFunc func()

func (f opFunc) Start() { f() }

var _ = Describe("Sender", func() {
	It("resolves Just through SyncWait", func() {
		v, err := sender.SyncWait(sender.Just(42))
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(42))
	})

	It("transforms a value with Then", func() {
		s := sender.Then(sender.Just(2), func(v int) int { return v * 10 })

		v, err := sender.SyncWait(s)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(20))
	})

	It("recovers a panic raised inside Then", func() {
		s := sender.Then(sender.Just(1), func(int) int { panic("boom") })

		_, err := sender.SyncWait(s)
		Expect(err).To(HaveOccurred())
	})

	It("chains senders with LetValue", func() {
		s := sender.LetValue(sender.Just(3), func(v int) sender.Sender[int] {
			return sender.Just(v + 1)
		})

		v, err := sender.SyncWait(s)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(4))
	})

	It("recovers an error to a value with UponError", func() {
		errored := sender.Then(sender.Just(0), func(int) int { panic("fail") })
		recovered := sender.UponError(errored, func(error) int { return -1 })

		v, err := sender.SyncWait(recovered)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(-1))
	})

	It("runs Schedule on the given scheduler", func() {
		var ran bool
		sched := schedulerFunc(func(task func()) {
			ran = true
			task()
		})

		_, err := sender.SyncWait(sender.Schedule(sched))
		Expect(err).NotTo(HaveOccurred())
		Expect(ran).To(BeTrue())
	})

	It("does not block the caller in StartDetached", func() {
		var wg sync.WaitGroup
		wg.Add(1)

		s := sender.Then(sender.Just(1), func(v int) int {
			wg.Done()
			return v
		})

		sender.StartDetached(s)
		wg.Wait()
	})

	It("propagates a custom error through SyncWait", func() {
		boom := errors.New("boom")

		errSender := sender.Sender[int](errSenderFunc(func(r sender.Receiver[int]) sender.OperationState {
			return opFunc(func() { r.SetError(boom) })
		}))

		_, err := sender.SyncWait(errSender)
		Expect(err).To(MatchError(boom))
	})
})

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

package tcp

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/zephyrgo/endpoint"
	liberr "github.com/nabbar/zephyrgo/errors"
	"github.com/nabbar/zephyrgo/middleware"
	"github.com/nabbar/zephyrgo/sender"
)

// inlineScheduler runs every scheduled task synchronously on the caller's
// goroutine, enough to drive Server.acceptLoop deterministically without a
// real worker pool.
type inlineScheduler struct{}

func (inlineScheduler) Schedule(task func()) {
	if task != nil {
		task()
	}
}

// fakeEngine hands out a fixed, then empty, sequence of accepted fds so the
// accept loop can be observed without a real listen socket.
type fakeEngine struct {
	mu        sync.Mutex
	fds       []int
	cancelled bool
}

func (f *fakeEngine) Accept(int) (int, liberr.Error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancelled || len(f.fds) == 0 {
		return -1, nil
	}

	fd := f.fds[0]
	f.fds = f.fds[1:]
	return fd, nil
}

func (f *fakeEngine) Recv(int, []byte) (int, liberr.Error) { return 0, nil }
func (f *fakeEngine) Send(int, []byte) (int, liberr.Error) { return 0, nil }
func (f *fakeEngine) RecvFrom(int, []byte) (int, endpoint.Endpoint, liberr.Error) {
	return 0, endpoint.Endpoint{}, nil
}
func (f *fakeEngine) SendTo(int, []byte, endpoint.Endpoint) (int, liberr.Error) { return 0, nil }
func (f *fakeEngine) Cancel() {
	f.mu.Lock()
	f.cancelled = true
	f.mu.Unlock()
}
func (f *fakeEngine) Close() error { return nil }

type fakePipeline struct{}

func (fakePipeline) Call([]byte) sender.Sender[middleware.Result] {
	return sender.Just(middleware.Result{})
}

func fakeFactory() middleware.Pipeline { return fakePipeline{} }

var _ = Describe("Server accept loop", func() {
	It("spawns and tracks one session per accepted fd", func() {
		eng := &fakeEngine{fds: []int{11, 12}}

		s := New(endpoint.Endpoint{}, eng, inlineScheduler{}, fakeFactory, nil)
		s.running.Store(true)

		s.acceptLoop()

		Expect(s.SessionCount()).To(Equal(2))
	})

	It("exits immediately when not running", func() {
		eng := &fakeEngine{fds: []int{11}}

		s := New(endpoint.Endpoint{}, eng, inlineScheduler{}, fakeFactory, nil)
		s.running.Store(false)

		s.acceptLoop()

		Expect(s.SessionCount()).To(Equal(0))
		Expect(eng.fds).To(HaveLen(1))
	})

	It("drops a closed session from the map", func() {
		eng := &fakeEngine{fds: []int{11}}

		s := New(endpoint.Endpoint{}, eng, inlineScheduler{}, fakeFactory, nil)
		s.running.Store(true)
		s.acceptLoop()
		Expect(s.SessionCount()).To(Equal(1))

		s.onSessionClose(11)
		Expect(s.SessionCount()).To(Equal(0))
	})

	It("respects WithMaxSessions and frees a slot on close", func() {
		eng := &fakeEngine{fds: []int{11, 12}}

		s := New(endpoint.Endpoint{}, eng, inlineScheduler{}, fakeFactory, nil)
		s.WithMaxSessions(1)
		s.running.Store(true)

		s.acceptLoop()
		Expect(s.SessionCount()).To(Equal(1))
		Expect(eng.fds).To(HaveLen(1))

		s.onSessionClose(11)
		s.acceptLoop()
		Expect(s.SessionCount()).To(Equal(1))
		Expect(eng.fds).To(BeEmpty())
	})

	It("cancels the engine and closes the listen socket on Stop", func() {
		addr, aerr := endpoint.Parse("127.0.0.1:0")
		Expect(aerr).To(BeNil())

		eng := &fakeEngine{}

		s := New(addr, eng, inlineScheduler{}, fakeFactory, nil)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		Expect(s.Start(ctx)).To(Succeed())
		Expect(s.running.Load()).To(BeTrue())

		Expect(s.Stop(ctx)).To(Succeed())
		Expect(s.running.Load()).To(BeFalse())
		Expect(eng.cancelled).To(BeTrue())
	})
})

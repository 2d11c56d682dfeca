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

package session

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/zephyrgo/endpoint"
	liberr "github.com/nabbar/zephyrgo/errors"
	"github.com/nabbar/zephyrgo/middleware"
	"github.com/nabbar/zephyrgo/sender"
)

// inlineStrand runs every scheduled task synchronously and immediately,
// recursively, on the caller's goroutine -- enough to drive the session's
// trampoline deterministically in a test without a real worker pool.
type inlineStrand struct{}

func (inlineStrand) Schedule(task func()) {
	if task != nil {
		task()
	}
}
func (inlineStrand) Pending() int { return 0 }

type fakeEngine struct {
	mu    sync.Mutex
	recvs [][]byte
	sent  [][]byte
}

func (f *fakeEngine) Recv(fd int, buf []byte) (int, liberr.Error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.recvs) == 0 {
		return 0, nil
	}
	chunk := f.recvs[0]
	f.recvs = f.recvs[1:]
	n := copy(buf, chunk)
	return n, nil
}

func (f *fakeEngine) Send(fd int, buf []byte) (int, liberr.Error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, append([]byte(nil), buf...))
	return len(buf), nil
}

func (f *fakeEngine) Accept(int) (int, liberr.Error) { return 0, nil }
func (f *fakeEngine) RecvFrom(int, []byte) (int, endpoint.Endpoint, liberr.Error) {
	return 0, endpoint.Endpoint{}, nil
}
func (f *fakeEngine) SendTo(int, []byte, endpoint.Endpoint) (int, liberr.Error) { return 0, nil }
func (f *fakeEngine) Cancel()                                                   {}
func (f *fakeEngine) Close() error                                              { return nil }

type fakePipeline struct{}

func (fakePipeline) Call(buf []byte) sender.Sender[middleware.Result] {
	return sender.Just(middleware.Result{
		Consumed: len(buf),
		Response: []byte("pong"),
	})
}

var _ = Describe("Session", func() {
	It("reads, processes, and writes a full request", func() {
		eng := &fakeEngine{recvs: [][]byte{[]byte("GET / HTTP/1.1\r\n\r\n")}}

		closedFD := -1
		s := New(7, eng, inlineStrand{}, fakePipeline{}, func(fd int) { closedFD = fd }, nil)
		s.Start()

		Expect(closedFD).To(Equal(7))
		Expect(eng.sent).To(HaveLen(1))
		Expect(string(eng.sent[0])).To(Equal("pong"))
	})

	It("closes on EOF", func() {
		eng := &fakeEngine{}

		closed := false
		s := New(9, eng, inlineStrand{}, fakePipeline{}, func(int) { closed = true }, nil)
		s.Start()

		Expect(closed).To(BeTrue())
	})
})

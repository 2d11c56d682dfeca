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
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/zephyrgo/endpoint"
	liberr "github.com/nabbar/zephyrgo/errors"
)

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

func (f *fakeEngine) Recv(int, buf []byte) (int, liberr.Error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.recvs) == 0 {
		return 0, nil
	}
	chunk := f.recvs[0]
	f.recvs = f.recvs[1:]
	return copy(buf, chunk), nil
}

func (f *fakeEngine) Send(_ int, buf []byte) (int, liberr.Error) {
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

type echoController struct{}

func (echoController) OnMessage(data []byte) []byte {
	return append([]byte(nil), data...)
}

type silentController struct{}

func (silentController) OnMessage([]byte) []byte { return nil }

var _ = Describe("Connection", func() {
	It("echoes a reply and closes", func() {
		eng := &fakeEngine{recvs: [][]byte{[]byte("hello")}}

		closedFD := -1
		c := newConnection(3, eng, inlineStrand{}, echoController{}, func(fd int) { closedFD = fd }, nil)
		c.Start()

		Expect(eng.sent).To(HaveLen(1))
		Expect(string(eng.sent[0])).To(Equal("hello"))
		Expect(closedFD).To(Equal(3))
	})

	It("prevents further recv once stopped", func() {
		eng := &fakeEngine{recvs: [][]byte{[]byte("x"), []byte("y")}}

		c := newConnection(4, eng, inlineStrand{}, silentController{}, func(int) {}, nil)
		c.Stop()
		c.Start()

		Expect(eng.sent).To(BeEmpty())
		Expect(eng.recvs).To(HaveLen(2))
	})
})

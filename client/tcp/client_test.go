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
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sys/unix"

	"github.com/nabbar/zephyrgo/endpoint"
	"github.com/nabbar/zephyrgo/sender"
)

type inlineStrandScheduler struct{}

func (inlineStrandScheduler) Schedule(task func()) {
	if task != nil {
		task()
	}
}

var _ = Describe("Client", func() {
	It("dials a listening peer", func() {
		ln, lerr := net.Listen("tcp", "127.0.0.1:0")
		Expect(lerr).To(BeNil())
		defer ln.Close()

		go func() {
			conn, aerr := ln.Accept()
			if aerr == nil {
				_ = conn.Close()
			}
		}()

		addr, perr := endpoint.Parse(ln.Addr().String())
		Expect(perr).To(BeNil())

		fd, err := sender.SyncWait(Connect(inlineStrandScheduler{}, nil, addr))
		Expect(err).To(BeNil())
		Expect(fd).To(BeNumerically(">", 0))

		_ = unix.Close(fd)
	})

	It("clears the connection on close", func() {
		eng := &fakeEngine{}

		c := New(endpoint.Endpoint{}, eng, inlineStrandScheduler{}, echoController{}, nil)
		c.conn = newConnection(5, eng, inlineStrand{}, echoController{}, nil, nil)

		Expect(c.Connected()).To(BeTrue())

		c.onConnClose(5)

		Expect(c.Connected()).To(BeFalse())
	})
})

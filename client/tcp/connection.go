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
	"golang.org/x/sys/unix"

	"github.com/nabbar/zephyrgo/ioengine"
	libatm "github.com/nabbar/zephyrgo/internal/atomic"
	"github.com/nabbar/zephyrgo/logger"
	"github.com/nabbar/zephyrgo/strand"
)

const recvChunk = 4096

// Controller reacts to bytes read off a Connection and optionally returns
// a reply to write back; a nil/empty return sends nothing.
type Controller interface {
	OnMessage(data []byte) []byte
}

// OnClose is invoked exactly once, after the fd has been closed.
type OnClose func(fd int)

// Connection drives one outbound, already-connected socket: recv, hand
// the bytes to the Controller, send back whatever it returns, repeat --
// every step submitted through its own strand, the same discipline
// server/tcp's session.Session uses on the accept side.
type Connection struct {
	fd         int
	engine     ioengine.Engine
	strand     strand.Strand
	controller Controller
	onClose    OnClose
	log        logger.FuncLog

	active libatm.Value[bool]
	closed libatm.Value[bool]
}

func newConnection(fd int, engine ioengine.Engine, sched strand.Strand, controller Controller, onClose OnClose, log logger.FuncLog) *Connection {
	c := &Connection{
		fd:         fd,
		engine:     engine,
		strand:     sched,
		controller: controller,
		onClose:    onClose,
		log:        log,
		active:     libatm.NewValue[bool](),
		closed:     libatm.NewValue[bool](),
	}

	c.active.Store(true)
	c.closed.Store(false)

	return c
}

// Start schedules the first recv step on the connection's strand.
func (c *Connection) Start() {
	c.strand.Schedule(c.step)
}

// Stop marks the connection inactive; the next strand step observes it
// and terminates instead of re-arming.
func (c *Connection) Stop() {
	c.active.Store(false)
}

// FD returns the connection's file descriptor.
func (c *Connection) FD() int {
	return c.fd
}

func (c *Connection) step() {
	if !c.active.Load() {
		c.terminate()
		return
	}

	buf := make([]byte, recvChunk)

	n, err := c.engine.Recv(c.fd, buf)
	if err != nil || n <= 0 {
		c.terminate()
		return
	}

	reply := c.controller.OnMessage(buf[:n])
	if len(reply) > 0 {
		if !c.writeAll(reply) {
			c.terminate()
			return
		}
	}

	c.strand.Schedule(c.step)
}

func (c *Connection) writeAll(buf []byte) bool {
	for len(buf) > 0 {
		n, err := c.engine.Send(c.fd, buf)
		if err != nil || n <= 0 {
			logger.Resolve(c.log).Entry(logger.Warn, "write failed").Error(ErrorWriteFailed.Error()).Send()
			return false
		}
		buf = buf[n:]
	}
	return true
}

func (c *Connection) terminate() {
	if c.closed.Load() {
		return
	}
	c.closed.Store(true)

	_ = unix.Close(c.fd)

	if c.onClose != nil {
		c.onClose(c.fd)
	}
}

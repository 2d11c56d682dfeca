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

// Package session drives one accepted TCP connection through the
// Reading -> Parsing -> Processing -> Writing -> Closed state machine
// (spec.md §4.8), every step submitted through the session's own strand
// so the receive buffer is mutated without a mutex.
package session

import (
	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	codec "github.com/nabbar/zephyrgo/codec/http"
	"github.com/nabbar/zephyrgo/ioengine"
	libatm "github.com/nabbar/zephyrgo/internal/atomic"
	"github.com/nabbar/zephyrgo/logger"
	"github.com/nabbar/zephyrgo/middleware"
	"github.com/nabbar/zephyrgo/sender"
	"github.com/nabbar/zephyrgo/strand"
)

// State names one node of the session's state machine.
type State int

const (
	StateReading State = iota
	StateParsing
	StateProcessing
	StateWriting
	StateClosed
)

const readChunk = 4096

// OnClose is invoked exactly once, after the fd has been closed, so the
// owning server can remove the session from its map (spec.md §4.8,
// "notifies its parent server via a registered on-close callback").
type OnClose func(fd int)

// Session is the per-connection object a TCP server starts after accept.
// The fd, the strand and the pipeline are exclusively owned by this
// Session for its lifetime (spec.md §3, "Session").
type Session struct {
	id       uuid.UUID
	fd       int
	engine   ioengine.Engine
	strand   strand.Strand
	pipeline middleware.Pipeline
	onClose  OnClose
	log      logger.FuncLog

	active libatm.Value[bool]
	closed libatm.Value[bool]

	state   State
	buf     []byte
	pending middleware.Result
}

// New builds a Session for fd, not yet started. Every session is given a
// random correlation id attached to its log entries, so an operator can
// follow one connection's Reading/Parsing/Processing/Writing steps across
// an otherwise-interleaved log stream from many concurrent sessions.
func New(fd int, engine ioengine.Engine, sched strand.Strand, pipeline middleware.Pipeline, onClose OnClose, log logger.FuncLog) *Session {
	s := &Session{
		id:       uuid.New(),
		fd:       fd,
		engine:   engine,
		strand:   sched,
		pipeline: pipeline,
		onClose:  onClose,
		log:      log,
		active:   libatm.NewValue[bool](),
		closed:   libatm.NewValue[bool](),
		state:    StateReading,
	}

	s.active.Store(true)
	s.closed.Store(false)

	return s
}

// ID returns the session's correlation id.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Start schedules the first Reading step on the session's strand.
func (s *Session) Start() {
	s.strand.Schedule(s.step)
}

// Stop marks the session inactive; the next strand step observes it and
// terminates instead of re-arming (spec.md §5, "Session stop is driven
// by a bool flag").
func (s *Session) Stop() {
	s.active.Store(false)
}

// FD returns the session's file descriptor, for the owning server's map.
func (s *Session) FD() int {
	return s.fd
}

func (s *Session) step() {
	if !s.active.Load() {
		s.terminate()
		return
	}

	switch s.state {
	case StateReading:
		s.doReading()
	case StateParsing:
		s.doParsing()
	case StateProcessing:
		s.doProcessing()
	case StateWriting:
		s.doWriting()
	case StateClosed:
		s.terminate()
	}
}

func (s *Session) doReading() {
	chunk := make([]byte, readChunk)

	n, err := s.engine.Recv(s.fd, chunk)
	if err != nil || n <= 0 {
		s.state = StateClosed
		s.terminate()
		return
	}

	s.buf = append(s.buf, chunk[:n]...)
	s.state = StateParsing
	s.strand.Schedule(s.step)
}

func (s *Session) doParsing() {
	if !codec.IsComplete(s.buf) {
		s.state = StateReading
		s.strand.Schedule(s.step)
		return
	}

	s.state = StateProcessing
	s.strand.Schedule(s.step)
}

func (s *Session) doProcessing() {
	res, err := sender.SyncWait(s.pipeline.Call(s.buf))
	if err != nil {
		logger.Resolve(s.log).Entry(logger.Error, "pipeline failed").Field("session_id", s.id.String()).Error(err).Send()
		s.state = StateClosed
		s.terminate()
		return
	}

	s.pending = res
	s.state = StateWriting
	s.strand.Schedule(s.step)
}

func (s *Session) doWriting() {
	if s.pending.Consumed > 0 {
		s.buf = append([]byte(nil), s.buf[s.pending.Consumed:]...)
	}

	if len(s.pending.Response) > 0 {
		if !s.writeAll(s.pending.Response) {
			s.state = StateClosed
			s.terminate()
			return
		}
	}

	if s.pending.Close {
		s.state = StateClosed
		s.terminate()
		return
	}

	s.state = StateReading
	s.strand.Schedule(s.step)
}

// writeAll loops over Send until every byte is written or an error
// occurs, since a single io_uring send may write fewer bytes than asked.
func (s *Session) writeAll(buf []byte) bool {
	for len(buf) > 0 {
		n, err := s.engine.Send(s.fd, buf)
		if err != nil || n <= 0 {
			logger.Resolve(s.log).Entry(logger.Warn, "write failed").Field("session_id", s.id.String()).Error(ErrorWriteFailed.Error()).Send()
			return false
		}
		buf = buf[n:]
	}
	return true
}

// terminate closes fd exactly once and fires the on-close callback
// (spec.md §3, "the fd is closed exactly once, at session destruction").
func (s *Session) terminate() {
	if s.closed.Load() {
		return
	}
	s.closed.Store(true)

	_ = unix.Close(s.fd)

	if s.onClose != nil {
		s.onClose(s.fd)
	}
}

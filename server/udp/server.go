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

package udp

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/nabbar/zephyrgo/endpoint"
	liberr "github.com/nabbar/zephyrgo/errors"
	"github.com/nabbar/zephyrgo/ioengine"
	libatm "github.com/nabbar/zephyrgo/internal/atomic"
	"github.com/nabbar/zephyrgo/logger"
	"github.com/nabbar/zephyrgo/metrics"
	runStop "github.com/nabbar/zephyrgo/runner/startStop"
	"github.com/nabbar/zephyrgo/sender"
)

// recvBufferSize is the per-datagram receive buffer (spec.md §5, "Per
// datagram recv buffer 65536 bytes").
const recvBufferSize = 65536

// receiveBackoff throttles the loop after a persistent recv_from failure,
// the UDP analogue of the TCP accept-loop's backoff.
const receiveBackoff = 100 * time.Millisecond

// Server owns one bound datagram socket and a single, shared, stateless
// Pipeline every received datagram is routed through (spec.md §4.9, "UDP
// Server").
type Server struct {
	port     int
	engine   ioengine.Engine
	pool     sender.Scheduler
	pipeline Pipeline
	log      logger.FuncLog
	metrics  metrics.Registry

	runner runStop.StartStop

	listenFD int
	running  libatm.Value[bool]
}

// New builds a Server bound to port (INADDR_ANY), not yet listening.
func New(port int, engine ioengine.Engine, pool sender.Scheduler, pipeline Pipeline, log logger.FuncLog) *Server {
	s := &Server{
		port:     port,
		engine:   engine,
		pool:     pool,
		pipeline: pipeline,
		log:      log,
		metrics:  metrics.Noop(),
		running:  libatm.NewValue[bool](),
	}
	s.running.Store(false)
	s.runner = runStop.New(s.onStart, s.onStop)

	return s
}

// WithMetrics wires m as the server's metrics sink, labelled by its bound
// port.
func (s *Server) WithMetrics(m metrics.Registry) *Server {
	if m == nil {
		m = metrics.Noop()
	}
	s.metrics = m
	return s
}

// NewFromConfig validates cfg and builds a Server the same way New does.
func NewFromConfig(cfg Config, engine ioengine.Engine, pool sender.Scheduler, pipeline Pipeline, log logger.FuncLog) (*Server, liberr.Error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return New(cfg.Port, engine, pool, pipeline, log), nil
}

func (s *Server) name() string {
	return fmt.Sprintf("udp:%d", s.port)
}

// Start binds the datagram socket and schedules the receive loop on the
// worker pool; it returns once the loop has been handed off.
func (s *Server) Start(ctx context.Context) error {
	return s.runner.Start(ctx)
}

// Stop marks the server not-running, cancels the shared engine, and
// closes the datagram socket.
func (s *Server) Stop(ctx context.Context) error {
	return s.runner.Stop(ctx)
}

func (s *Server) onStart(_ context.Context) error {
	fd, err := bind(s.port)
	if err != nil {
		return ErrorBindFailed.Error(err)
	}

	s.listenFD = fd
	s.running.Store(true)

	s.pool.Schedule(s.receiveLoop)

	return nil
}

func (s *Server) onStop(_ context.Context) error {
	s.running.Store(false)
	s.engine.Cancel()

	if s.listenFD != 0 {
		_ = unix.Close(s.listenFD)
	}

	return nil
}

func (s *Server) receiveLoop() {
	if !s.running.Load() {
		return
	}

	buf := make([]byte, recvBufferSize)

	n, peer, err := s.engine.RecvFrom(s.listenFD, buf)
	if err != nil || n < 0 {
		if !s.running.Load() {
			return
		}

		s.metrics.Rejected(s.name())
		logger.Resolve(s.log).Entry(logger.Warn, "recv_from failed").Error(ErrorReceiveFailed.Error()).Send()

		time.AfterFunc(receiveBackoff, func() {
			s.pool.Schedule(s.receiveLoop)
		})
		return
	}

	s.metrics.Accepted(s.name())

	pkt := packetFrom(peer, s.port, buf[:n])

	resp, perr := sender.SyncWait(s.pipeline.Call(pkt))
	if perr != nil {
		logger.Resolve(s.log).Entry(logger.Error, "udp pipeline failed").Error(perr).Send()
	} else if len(resp) > 0 {
		if _, werr := s.engine.SendTo(s.listenFD, resp, peer); werr != nil {
			logger.Resolve(s.log).Entry(logger.Warn, "send_to failed").Error(werr).Send()
		}
	}

	s.pool.Schedule(s.receiveLoop)
}

// bind builds a non-blocking UDP socket bound to INADDR_ANY:port (spec.md
// §5, "UDP: SOCK_DGRAM, bound to INADDR_ANY by default").
func bind(port int) (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_NONBLOCK, 0)
	if err != nil {
		return -1, err
	}

	addr, aerr := endpoint.New([]byte{0, 0, 0, 0}, port)
	if aerr != nil {
		_ = unix.Close(fd)
		return -1, aerr
	}

	sa, serr := addr.Sockaddr()
	if serr != nil {
		_ = unix.Close(fd)
		return -1, serr
	}

	if err = unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}

	return fd, nil
}

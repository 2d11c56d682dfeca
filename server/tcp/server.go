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

// Package tcp owns a listen socket and an accept-loop that spawns a
// session.Session per inbound connection (spec.md C9, "TCP Server").
package tcp

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/nabbar/zephyrgo/endpoint"
	liberr "github.com/nabbar/zephyrgo/errors"
	"github.com/nabbar/zephyrgo/ioengine"
	libatm "github.com/nabbar/zephyrgo/internal/atomic"
	"github.com/nabbar/zephyrgo/logger"
	"github.com/nabbar/zephyrgo/metrics"
	"github.com/nabbar/zephyrgo/middleware"
	runStop "github.com/nabbar/zephyrgo/runner/startStop"
	"github.com/nabbar/zephyrgo/sender"
	libsem "github.com/nabbar/zephyrgo/semaphore/sem"
	"github.com/nabbar/zephyrgo/session"
	"github.com/nabbar/zephyrgo/strand"
)

// acceptBackoff is how long the accept loop pauses after a failed accept
// before re-arming, to avoid spinning on a persistent failure (spec.md
// §4.9, "pause briefly (100ms)").
const acceptBackoff = 100 * time.Millisecond

// defaultBacklog is the listen backlog used when a Config leaves Backlog
// unset (spec.md §6, "backlog 128").
const defaultBacklog = 128

// Server owns one listen socket and the sessions accepted off it.
type Server struct {
	name    string
	addr    endpoint.Endpoint
	engine  ioengine.Engine
	pool    sender.Scheduler
	factory middleware.Factory
	log     logger.FuncLog
	metrics metrics.Registry

	runner runStop.StartStop

	backlog  int
	backoff  time.Duration
	listenFD int
	running  libatm.Value[bool]

	cap libsem.Sem

	mu       sync.Mutex
	sessions map[int]*session.Session
}

// New builds a Server bound to addr, not yet listening. pool is the
// worker-pool scheduler that both the accept loop and every session's
// strand repost onto.
func New(addr endpoint.Endpoint, engine ioengine.Engine, pool sender.Scheduler, factory middleware.Factory, log logger.FuncLog) *Server {
	s := &Server{
		name:     addr.String(),
		addr:     addr,
		engine:   engine,
		pool:     pool,
		factory:  factory,
		log:      log,
		metrics:  metrics.Noop(),
		backlog:  defaultBacklog,
		backoff:  acceptBackoff,
		running:  libatm.NewValue[bool](),
		sessions: make(map[int]*session.Session),
	}
	s.running.Store(false)
	s.runner = runStop.New(s.onStart, s.onStop)

	return s
}

// NewFromConfig validates cfg, parses its Listen address, and builds a
// Server the same way New does (SPEC_FULL.md §10.3's tagged-config
// pattern).
func NewFromConfig(cfg Config, engine ioengine.Engine, pool sender.Scheduler, factory middleware.Factory, log logger.FuncLog) (*Server, liberr.Error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	addr, err := cfg.Endpoint()
	if err != nil {
		return nil, err
	}

	s := New(addr, engine, pool, factory, log)
	if cfg.Backlog > 0 {
		s.backlog = cfg.Backlog
	}

	backoff, berr := cfg.acceptBackoffDuration()
	if berr != nil {
		return nil, berr
	}
	s.backoff = backoff
	s.WithMaxSessions(cfg.MaxSessions)

	return s, nil
}

// WithMetrics wires m as the server's metrics sink, labelled by the
// server's bound address. Must be called before Start to see the first
// accept/reject.
func (s *Server) WithMetrics(m metrics.Registry) *Server {
	if m == nil {
		m = metrics.Noop()
	}
	s.metrics = m
	return s
}

// WithMaxSessions bounds concurrently open sessions to n; once the cap is
// reached the accept loop backs off and retries instead of calling
// engine.Accept, the same way it backs off a failed accept. n <= 0 leaves
// concurrency unbounded. Must be called before Start.
func (s *Server) WithMaxSessions(n int64) *Server {
	if n > 0 {
		s.cap = libsem.New(n)
	} else {
		s.cap = nil
	}
	return s
}

// Start opens the listen socket and schedules the accept loop on the
// worker pool; it returns once the loop has been handed off, without
// blocking on it.
func (s *Server) Start(ctx context.Context) error {
	return s.runner.Start(ctx)
}

// Stop marks the server not-running, cancels the shared engine (which
// wakes any blocked accept), and closes the listen socket (spec.md §4.9,
// "On stop, set is_running=false, cancel the engine, close the listen
// socket").
func (s *Server) Stop(ctx context.Context) error {
	return s.runner.Stop(ctx)
}

// SessionCount reports how many sessions are currently tracked, for
// metrics and tests.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) onStart(_ context.Context) error {
	fd, err := listen(s.addr, s.backlog)
	if err != nil {
		return ErrorListenFailed.Error(err)
	}

	s.listenFD = fd
	s.running.Store(true)

	s.pool.Schedule(s.acceptLoop)

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

func (s *Server) acceptLoop() {
	if !s.running.Load() {
		return
	}

	// With a session cap configured, try a slot without blocking: blocking
	// here would tie up a pool worker that a session's own strand steps
	// (scheduled on the same pool) may need to run in order to close and
	// free that very slot.
	if s.cap != nil && !s.cap.NewWorkerTry() {
		time.AfterFunc(s.backoff, func() {
			s.pool.Schedule(s.acceptLoop)
		})
		return
	}

	fd, err := s.engine.Accept(s.listenFD)
	if err != nil || fd < 0 {
		if s.cap != nil {
			s.cap.DeferWorker()
		}

		if !s.running.Load() {
			return
		}

		s.metrics.Rejected(s.name)
		logger.Resolve(s.log).Entry(logger.Warn, "accept failed").Error(ErrorAcceptFailed.Error()).Send()

		time.AfterFunc(s.backoff, func() {
			s.pool.Schedule(s.acceptLoop)
		})
		return
	}

	s.metrics.Accepted(s.name)
	s.metrics.SessionOpened(s.name)

	sess := session.New(fd, s.engine, strand.New(s.pool), s.factory(), s.onSessionClose, s.log)

	s.mu.Lock()
	s.sessions[fd] = sess
	s.mu.Unlock()

	sess.Start()

	s.pool.Schedule(s.acceptLoop)
}

func (s *Server) onSessionClose(fd int) {
	s.mu.Lock()
	delete(s.sessions, fd)
	s.mu.Unlock()

	if s.cap != nil {
		s.cap.DeferWorker()
	}

	s.metrics.SessionClosed(s.name)
}

// listen builds a non-blocking, SO_REUSEADDR TCP listen socket bound to
// addr (spec.md §4.9, "a non-blocking listen socket with SO_REUSEADDR").
func listen(addr endpoint.Endpoint, backlog int) (int, error) {
	domain := unix.AF_INET
	if addr.Family() == endpoint.FamilyV6 {
		domain = unix.AF_INET6
	}

	fd, err := unix.Socket(domain, unix.SOCK_STREAM|unix.SOCK_NONBLOCK, 0)
	if err != nil {
		return -1, err
	}

	if err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return -1, err
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

	if backlog <= 0 {
		backlog = defaultBacklog
	}

	if err = unix.Listen(fd, backlog); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}

	return fd, nil
}

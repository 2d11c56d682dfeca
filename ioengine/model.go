//go:build linux

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

package ioengine

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/nabbar/zephyrgo/endpoint"
	liberr "github.com/nabbar/zephyrgo/errors"
	libatm "github.com/nabbar/zephyrgo/internal/atomic"
	"github.com/nabbar/zephyrgo/logger"
)

const defaultDepth = 128

type engine struct {
	r *ring

	mu        sync.Mutex
	cancelled libatm.Value[bool]

	log   logger.FuncLog
	depth uint32
}

// New sets up the kernel ring and returns an Engine. Ring initialization
// failure is the only fatal error the engine surfaces (spec.md §4.1).
func New(opts ...Option) (Engine, liberr.Error) {
	e := &engine{depth: defaultDepth, cancelled: libatm.NewValue[bool]()}

	for _, o := range opts {
		o(e)
	}

	r, err := newRing(e.depth)
	if err != nil {
		if le, ok := err.(liberr.Error); ok {
			return nil, le
		}
		return nil, ErrorSetupFailed.Error(err)
	}

	e.r = r

	return e, nil
}

func (e *engine) logger() logger.Logger {
	if e.log == nil {
		return logger.Discard()
	}
	return e.log()
}

func (e *engine) checkCancelled() liberr.Error {
	if e.cancelled.Load() {
		return ErrorCancelled.Error()
	}
	return nil
}

func (e *engine) Accept(listenFD int) (int, liberr.Error) {
	if err := e.checkCancelled(); err != nil {
		return -1, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkCancelled(); err != nil {
		return -1, err
	}

	res, sysErr := e.r.submitOne(func(s *sqe) {
		s.Opcode = opAccept
		s.Fd = int32(listenFD)
		s.RWFlags = unix.SOCK_NONBLOCK
	})
	if sysErr != nil {
		return -1, ErrorSyscall.Error(sysErr)
	}

	if e.cancelled.Load() {
		return -1, ErrorCancelled.Error()
	}

	if res < 0 {
		e.logger().Entry(logger.Warn, "accept failed").Field("errno", -res).Send()
		return int(res), nil
	}

	return int(res), nil
}

func (e *engine) Recv(fd int, buf []byte) (int, liberr.Error) {
	if err := e.checkCancelled(); err != nil {
		return -1, err
	}
	if len(buf) == 0 {
		return 0, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkCancelled(); err != nil {
		return -1, err
	}

	res, sysErr := e.r.submitOne(func(s *sqe) {
		s.Opcode = opRecv
		s.Fd = int32(fd)
		s.Addr = uint64(uintptr(unsafe.Pointer(&buf[0])))
		s.Len = uint32(len(buf))
	})
	if sysErr != nil {
		return -1, ErrorSyscall.Error(sysErr)
	}

	if e.cancelled.Load() {
		return -1, ErrorCancelled.Error()
	}

	return int(res), nil
}

func (e *engine) Send(fd int, buf []byte) (int, liberr.Error) {
	if err := e.checkCancelled(); err != nil {
		return -1, err
	}
	if len(buf) == 0 {
		return 0, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkCancelled(); err != nil {
		return -1, err
	}

	res, sysErr := e.r.submitOne(func(s *sqe) {
		s.Opcode = opSend
		s.Fd = int32(fd)
		s.Addr = uint64(uintptr(unsafe.Pointer(&buf[0])))
		s.Len = uint32(len(buf))
	})
	if sysErr != nil {
		return -1, ErrorSyscall.Error(sysErr)
	}

	if e.cancelled.Load() {
		return -1, ErrorCancelled.Error()
	}

	return int(res), nil
}

// udpMsg pins the iovec/sockaddr/msghdr triple for the duration of one
// recvmsg/sendmsg SQE -- the kernel writes/reads them directly, so they
// must not move or be collected until the completion is drained.
type udpMsg struct {
	iov  unix.Iovec
	name unix.RawSockaddrAny
	hdr  msghdr
}

// msghdr mirrors struct msghdr on linux/amd64, the layout io_uring's
// RECVMSG/SENDMSG opcodes expect at sqe.addr.
type msghdr struct {
	Name       *byte
	Namelen    uint32
	_          uint32
	Iov        *unix.Iovec
	Iovlen     uint64
	Control    *byte
	Controllen uint64
	Flags      int32
	_          uint32
}

func (e *engine) RecvFrom(fd int, buf []byte) (int, endpoint.Endpoint, liberr.Error) {
	if err := e.checkCancelled(); err != nil {
		return -1, endpoint.Endpoint{}, err
	}
	if len(buf) == 0 {
		return 0, endpoint.Endpoint{}, nil
	}

	m := &udpMsg{}
	m.iov = unix.Iovec{Base: &buf[0]}
	m.iov.SetLen(len(buf))
	m.hdr.Name = (*byte)(unsafe.Pointer(&m.name))
	m.hdr.Namelen = uint32(unsafe.Sizeof(m.name))
	m.hdr.Iov = &m.iov
	m.hdr.Iovlen = 1

	e.mu.Lock()
	res, sysErr := e.r.submitOne(func(s *sqe) {
		s.Opcode = opRecvmsg
		s.Fd = int32(fd)
		s.Addr = uint64(uintptr(unsafe.Pointer(&m.hdr)))
		s.Len = 1
	})
	e.mu.Unlock()

	if sysErr != nil {
		return -1, endpoint.Endpoint{}, ErrorSyscall.Error(sysErr)
	}

	if e.cancelled.Load() {
		return -1, endpoint.Endpoint{}, ErrorCancelled.Error()
	}

	if res < 0 {
		return int(res), endpoint.Endpoint{}, nil
	}

	sa, saErr := anyToSockaddr(&m.name)
	if saErr != nil {
		return int(res), endpoint.Endpoint{}, ErrorUnsupportedAddress.Error(saErr)
	}

	ep, epErr := endpoint.FromSockaddr(sa)
	if epErr != nil {
		return int(res), endpoint.Endpoint{}, epErr
	}

	return int(res), ep, nil
}

func (e *engine) SendTo(fd int, buf []byte, peer endpoint.Endpoint) (int, liberr.Error) {
	if err := e.checkCancelled(); err != nil {
		return -1, err
	}

	sa, saErr := peer.Sockaddr()
	if saErr != nil {
		return -1, saErr
	}

	raw, rawLen, rawErr := sockaddrToAny(sa)
	if rawErr != nil {
		return -1, ErrorUnsupportedAddress.Error(rawErr)
	}

	m := &udpMsg{}
	if len(buf) > 0 {
		m.iov = unix.Iovec{Base: &buf[0]}
		m.iov.SetLen(len(buf))
	}
	m.name = raw
	m.hdr.Name = (*byte)(unsafe.Pointer(&m.name))
	m.hdr.Namelen = rawLen
	m.hdr.Iov = &m.iov
	m.hdr.Iovlen = 1

	e.mu.Lock()
	res, sysErr := e.r.submitOne(func(s *sqe) {
		s.Opcode = opSendmsg
		s.Fd = int32(fd)
		s.Addr = uint64(uintptr(unsafe.Pointer(&m.hdr)))
		s.Len = 1
	})
	e.mu.Unlock()

	if sysErr != nil {
		return -1, ErrorSyscall.Error(sysErr)
	}

	if e.cancelled.Load() {
		return -1, ErrorCancelled.Error()
	}

	return int(res), nil
}

// Cancel sets the sticky flag and submits a NOP SQE purely to make
// io_uring_enter return, unblocking any goroutine parked in
// ring.submitOne's wait.
func (e *engine) Cancel() {
	e.cancelled.Store(true)

	e.mu.Lock()
	_, _ = e.r.submitOne(func(s *sqe) {
		s.Opcode = opNop
	})
	e.mu.Unlock()
}

func (e *engine) Close() error {
	return e.r.close()
}

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
	"encoding/binary"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// sockaddrToAny packs a unix.Sockaddr into the raw bytes io_uring's
// RECVMSG/SENDMSG opcodes read/write directly, since the kernel has no
// notion of the typed unix.Sockaddr wrapper.
func sockaddrToAny(sa unix.Sockaddr) (unix.RawSockaddrAny, uint32, error) {
	var raw unix.RawSockaddrAny

	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		in4 := (*unix.RawSockaddrInet4)(unsafe.Pointer(&raw))
		in4.Family = unix.AF_INET
		binary.BigEndian.PutUint16((*[2]byte)(unsafe.Pointer(&in4.Port))[:], uint16(v.Port))
		in4.Addr = v.Addr
		return raw, uint32(unsafe.Sizeof(*in4)), nil
	case *unix.SockaddrInet6:
		in6 := (*unix.RawSockaddrInet6)(unsafe.Pointer(&raw))
		in6.Family = unix.AF_INET6
		binary.BigEndian.PutUint16((*[2]byte)(unsafe.Pointer(&in6.Port))[:], uint16(v.Port))
		in6.Addr = v.Addr
		in6.Scope_id = v.ZoneId
		return raw, uint32(unsafe.Sizeof(*in6)), nil
	default:
		return raw, 0, fmt.Errorf("unsupported sockaddr type %T", sa)
	}
}

// anyToSockaddr is the reverse of sockaddrToAny, used to report the
// sender's address after RecvFrom.
func anyToSockaddr(raw *unix.RawSockaddrAny) (unix.Sockaddr, error) {
	switch raw.Addr.Family {
	case unix.AF_INET:
		in4 := (*unix.RawSockaddrInet4)(unsafe.Pointer(raw))
		port := binary.BigEndian.Uint16((*[2]byte)(unsafe.Pointer(&in4.Port))[:])
		return &unix.SockaddrInet4{Port: int(port), Addr: in4.Addr}, nil
	case unix.AF_INET6:
		in6 := (*unix.RawSockaddrInet6)(unsafe.Pointer(raw))
		port := binary.BigEndian.Uint16((*[2]byte)(unsafe.Pointer(&in6.Port))[:])
		return &unix.SockaddrInet6{Port: int(port), Addr: in6.Addr, ZoneId: in6.Scope_id}, nil
	default:
		return nil, fmt.Errorf("unsupported address family %d", raw.Addr.Family)
	}
}

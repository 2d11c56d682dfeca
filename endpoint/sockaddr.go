/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package endpoint

import (
	liberr "github.com/nabbar/zephyrgo/errors"
	"golang.org/x/sys/unix"
)

// Sockaddr converts the Endpoint to the kernel socket-address structure
// expected by unix.Bind/unix.Connect and by the io_uring SQE address
// fields.
func (e Endpoint) Sockaddr() (unix.Sockaddr, liberr.Error) {
	switch e.family {
	case FamilyV4:
		sa := &unix.SockaddrInet4{Port: e.Port()}
		copy(sa.Addr[:], e.bytes[:4])
		return sa, nil
	case FamilyV6:
		sa := &unix.SockaddrInet6{Port: e.Port(), ZoneId: e.scope}
		copy(sa.Addr[:], e.bytes[:16])
		return sa, nil
	default:
		return nil, ErrorUnsupportedFamily.Error()
	}
}

// FromSockaddr builds an Endpoint from a kernel socket-address structure,
// the reverse of Sockaddr.
func FromSockaddr(sa unix.Sockaddr) (Endpoint, liberr.Error) {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		return New(v.Addr[:], v.Port)
	case *unix.SockaddrInet6:
		return NewV6WithScope(v.Addr[:], v.Port, v.ZoneId)
	default:
		return Endpoint{}, ErrorUnsupportedFamily.Error()
	}
}

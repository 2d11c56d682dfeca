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

// Package endpoint gives the address-family/bytes/port/scope-id value type
// used throughout the module, with round-trip conversion to the kernel
// socket-address structures io_uring operations need.
package endpoint

import (
	"fmt"
	"net/netip"

	liberr "github.com/nabbar/zephyrgo/errors"
)

// Family is the address family of an Endpoint.
type Family uint8

const (
	FamilyV4 Family = iota + 1
	FamilyV6
)

func (f Family) String() string {
	switch f {
	case FamilyV4:
		return "ipv4"
	case FamilyV6:
		return "ipv6"
	default:
		return "unknown"
	}
}

// Endpoint is (address-family, address-bytes, port, scope-id). Bytes are
// exactly 4 for v4 and 16 for v6; port is always in [0, 65535].
type Endpoint struct {
	family Family
	bytes  [16]byte
	port   uint16
	scope  uint32
}

// New builds an Endpoint from raw address bytes and a port. len(b) must be
// 4 (v4) or 16 (v6).
func New(b []byte, port int) (Endpoint, liberr.Error) {
	if port < 0 || port > 65535 {
		return Endpoint{}, ErrorInvalidPort.Error()
	}

	e := Endpoint{port: uint16(port)}

	switch len(b) {
	case 4:
		e.family = FamilyV4
		copy(e.bytes[:4], b)
	case 16:
		e.family = FamilyV6
		copy(e.bytes[:16], b)
	default:
		return Endpoint{}, ErrorInvalidAddressLength.Error()
	}

	return e, nil
}

// NewV6WithScope builds a v6 Endpoint carrying a zone/scope id (used for
// link-local addresses).
func NewV6WithScope(b []byte, port int, scope uint32) (Endpoint, liberr.Error) {
	e, err := New(b, port)
	if err != nil {
		return e, err
	}
	if e.family != FamilyV6 {
		return Endpoint{}, ErrorUnsupportedFamily.Error()
	}
	e.scope = scope

	return e, nil
}

// Parse accepts "a.b.c.d:port" or "[v6]:port" (with an optional %scope
// inside the brackets) and returns the corresponding Endpoint.
func Parse(text string) (Endpoint, liberr.Error) {
	ap, err := netip.ParseAddrPort(text)
	if err != nil {
		return Endpoint{}, ErrorMalformedText.Error(err)
	}

	addr := ap.Addr()

	if addr.Is4() || addr.Is4In6() {
		b := addr.As4()
		return New(b[:], int(ap.Port()))
	}

	// netip's zone is a textual interface name (e.g. "eth0"); resolving it
	// to the numeric scope id the kernel sockaddr wants is an interface
	// lookup, left to the caller via NewV6WithScope when it already has
	// the numeric id on hand.
	b := addr.As16()

	return NewV6WithScope(b[:], int(ap.Port()), 0)
}

func (e Endpoint) Family() Family {
	return e.family
}

func (e Endpoint) Port() int {
	return int(e.port)
}

func (e Endpoint) Scope() uint32 {
	return e.scope
}

// Bytes returns the raw address bytes (4 or 16 long depending on Family).
func (e Endpoint) Bytes() []byte {
	if e.family == FamilyV4 {
		out := make([]byte, 4)
		copy(out, e.bytes[:4])
		return out
	}

	out := make([]byte, 16)
	copy(out, e.bytes[:16])
	return out
}

// String renders the endpoint in normalized text form: lowercase hex
// groups, RFC 5952 zero-run collapsing for v6, dotted-quad for v4.
func (e Endpoint) String() string {
	switch e.family {
	case FamilyV4:
		a := netip.AddrFrom4([4]byte(e.Bytes()))
		return fmt.Sprintf("%s:%d", a.String(), e.port)
	case FamilyV6:
		a := netip.AddrFrom16([16]byte(e.bytes))
		if e.scope != 0 {
			a = a.WithZone(fmt.Sprintf("%d", e.scope))
		}
		return fmt.Sprintf("[%s]:%d", a.String(), e.port)
	default:
		return ""
	}
}

func (e Endpoint) IsZero() bool {
	return e.family == 0
}

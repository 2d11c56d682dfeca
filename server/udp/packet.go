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

// Package udp runs a stateless datagram service: one shared socket, one
// receive-loop, and a Pipeline dispatching each datagram independently
// (spec.md §4.9, "UDP Server").
package udp

import (
	"net"
	"strconv"

	"github.com/nabbar/zephyrgo/endpoint"
	"github.com/nabbar/zephyrgo/sender"
)

// Packet is one received datagram: source address (text form, split into
// IP and port), the local port it arrived on, the raw kernel peer address
// (for replying) and the payload bytes (spec.md §4, "the packet record is
// (source-ip-text, source-port, dest-port, kernel-peer-address,
// payload-bytes)").
type Packet struct {
	SourceIP   string
	SourcePort int
	DestPort   int
	Peer       endpoint.Endpoint
	Payload    []byte
}

// packetFrom builds a Packet from a received datagram and the port it was
// received on.
func packetFrom(peer endpoint.Endpoint, destPort int, payload []byte) Packet {
	host, portText, err := net.SplitHostPort(peer.String())
	port := peer.Port()
	if err == nil {
		if p, perr := strconv.Atoi(portText); perr == nil {
			port = p
		}
	} else {
		host = ""
	}

	return Packet{
		SourceIP:   host,
		SourcePort: port,
		DestPort:   destPort,
		Peer:       peer,
		Payload:    payload,
	}
}

// Handler processes one Packet and optionally produces a reply. A sender
// that completes with a nil or empty payload means no reply is sent.
type Handler func(pkt Packet) sender.Sender[[]byte]

// Pipeline is the single, shared, stateless entry point a Server calls for
// every datagram it receives (spec.md §4, "the UDP pipeline is
// stateless").
type Pipeline interface {
	Call(pkt Packet) sender.Sender[[]byte]
}

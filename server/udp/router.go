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
	"sync"

	"github.com/nabbar/zephyrgo/sender"
)

// Router dispatches datagrams landing on one shared socket to independent
// handlers by destination port, so a single UDP server can expose several
// logical services without opening a socket per port.
type Router struct {
	mu     sync.RWMutex
	routes []portRoute
}

type portRoute struct {
	port    int
	handler Handler
}

// NewRouter returns an empty Router, ready to serve as a Server's Pipeline.
func NewRouter() *Router {
	return &Router{}
}

// RegisterPort binds handler to every datagram whose destination port is
// port. Later registrations for an already-bound port are never reached,
// first match wins, same as the TCP router's pattern precedence.
func (r *Router) RegisterPort(port int, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.routes = append(r.routes, portRoute{port: port, handler: handler})
}

// Call implements Pipeline. A datagram whose destination port matches no
// registered route is dropped silently (no reply), the router-level
// equivalent of the TCP router's unmatched-request 404 path.
func (r *Router) Call(pkt Packet) sender.Sender[[]byte] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rt := range r.routes {
		if rt.port == pkt.DestPort {
			return rt.handler(pkt)
		}
	}

	return sender.Just[[]byte](nil)
}

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

// Package metrics wraps github.com/prometheus/client_golang behind the
// small set of counters and gauges the worker pool and the TCP/UDP
// servers need: accepted/rejected connections, active sessions, and
// queue depth, each labelled by the owning server's name so one process
// hosting several servers still gets one registry (SPEC_FULL.md §11,
// "Prometheus metrics").
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	liberr "github.com/nabbar/zephyrgo/errors"
)

// Registry is the facade injected into pool.Pool and the TCP/UDP servers.
// Every method is safe for concurrent use; the Registry returned by Noop()
// discards every observation instead of requiring a nil check at every
// call site, mirroring logger.Resolve's discard-logger pattern.
type Registry interface {
	// Accepted increments the accepted-connections counter for server.
	Accepted(server string)

	// Rejected increments the rejected-connections counter for server
	// (a failed accept/recv_from, or a backoff cycle).
	Rejected(server string)

	// SessionOpened increments the active-sessions gauge for server.
	SessionOpened(server string)

	// SessionClosed decrements the active-sessions gauge for server.
	SessionClosed(server string)

	// QueueDepth sets the worker-pool queue-depth gauge for pool.
	QueueDepth(pool string, n float64)

	// Handler returns the promhttp handler serving this registry's
	// collected metrics in the Prometheus text exposition format, for a
	// host application to mount at e.g. "/metrics".
	Handler() http.Handler

	// Registerer exposes the underlying prometheus.Registerer so a host
	// application can register its own collectors alongside this
	// module's.
	Registerer() prometheus.Registerer
}

// New builds a Registry backed by its own prometheus.Registry (not the
// global DefaultRegisterer, so embedding this module never collides with
// a host application's own metric names).
func New() (Registry, liberr.Error) {
	return newRegistry()
}

// Noop returns a Registry whose every method is a no-op, for callers
// that have not configured metrics collection.
func Noop() Registry {
	return noopRegistry{}
}

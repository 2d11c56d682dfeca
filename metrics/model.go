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

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	liberr "github.com/nabbar/zephyrgo/errors"
)

type registry struct {
	reg *prometheus.Registry

	accepted     *prometheus.CounterVec
	rejected     *prometheus.CounterVec
	sessions     *prometheus.GaugeVec
	queueDepth   *prometheus.GaugeVec
}

func newRegistry() (Registry, liberr.Error) {
	r := &registry{
		reg: prometheus.NewRegistry(),
		accepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zephyrgo",
			Name:      "accepted_total",
			Help:      "Total number of connections or datagrams accepted, by server.",
		}, []string{"server"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zephyrgo",
			Name:      "rejected_total",
			Help:      "Total number of accept/recv_from failures, by server.",
		}, []string{"server"}),
		sessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "zephyrgo",
			Name:      "active_sessions",
			Help:      "Number of sessions currently open, by server.",
		}, []string{"server"}),
		queueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "zephyrgo",
			Name:      "pool_queue_depth",
			Help:      "Number of tasks currently queued, by pool.",
		}, []string{"pool"}),
	}

	collectors := []prometheus.Collector{r.accepted, r.rejected, r.sessions, r.queueDepth}
	for _, c := range collectors {
		if err := r.reg.Register(c); err != nil {
			return nil, ErrorRegisterFailed.Error(err)
		}
	}

	return r, nil
}

func (r *registry) Accepted(server string) {
	r.accepted.WithLabelValues(server).Inc()
}

func (r *registry) Rejected(server string) {
	r.rejected.WithLabelValues(server).Inc()
}

func (r *registry) SessionOpened(server string) {
	r.sessions.WithLabelValues(server).Inc()
}

func (r *registry) SessionClosed(server string) {
	r.sessions.WithLabelValues(server).Dec()
}

func (r *registry) QueueDepth(pool string, n float64) {
	r.queueDepth.WithLabelValues(pool).Set(n)
}

func (r *registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

func (r *registry) Registerer() prometheus.Registerer {
	return r.reg
}

type noopRegistry struct{}

func (noopRegistry) Accepted(string)          {}
func (noopRegistry) Rejected(string)          {}
func (noopRegistry) SessionOpened(string)     {}
func (noopRegistry) SessionClosed(string)     {}
func (noopRegistry) QueueDepth(string, float64) {}

func (noopRegistry) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (noopRegistry) Registerer() prometheus.Registerer {
	return prometheus.NewRegistry()
}

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

// Command zephyrd is the minimal composition root: one TCP echo-style
// HTTP server, one UDP echo server, and a /metrics endpoint, wired
// through app.Application so Init/Run/Stop fan out in declaration order
// (spec.md §4.10). It is a usage example, not a product; real deployments
// wire their own router handlers and middleware chain.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/nabbar/zephyrgo/app"
	codec "github.com/nabbar/zephyrgo/codec/http"
	"github.com/nabbar/zephyrgo/endpoint"
	"github.com/nabbar/zephyrgo/ioengine"
	"github.com/nabbar/zephyrgo/logger"
	"github.com/nabbar/zephyrgo/metrics"
	"github.com/nabbar/zephyrgo/middleware"
	"github.com/nabbar/zephyrgo/middleware/auth"
	mwlog "github.com/nabbar/zephyrgo/middleware/logging"
	"github.com/nabbar/zephyrgo/pool"
	"github.com/nabbar/zephyrgo/router"
	"github.com/nabbar/zephyrgo/sender"
	"github.com/nabbar/zephyrgo/server/tcp"
	"github.com/nabbar/zephyrgo/server/udp"
)

var version = app.NewDescriptor("zephyrgo", "async network-service framework example", "dev", "", time.Time{})

func main() {
	log := func() logger.Logger { return logger.New(context.Background()) }

	reg, rerr := metrics.New()
	if rerr != nil {
		logger.Resolve(log).Entry(logger.Error, "metrics registry init failed").Error(rerr).Send()
		reg = metrics.Noop()
	}

	workers := pool.New(8)
	workers.WithMetrics("zephyrd", reg)

	eng, eerr := ioengine.New(ioengine.WithLogger(log))
	if eerr != nil {
		logger.Resolve(log).Entry(logger.Error, "io engine init failed").Error(eerr).Send()
		os.Exit(1)
	}

	httpFactory := buildHTTPFactory(log)

	tcpAddr, aerr := endpoint.Parse("0.0.0.0:8080")
	if aerr != nil {
		logger.Resolve(log).Entry(logger.Error, "invalid TCP listen address").Error(aerr).Send()
		os.Exit(1)
	}

	tcpSrv := tcp.New(tcpAddr, eng, workers, httpFactory, log).WithMetrics(reg)
	udpSrv := udp.New(9090, eng, workers, echoPipeline{}, log).WithMetrics(reg)

	metricsSrv := &http.Server{Addr: "0.0.0.0:9100", Handler: reg.Handler()}

	a := app.New(workers, log,
		app.AdaptStartStop(tcpSrv),
		app.AdaptStartStop(udpSrv),
		app.AdaptStartStop(httpAdapter{metricsSrv}),
	).WithVersion(version)

	stop := a.Signal().WireOS()
	defer stop()

	if err := a.Init(); err != nil {
		logger.Resolve(log).Entry(logger.Error, "init failed").Error(err).Send()
		os.Exit(1)
	}

	ctx := context.Background()
	if err := a.Run(ctx); err != nil {
		logger.Resolve(log).Entry(logger.Error, "run failed").Error(err).Send()
		os.Exit(1)
	}

	if err := a.Stop(ctx); err != nil {
		logger.Resolve(log).Entry(logger.Error, "stop failed").Error(err).Send()
		os.Exit(1)
	}
}

// buildHTTPFactory wires a single GET /healthz route behind the logging
// middleware, followed by the bearer-token auth middleware when
// ZEPHYRD_AUTH_TOKEN is set, the shape spec.md §4.7 describes as "router and
// middleware chain frozen once, reused per connection".
func buildHTTPFactory(log logger.FuncLog) middleware.Factory {
	r := router.New(nil)
	_ = r.Get("/healthz", func(req *codec.Request, _ router.Context) sender.Sender[*codec.Response] {
		resp := codec.NewResponse()
		resp.Status = 200
		resp.StatusText = "OK"
		resp.Body = []byte("ok")
		return sender.Just(resp)
	})

	b := middleware.NewBuilder(r)
	b.Use(mwlog.New(log))

	if token := os.Getenv("ZEPHYRD_AUTH_TOKEN"); token != "" {
		b.Use(auth.New(token))
	}

	return b.Build()
}

// echoPipeline mirrors a datagram's payload back to its sender.
type echoPipeline struct{}

func (echoPipeline) Call(pkt udp.Packet) sender.Sender[[]byte] {
	return sender.Just(append([]byte(nil), pkt.Payload...))
}

// httpAdapter makes *http.Server satisfy app's Start(ctx)/Stop(ctx)
// shape for the /metrics listener.
type httpAdapter struct {
	srv *http.Server
}

func (h httpAdapter) Start(_ context.Context) error {
	go func() {
		if err := h.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintln(os.Stderr, "metrics listener:", err)
		}
	}()
	return nil
}

func (h httpAdapter) Stop(ctx context.Context) error {
	return h.srv.Shutdown(ctx)
}

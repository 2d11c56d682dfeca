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

package app

import (
	"context"

	liberr "github.com/nabbar/zephyrgo/errors"
	libatm "github.com/nabbar/zephyrgo/internal/atomic"
	"github.com/nabbar/zephyrgo/logger"
	"github.com/nabbar/zephyrgo/pool"
)

// Application owns a worker pool and an ordered collection of plugins.
// Init/Run/Stop fan out across the plugins in declaration order
// (spec.md §4.10).
type Application struct {
	pool    pool.Pool
	plugins []Plugin
	signal  *Signal
	log     logger.FuncLog
	version Descriptor

	stopping libatm.Value[bool]
}

// New builds an Application over pool, running the given plugins in the
// order they are listed.
func New(workers pool.Pool, log logger.FuncLog, plugins ...Plugin) *Application {
	a := &Application{
		pool:    workers,
		plugins: plugins,
		signal:  NewSignal(),
		log:     log,
		stopping: libatm.NewValue[bool](),
	}
	a.stopping.Store(false)

	return a
}

// Init calls every plugin's Init in declaration order, stopping at the
// first failure.
func (a *Application) Init() error {
	for i, p := range a.plugins {
		if err := p.Init(); err != nil {
			logger.Resolve(a.log).Entry(logger.Error, "plugin init failed").
				Field("index", i).Error(err).Send()
			return ErrorPluginInitFailed.Error(err)
		}
	}

	return nil
}

// Run calls every plugin's Run, passing the pool's scheduler, then
// blocks until Stop is called or ctx is done (spec.md §4.10, "block the
// main thread on a signal-handler condition variable").
func (a *Application) Run(ctx context.Context) error {
	for i, p := range a.plugins {
		if err := p.Run(a.pool); err != nil {
			logger.Resolve(a.log).Entry(logger.Error, "plugin run failed").
				Field("index", i).Error(err).Send()
			return ErrorPluginRunFailed.Error(err)
		}
	}

	a.signal.Wait(ctx)

	return nil
}

// Stop calls every plugin's Stop in declaration order, requests the
// worker pool to stop, and wakes any goroutine blocked in Run. Idempotent
// via a compare-and-swap on the stopping flag (spec.md §4.10, "idempotent
// via a compare-exchange").
func (a *Application) Stop(ctx context.Context) error {
	if !a.stopping.CompareAndSwap(false, true) {
		return nil
	}

	var last error

	for _, p := range a.plugins {
		if err := p.Stop(); err != nil {
			last = err
		}
	}

	if a.pool != nil {
		if err := a.pool.RequestStop(ctx); err != nil {
			last = err
		}
	}

	a.signal.Notify()

	if last != nil {
		return liberr.As(last)
	}

	return nil
}

// Signal exposes the Application's wait/notify gate, for callers that
// want to trigger shutdown from outside (e.g. an OS signal handler).
func (a *Application) Signal() *Signal {
	return a.signal
}

// WithVersion attaches a build/version Descriptor, later returned by
// Version.
func (a *Application) WithVersion(v Descriptor) *Application {
	a.version = v
	return a
}

// Version returns the Descriptor attached via WithVersion, the zero value
// if none was set.
func (a *Application) Version() Descriptor {
	return a.version
}

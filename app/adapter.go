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

	"github.com/nabbar/zephyrgo/sender"
)

// startStopper is the shape server/tcp.Server, server/udp.Server and
// client/tcp.Client all already have: a context-scoped Start/Stop pair
// built on runner/startStop, with their worker-pool scheduler captured
// at construction time rather than at run time.
type startStopper interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type startStopPlugin struct {
	target startStopper
}

// AdaptStartStop wraps a Start(ctx)/Stop(ctx) component as a Plugin. Init
// is a no-op (the wrapped component creates its own sockets inside
// Start); Run ignores its scheduler argument, since the component was
// already built against the pool it schedules onto.
func AdaptStartStop(target startStopper) Plugin {
	return &startStopPlugin{target: target}
}

func (p *startStopPlugin) Init() error {
	return nil
}

func (p *startStopPlugin) Run(_ sender.Scheduler) error {
	return p.target.Start(context.Background())
}

func (p *startStopPlugin) Stop() error {
	return p.target.Stop(context.Background())
}

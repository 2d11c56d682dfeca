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

// Package app holds a worker pool and an ordered collection of plugins
// (servers, clients, user services) and fans init/run/stop out across
// them in declaration order (spec.md §4.10, "Application Lifecycle").
package app

import (
	"github.com/nabbar/zephyrgo/sender"
)

// Plugin is anything the Application can own: a TCP server, a UDP
// server, an outbound TCP client, or a user-defined service. init() sets
// up resources that do not need a scheduler (e.g. listen sockets);
// run(scheduler) starts the plugin's own loop(s) on the shared worker
// pool; stop() tears down, idempotently.
type Plugin interface {
	Init() error
	Run(scheduler sender.Scheduler) error
	Stop() error
}

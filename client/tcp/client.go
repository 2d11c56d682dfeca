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

package tcp

import (
	"context"
	"sync"

	"github.com/nabbar/zephyrgo/endpoint"
	"github.com/nabbar/zephyrgo/ioengine"
	"github.com/nabbar/zephyrgo/logger"
	runStop "github.com/nabbar/zephyrgo/runner/startStop"
	"github.com/nabbar/zephyrgo/sender"
	"github.com/nabbar/zephyrgo/strand"
)

// Client owns one outbound connection to addr, reconnecting is not
// attempted -- a dropped connection simply leaves the client idle until
// Stop/Start is called again, same as the plugin this is grounded on.
type Client struct {
	addr       endpoint.Endpoint
	engine     ioengine.Engine
	pool       sender.Scheduler
	controller Controller
	log        logger.FuncLog

	runner runStop.StartStop

	mu   sync.Mutex
	conn *Connection
}

// New builds a Client dialing addr once Start is called.
func New(addr endpoint.Endpoint, engine ioengine.Engine, pool sender.Scheduler, controller Controller, log logger.FuncLog) *Client {
	c := &Client{
		addr:       addr,
		engine:     engine,
		pool:       pool,
		controller: controller,
		log:        log,
	}
	c.runner = runStop.New(c.onStart, c.onStop)

	return c
}

// Start dials addr and schedules the connection's recv loop.
func (c *Client) Start(ctx context.Context) error {
	return c.runner.Start(ctx)
}

// Stop marks the connection inactive and cancels the shared engine.
func (c *Client) Stop(ctx context.Context) error {
	return c.runner.Stop(ctx)
}

// Connected reports whether a live connection is currently tracked.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *Client) onStart(_ context.Context) error {
	fd, err := sender.SyncWait(Connect(c.pool, c.engine, c.addr))
	if err != nil {
		return ErrorConnectFailed.Error(err)
	}

	conn := newConnection(fd, c.engine, strand.New(c.pool), c.controller, c.onConnClose, c.log)

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	conn.Start()

	return nil
}

func (c *Client) onStop(_ context.Context) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		conn.Stop()
	}

	c.engine.Cancel()

	return nil
}

func (c *Client) onConnClose(fd int) {
	c.mu.Lock()
	if c.conn != nil && c.conn.FD() == fd {
		c.conn = nil
	}
	c.mu.Unlock()
}

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
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nabbar/zephyrgo/duration"
	"github.com/nabbar/zephyrgo/endpoint"
	liberr "github.com/nabbar/zephyrgo/errors"
)

// Config is the tagged, validator-friendly shape a host application loads
// from its own config file/env/flags before building a Server (SPEC_FULL.md
// §10.3, "plain structs with mapstructure/json/yaml/toml/validate tags",
// grounded on nabbar-golib/httpserver/config.go and socket/config).
type Config struct {
	Listen  string `mapstructure:"listen" json:"listen" yaml:"listen" toml:"listen" validate:"required"`
	Backlog int    `mapstructure:"backlog" json:"backlog" yaml:"backlog" toml:"backlog" validate:"gte=0"`

	// AcceptBackoff is the pause, in duration.Parse syntax (e.g. "100ms",
	// "1d"), before the accept loop re-arms after a failed accept (spec.md
	// §4.9). Empty leaves the package default (acceptBackoff) in place.
	AcceptBackoff string `mapstructure:"acceptBackoff" json:"acceptBackoff" yaml:"acceptBackoff" toml:"acceptBackoff"`

	// MaxSessions caps the number of concurrently open sessions; once the
	// cap is reached the accept loop backs off and retries instead of
	// calling engine.Accept. 0 (the default) leaves concurrency unbounded.
	MaxSessions int64 `mapstructure:"maxSessions" json:"maxSessions" yaml:"maxSessions" toml:"maxSessions" validate:"gte=0"`
}

// acceptBackoffDuration resolves c.AcceptBackoff, falling back to the
// package default when unset.
func (c Config) acceptBackoffDuration() (time.Duration, liberr.Error) {
	if c.AcceptBackoff == "" {
		return acceptBackoff, nil
	}

	d, err := duration.Parse(c.AcceptBackoff)
	if err != nil {
		return 0, ErrorInvalidConfig.Error(err)
	}

	return d.Time(), nil
}

var validate = validator.New()

// Validate runs struct-tag validation over c.
func (c Config) Validate() liberr.Error {
	if err := validate.Struct(c); err != nil {
		return ErrorInvalidConfig.Error(err)
	}
	return nil
}

// Clone returns a copy of c, so a caller may derive variants without
// mutating a shared base config.
func (c Config) Clone() Config {
	return Config{Listen: c.Listen, Backlog: c.Backlog, AcceptBackoff: c.AcceptBackoff, MaxSessions: c.MaxSessions}
}

// Endpoint parses c.Listen into an endpoint.Endpoint.
func (c Config) Endpoint() (endpoint.Endpoint, liberr.Error) {
	return endpoint.Parse(c.Listen)
}

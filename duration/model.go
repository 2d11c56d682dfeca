/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package duration

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Time returns d as a plain time.Duration.
func (d Duration) Time() time.Duration {
	return time.Duration(d)
}

// Float64 returns d as a raw count of nanoseconds.
func (d Duration) Float64() float64 {
	return float64(d)
}

// Days returns the whole number of 24h days in d, floored toward
// negative infinity.
func (d Duration) Days() int64 {
	t := math.Floor(d.Time().Hours() / 24)
	if t > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(t)
}

// String formats d with a leading "Nd" for whole days, followed by the
// stdlib time.Duration rendering of whatever remains below a day
// ("5d23h15m13s", "45m30s", "500ms"); a whole number of days with
// nothing left over prints just "Nd".
func (d Duration) String() string {
	var (
		s string
		n = d.Days()
		i = d.Time()
	)

	if n > 0 {
		i -= time.Duration(n) * 24 * time.Hour
		s = fmt.Sprintf("%dd", n)
	}

	if n < 1 || i > 0 {
		s += i.String()
	}

	return s
}

// parseText parses a days-aware duration string. It accepts everything
// time.ParseDuration accepts, plus a leading "Nd" component, strips
// surrounding quotes and internal whitespace so values lifted from
// JSON/YAML/TOML or typed by hand ("2d 12h") parse cleanly.
func parseText(s string) (Duration, error) {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	s = strings.ReplaceAll(s, " ", "")

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	var (
		days    int64
		hasDays bool
	)
	if i := strings.IndexByte(s, 'd'); i >= 0 {
		n, err := strconv.ParseInt(s[:i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("duration: invalid days component %q: %w", s[:i], err)
		}
		days, hasDays = n, true
		s = s[i+1:]
	}

	var rest time.Duration
	if !(hasDays && s == "") {
		r, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("duration: %w", err)
		}
		rest = r
	}

	total := time.Duration(days)*time.Hour*24 + rest
	if neg {
		total = -total
	}
	return Duration(total), nil
}

func (d *Duration) setFromText(p []byte) error {
	v, err := parseText(string(p))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalJSON renders d as its quoted String form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON accepts either a quoted duration string or a bare number
// of seconds, matching how config loaders commonly emit durations.
func (d *Duration) UnmarshalJSON(p []byte) error {
	s := strings.TrimSpace(string(p))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return d.setFromText(p)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	*d = ParseFloat64(f * float64(time.Second))
	return nil
}

// MarshalYAML renders d as its String form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML accepts a scalar duration string node.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.setFromText([]byte(s))
}

// MarshalTOML renders d as a quoted String form; go-toml accepts a
// JSON-quoted string as valid TOML string syntax.
func (d Duration) MarshalTOML() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalTOML accepts whatever scalar the TOML decoder produced: a
// string, or a bare number of seconds.
func (d *Duration) UnmarshalTOML(v interface{}) error {
	switch t := v.(type) {
	case string:
		return d.setFromText([]byte(t))
	case int64:
		*d = Seconds(t)
		return nil
	case float64:
		*d = ParseFloat64(t * float64(time.Second))
		return nil
	default:
		return fmt.Errorf("duration: unsupported TOML value %T", v)
	}
}

// MarshalText renders d as its String form.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses d from its String form.
func (d *Duration) UnmarshalText(p []byte) error {
	return d.setFromText(p)
}

// MarshalCBOR renders d as a CBOR text string.
func (d Duration) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(d.String())
}

// UnmarshalCBOR decodes d from a CBOR text string.
func (d *Duration) UnmarshalCBOR(p []byte) error {
	var s string
	if err := cbor.Unmarshal(p, &s); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	return d.setFromText([]byte(s))
}

// truncateFloor rounds d down to the nearest multiple of unit, toward
// negative infinity rather than toward zero (unlike time.Duration.Truncate).
func truncateFloor(d, unit time.Duration) time.Duration {
	if unit <= 0 {
		return d
	}
	r := d % unit
	if r == 0 {
		return d
	}
	if d < 0 {
		return d - r - unit
	}
	return d - r
}

// TruncateMicroseconds drops everything below microsecond resolution.
func (d Duration) TruncateMicroseconds() Duration {
	return Duration(truncateFloor(d.Time(), time.Microsecond))
}

// TruncateMilliseconds drops everything below millisecond resolution.
func (d Duration) TruncateMilliseconds() Duration {
	return Duration(truncateFloor(d.Time(), time.Millisecond))
}

// TruncateSeconds drops everything below second resolution.
func (d Duration) TruncateSeconds() Duration {
	return Duration(truncateFloor(d.Time(), time.Second))
}

// TruncateMinutes drops everything below minute resolution.
func (d Duration) TruncateMinutes() Duration {
	return Duration(truncateFloor(d.Time(), time.Minute))
}

// TruncateHours drops everything below hour resolution.
func (d Duration) TruncateHours() Duration {
	return Duration(truncateFloor(d.Time(), time.Hour))
}

// TruncateDays drops everything below 24h resolution.
func (d Duration) TruncateDays() Duration {
	return Duration(truncateFloor(d.Time(), time.Hour*24))
}

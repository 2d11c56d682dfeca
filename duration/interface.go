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

// Package duration extends time.Duration with a days notation
// ("5d23h15m13s") and marshalling for JSON, YAML, TOML, CBOR and plain
// text, so a config field like server/tcp.Config's AcceptBackoff can
// round trip through any of those without its own parser.
//
// Example:
//
//	d, _ := duration.Parse("5d23h15m13s")
//	fmt.Println(d.String())        // 5d23h15m13s
//	timeout := duration.Days(2) + duration.Hours(3)
//	std := timeout.Time()          // time.Duration
package duration

import (
	"math"
	"time"
)

// Duration is a time.Duration with a days notation layered on top.
type Duration time.Duration

// Parse parses a string such as "5d23h15m13s", "100ms" or "2h30m" into a
// Duration. Quoting characters are stripped so config values lifted
// straight out of JSON/YAML/TOML parse cleanly.
func Parse(s string) (Duration, error) {
	return parseText(s)
}

// ParseByte is Parse for a byte slice, used by the Unmarshal* methods.
func ParseByte(p []byte) (Duration, error) {
	return parseText(string(p))
}

// Seconds returns a Duration of i seconds.
func Seconds(i int64) Duration {
	return Duration(time.Duration(i) * time.Second)
}

// Minutes returns a Duration of i minutes.
func Minutes(i int64) Duration {
	return Duration(time.Duration(i) * time.Minute)
}

// Hours returns a Duration of i hours.
func Hours(i int64) Duration {
	return Duration(time.Duration(i) * time.Hour)
}

// Days returns a Duration of i days (i * 24h).
func Days(i int64) Duration {
	return Duration(time.Duration(i) * time.Hour * 24)
}

// ParseDuration wraps a time.Duration as a Duration.
func ParseDuration(d time.Duration) Duration {
	return Duration(d)
}

// ParseFloat64 returns a Duration of f nanoseconds, rounded to the nearest
// integer and clamped to [-math.MaxInt64, math.MaxInt64] if f is out of
// range.
func ParseFloat64(f float64) Duration {
	const (
		mx float64 = math.MaxInt64
		mi         = -mx
	)

	switch {
	case f > mx:
		return Duration(math.MaxInt64)
	case f < mi:
		return Duration(-math.MaxInt64)
	default:
		return Duration(math.Round(f))
	}
}

// ParseUint32 returns a Duration of i nanoseconds, clamped to
// math.MaxInt64 if i overflows an int64.
func ParseUint32(i uint32) Duration {
	if uint64(i) > uint64(math.MaxInt64) {
		return Duration(math.MaxInt64)
	}
	return Duration(i)
}

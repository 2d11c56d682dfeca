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

package errors

// Each internal package reserves a range of 100 codes starting at its
// MinPkgXXX constant and registers its own message function for that
// range through RegisterIdFctMessage.
const (
	MinPkgEndpoint   = 100
	MinPkgIO         = 200
	MinPkgWorker     = 300
	MinPkgStrand     = 400
	MinPkgSender     = 500
	MinPkgCodec      = 600
	MinPkgRouter     = 700
	MinPkgMiddleware = 800
	MinPkgSession    = 900
	MinPkgServer     = 1000
	MinPkgClient     = 1100
	MinPkgApp        = 1200
	MinPkgMetrics    = 1300
	MinPkgServerUDP  = 1400

	MinAvailable = 2000
)

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

package http

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	liberr "github.com/nabbar/zephyrgo/errors"
)

const headerEnd = "\r\n\r\n"

// IsComplete reports whether buf contains at least the end-of-headers
// marker. A Content-Length body is checked too, so a pipelined second
// request already sitting in buf is not mistaken for an incomplete one.
func IsComplete(buf []byte) bool {
	idx := bytes.Index(buf, []byte(headerEnd))
	if idx < 0 {
		return false
	}

	headers := buf[:idx]
	bodyStart := idx + len(headerEnd)

	if cl, ok := contentLengthOf(headers); ok {
		return len(buf)-bodyStart >= cl
	}

	return true
}

func contentLengthOf(headerBlock []byte) (int, bool) {
	lines := strings.Split(string(headerBlock), "\r\n")
	for _, line := range lines {
		i := strings.IndexByte(line, ':')
		if i < 0 {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(line[:i]), "Content-Length") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(line[i+1:]))
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Parse consumes one request out of buf and returns it along with the
// number of bytes consumed. ErrorIncomplete means IsComplete would also
// have reported false; callers should keep accumulating. ErrorMalformed
// means the buffer does not hold valid RFC 7230 syntax and the session
// should reply 400 and close.
func Parse(buf []byte) (*Request, int, liberr.Error) {
	idx := bytes.Index(buf, []byte(headerEnd))
	if idx < 0 {
		return nil, 0, ErrorIncomplete.Error()
	}

	head := buf[:idx]
	bodyStart := idx + len(headerEnd)

	reader := bufio.NewReader(bytes.NewReader(head))

	requestLine, err := reader.ReadString('\n')
	if err != nil && len(requestLine) == 0 {
		return nil, 0, ErrorMalformed.Error(err)
	}
	requestLine = strings.TrimRight(requestLine, "\r\n")

	parts := strings.SplitN(requestLine, " ", 3)
	if len(parts) != 3 {
		return nil, 0, ErrorMalformed.Error()
	}

	req := &Request{
		Method:  parts[0],
		Path:    parts[1],
		Version: parts[2],
		Header:  Header{},
	}

	if req.Method == "" || req.Path == "" || !strings.HasPrefix(req.Version, "HTTP/") {
		return nil, 0, ErrorMalformed.Error()
	}

	for {
		line, rerr := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			if rerr != nil {
				break
			}
			continue
		}

		i := strings.IndexByte(line, ':')
		if i <= 0 {
			return nil, 0, ErrorMalformed.Error()
		}

		name := strings.TrimSpace(line[:i])
		value := strings.TrimSpace(line[i+1:])
		req.Header.Add(name, value)

		if rerr != nil {
			break
		}
	}

	bodyLen := len(buf) - bodyStart

	if cl, ok := contentLengthOf(head); ok {
		if len(buf)-bodyStart < cl {
			return nil, 0, ErrorIncomplete.Error()
		}
		bodyLen = cl
	}

	req.Body = append([]byte(nil), buf[bodyStart:bodyStart+bodyLen]...)

	return req, bodyStart + bodyLen, nil
}

// Serialize renders r as status line + headers + blank line + body,
// auto-inserting Content-Length when the body is non-empty and the
// header is absent (spec.md §4.5).
func Serialize(r *Response) []byte {
	status, text := r.effectiveStatus()

	var b bytes.Buffer
	fmt.Fprintf(&b, "HTTP/1.1 %d %s\r\n", status, text)

	wroteLength := false
	for name, values := range r.Header {
		if strings.EqualFold(name, "Content-Length") {
			wroteLength = true
		}
		for _, v := range values {
			fmt.Fprintf(&b, "%s: %s\r\n", name, v)
		}
	}

	if !wroteLength && len(r.Body) > 0 {
		fmt.Fprintf(&b, "Content-Length: %d\r\n", len(r.Body))
	}

	b.WriteString("\r\n")
	b.Write(r.Body)

	return b.Bytes()
}

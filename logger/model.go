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

package logger

import (
	"context"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/sirupsen/logrus"

	libatm "github.com/nabbar/zephyrgo/internal/atomic"
)

func levelToLogrus(l Level) logrus.Level {
	switch l {
	case Trace:
		return logrus.TraceLevel
	case Debug:
		return logrus.DebugLevel
	case Info:
		return logrus.InfoLevel
	case Warn:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

// levelToHC maps our Level to hclog's, the other sink ecosystem the
// teacher bridges. Nothing in this package calls it.
func levelToHC(l Level) hclog.Level {
	switch l {
	case Trace:
		return hclog.Trace
	case Debug:
		return hclog.Debug
	case Info:
		return hclog.Info
	case Warn:
		return hclog.Warn
	default:
		return hclog.Error
	}
}

type logrusLogger struct {
	log    *logrus.Logger
	level  libatm.Value[Level]
	fields logrus.Fields
}

func newLogrusLogger(ctx context.Context) Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lg := &logrusLogger{log: l, fields: logrus.Fields{}, level: libatm.NewValue[Level]()}
	lg.level.Store(Info)
	lg.log.SetLevel(levelToLogrus(Info))

	if ctx != nil {
		if id := ctx.Value(ctxKeyCorrelation{}); id != nil {
			lg.fields["correlation_id"] = id
		}
	}

	return lg
}

type ctxKeyCorrelation struct{}

// WithCorrelationID returns a context carrying id, picked up by New so a
// session's logger automatically tags every entry with it.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyCorrelation{}, id)
}

func (l *logrusLogger) SetLevel(level Level) {
	l.level.Store(level)
	l.log.SetLevel(levelToLogrus(level))
}

func (l *logrusLogger) With(key string, value interface{}) Logger {
	nf := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		nf[k] = v
	}
	nf[key] = value

	return &logrusLogger{log: l.log, level: l.level, fields: nf}
}

func (l *logrusLogger) Entry(level Level, message string) Entry {
	if level < l.level.Load() {
		return discardEntry{}
	}

	return &logrusEntry{
		e:   l.log.WithFields(l.fields),
		lvl: levelToLogrus(level),
		msg: message,
	}
}

type logrusEntry struct {
	e   *logrus.Entry
	lvl logrus.Level
	msg string
}

func (en *logrusEntry) Field(key string, value interface{}) Entry {
	en.e = en.e.WithField(key, value)
	return en
}

func (en *logrusEntry) Error(err error) Entry {
	en.e = en.e.WithError(err)
	return en
}

func (en *logrusEntry) Send() {
	en.e.Log(en.lvl, en.msg)
}

type discardLogger struct{}

func (discardLogger) Entry(_ Level, _ string) Entry { return discardEntry{} }
func (discardLogger) SetLevel(_ Level)              {}
func (d discardLogger) With(_ string, _ interface{}) Logger {
	return d
}

type discardEntry struct{}

func (discardEntry) Field(_ string, _ interface{}) Entry { return discardEntry{} }
func (discardEntry) Error(_ error) Entry                 { return discardEntry{} }
func (discardEntry) Send()                               {}

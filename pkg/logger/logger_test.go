// Copyright (C) 2025 SAGE-X Project
//
// This file is part of alipay-global-go.
//
// alipay-global-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// alipay-global-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with alipay-global-go.  If not, see <https://www.gnu.org/licenses/>.

package logger

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zeromicro/go-zero/core/logx"
)

// recordingWriter captures logx output
type recordingWriter struct {
	entries []string
}

func (w *recordingWriter) record(level string, v any, fields []logx.LogField) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(" ")
	if s, ok := v.(string); ok {
		b.WriteString(s)
	}
	for _, f := range fields {
		b.WriteString(" ")
		b.WriteString(f.Key)
	}
	w.entries = append(w.entries, b.String())
}

func (w *recordingWriter) Alert(v any)                          { w.record("alert", v, nil) }
func (w *recordingWriter) Close() error                         { return nil }
func (w *recordingWriter) Debug(v any, fields ...logx.LogField) { w.record("debug", v, fields) }
func (w *recordingWriter) Error(v any, fields ...logx.LogField) { w.record("error", v, fields) }
func (w *recordingWriter) Info(v any, fields ...logx.LogField)  { w.record("info", v, fields) }
func (w *recordingWriter) Severe(v any)                         { w.record("severe", v, nil) }
func (w *recordingWriter) Slow(v any, fields ...logx.LogField)  { w.record("slow", v, fields) }
func (w *recordingWriter) Stack(v any)                          { w.record("stack", v, nil) }
func (w *recordingWriter) Stat(v any, fields ...logx.LogField)  { w.record("stat", v, fields) }

func captureLogs(t *testing.T) *recordingWriter {
	t.Helper()
	w := &recordingWriter{}
	old := logx.Reset()
	logx.SetWriter(w)
	logx.SetLevel(logx.DebugLevel)
	t.Cleanup(func() {
		logx.Reset()
		if old != nil {
			logx.SetWriter(old)
		}
	})
	return w
}

func TestLoggerLevels(t *testing.T) {
	w := captureLogs(t)
	l := New()

	l.Infow("call finished", F("path", "/ams/api/v1/payments/pay"))
	l.Errorw("verification failed", F("stage", "signature"))
	l.Debugw("signed request", F("client_id", "CLIENT"))

	want := []string{
		"info call finished path",
		"error verification failed stage",
		"debug signed request client_id",
	}
	if assert.Len(t, w.entries, len(want)) {
		for i, prefix := range want {
			assert.True(t, strings.HasPrefix(w.entries[i], prefix), w.entries[i])
		}
	}
}

func TestLoggerWithFields(t *testing.T) {
	w := captureLogs(t)

	New().WithFields(F("component", "transport")).Infof("status %d", 200)

	assert.Len(t, w.entries, 1)
	assert.Contains(t, w.entries[0], "status 200")
	assert.Contains(t, w.entries[0], "component")
}

func TestDefaultBeforeInit(t *testing.T) {
	w := captureLogs(t)

	assert.NotNil(t, Default())
	assert.NotPanics(t, func() {
		Infow("hello")
		Default().WithContext(context.Background()).Info("with context")
	})
	assert.Len(t, w.entries, 2)
}

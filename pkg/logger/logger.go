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

// Package logger wraps go-zero logx with the leveled and structured calls
// used across the library.
//
// Nothing in this module logs key material, canonical strings, message
// bodies or signatures. Fields are limited to paths, client ids, HTTP
// status, result codes, verification stages and latency.
package logger

import (
	"context"
	"sync"

	"github.com/zeromicro/go-zero/core/logx"
)

// Field is a structured log field.
type Field = logx.LogField

// F builds a Field.
func F(key string, value any) Field {
	return logx.Field(key, value)
}

// Logger wraps logx.Logger
type Logger struct {
	logger logx.Logger
}

// New creates a Logger that reports the caller of the wrapper
func New() *Logger {
	return &Logger{
		logger: logx.WithCallerSkip(1),
	}
}

// Info logs at info level
func (l *Logger) Info(v ...any) {
	l.logger.Info(v...)
}

// Infof logs a formatted message at info level
func (l *Logger) Infof(format string, v ...any) {
	l.logger.Infof(format, v...)
}

// Infow logs a message with fields at info level
func (l *Logger) Infow(msg string, fields ...Field) {
	l.logger.Infow(msg, fields...)
}

// Error logs at error level
func (l *Logger) Error(v ...any) {
	l.logger.Error(v...)
}

// Errorf logs a formatted message at error level
func (l *Logger) Errorf(format string, v ...any) {
	l.logger.Errorf(format, v...)
}

// Errorw logs a message with fields at error level
func (l *Logger) Errorw(msg string, fields ...Field) {
	l.logger.Errorw(msg, fields...)
}

// Debugf logs a formatted message at debug level
func (l *Logger) Debugf(format string, v ...any) {
	l.logger.Debugf(format, v...)
}

// Debugw logs a message with fields at debug level
func (l *Logger) Debugw(msg string, fields ...Field) {
	l.logger.Debugw(msg, fields...)
}

// WithFields returns a Logger that adds fields to every entry
func (l *Logger) WithFields(fields ...Field) *Logger {
	return &Logger{
		logger: l.logger.WithFields(fields...),
	}
}

// WithContext returns a Logger carrying trace ids found in ctx
func (l *Logger) WithContext(ctx context.Context) *Logger {
	return &Logger{
		logger: l.logger.WithContext(ctx),
	}
}

var (
	defaultLogger *Logger
	defaultMu     sync.Mutex
	once          sync.Once
)

// Config is the logging configuration
type Config struct {
	ServiceName string `yaml:"service_name"`
	Mode        string `yaml:"mode"`     // console, file, volume
	Level       string `yaml:"level"`    // debug, info, error, severe
	Encoding    string `yaml:"encoding"` // json, plain
}

// DefaultConfig returns the default configuration
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName: serviceName,
		Mode:        "console",
		Level:       "info",
		Encoding:    "json",
	}
}

// Init sets up logx with defaults for serviceName
func Init(serviceName string) {
	InitWithConfig(DefaultConfig(serviceName))
}

// InitWithConfig sets up logx once. Later calls are ignored
func InitWithConfig(config Config) {
	once.Do(func() {
		fallback := DefaultConfig(config.ServiceName)
		if config.Mode == "" {
			config.Mode = fallback.Mode
		}
		if config.Level == "" {
			config.Level = fallback.Level
		}
		if config.Encoding == "" {
			config.Encoding = fallback.Encoding
		}

		logx.MustSetup(logx.LogConf{
			ServiceName: config.ServiceName,
			Mode:        config.Mode,
			Level:       config.Level,
			Encoding:    config.Encoding,
		})

		defaultMu.Lock()
		defaultLogger = New()
		defaultMu.Unlock()
	})
}

// Default returns the shared Logger. It works before Init, using logx
// defaults
func Default() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger == nil {
		defaultLogger = New()
	}
	return defaultLogger
}

// Close flushes and closes logx outputs
func Close() {
	logx.Close()
}

func Infof(format string, v ...any) {
	Default().Infof(format, v...)
}

func Infow(msg string, fields ...Field) {
	Default().Infow(msg, fields...)
}

func Errorf(format string, v ...any) {
	Default().Errorf(format, v...)
}

func Errorw(msg string, fields ...Field) {
	Default().Errorw(msg, fields...)
}

func Debugw(msg string, fields ...Field) {
	Default().Debugw(msg, fields...)
}

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

package webhook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sage-x-project/alipay-global-go/pkg/logger"
	"github.com/sage-x-project/alipay-global-go/pkg/metrics"
	"github.com/sage-x-project/alipay-global-go/pkg/protocol"
	"github.com/sage-x-project/alipay-global-go/pkg/signature"
	"github.com/sage-x-project/alipay-global-go/pkg/tracing"
	"github.com/sage-x-project/alipay-global-go/pkg/verifier"
)

// DefaultMaxBodyBytes caps the notification body read for verification
const DefaultMaxBodyBytes = 1 << 20

// ErrBodyTooLarge is returned when a notification exceeds the body limit
var ErrBodyTooLarge = errors.New("notification body too large")

type contextKey string

const messageKey contextKey = "alipay_inbound_message"

// GinMessageKey is the gin context key holding the verified message
const GinMessageKey = "alipay.message"

// ErrorHandler handles verification errors
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Middleware verifies the signature of asynchronous notifications
type Middleware struct {
	selector     verifier.KeySelector
	verifier     verifier.Verifier
	errorHandler ErrorHandler
	maxBody      int64

	logger  *logger.Logger
	metrics *metrics.Metrics
	tracer  *tracing.Tracer
}

// Option configures a Middleware
type Option func(*Middleware)

// WithVerifier replaces the default verifier, e.g. to require a client id
// or a clock skew window
func WithVerifier(v verifier.Verifier) Option {
	return func(m *Middleware) {
		if v != nil {
			m.verifier = v
		}
	}
}

// WithErrorHandler sets a custom error handler
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Middleware) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMaxBodyBytes caps the body size
func WithMaxBodyBytes(n int64) Option {
	return func(m *Middleware) {
		if n > 0 {
			m.maxBody = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(m *Middleware) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = mt
	}
}

// WithTracer sets the tracer
func WithTracer(t *tracing.Tracer) Option {
	return func(m *Middleware) {
		if t != nil {
			m.tracer = t
		}
	}
}

// NewMiddleware creates a middleware that checks notifications against the
// Alipay public key chosen by selector
func NewMiddleware(selector verifier.KeySelector, opts ...Option) *Middleware {
	m := &Middleware{
		selector:     selector,
		verifier:     verifier.NewDefaultVerifier(),
		errorHandler: defaultErrorHandler,
		maxBody:      DefaultMaxBodyBytes,
		logger:       logger.Default(),
		tracer:       tracing.NewTracer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Verify reads and verifies the notification in r. On return the body of
// r can be read again
func (m *Middleware) Verify(r *http.Request) (*verifier.InboundMessage, error) {
	body, err := m.readBody(r)
	if err != nil {
		m.metrics.ObserveWebhook(false)
		return nil, err
	}

	msg := verifier.MessageFromRequest(r, body)

	ctx, span := m.tracer.StartWebhookSpan(r.Context(), msg.Path, msg.ClientID)
	err = m.verifier.VerifyMessageWithSelector(ctx, msg, m.selector)
	stage, _ := signature.IsVerificationError(err)
	m.tracer.EndWebhookSpan(span, string(stage), err)

	if err != nil {
		m.metrics.ObserveVerification(metrics.SourceWebhook, string(stage))
		m.metrics.ObserveWebhook(false)
		m.logger.Errorw("notification signature rejected",
			logger.F("path", msg.Path),
			logger.F("client_id", msg.ClientID),
			logger.F("stage", string(stage)))
		return nil, fmt.Errorf("signature verification failed: %w", err)
	}

	m.metrics.ObserveVerification(metrics.SourceWebhook, "ok")
	m.metrics.ObserveWebhook(true)
	m.logger.Debugw("notification verified",
		logger.F("path", msg.Path),
		logger.F("client_id", msg.ClientID))
	return msg, nil
}

// Wrap wraps an HTTP handler with notification verification. next only
// runs for verified requests
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		msg, err := m.Verify(r)
		if err != nil {
			m.errorHandler(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithMessage(r.Context(), msg)))
	})
}

// Gin returns the middleware as a gin handler. The verified message is in
// the request context and under GinMessageKey
func (m *Middleware) Gin() gin.HandlerFunc {
	return func(c *gin.Context) {
		msg, err := m.Verify(c.Request)
		if err != nil {
			m.errorHandler(c.Writer, c.Request, err)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(ContextWithMessage(c.Request.Context(), msg))
		c.Set(GinMessageKey, msg)
		c.Next()
	}
}

// ContextWithMessage stores a verified message in ctx
func ContextWithMessage(ctx context.Context, msg *verifier.InboundMessage) context.Context {
	return context.WithValue(ctx, messageKey, msg)
}

// MessageFromContext extracts the verified message from request context
func MessageFromContext(ctx context.Context) (*verifier.InboundMessage, bool) {
	msg, ok := ctx.Value(messageKey).(*verifier.InboundMessage)
	return msg, ok
}

// ParseNotification decodes a verified notification body
func ParseNotification(body []byte) (*protocol.PaymentNotification, error) {
	return protocol.ParseNotification(body)
}

func (m *Middleware) readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, m.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read notification body: %w", err)
	}
	if int64(len(body)) > m.maxBody {
		return nil, ErrBodyTooLarge
	}

	// Restore body for handler
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

// defaultErrorHandler is the default error handler
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, fmt.Sprintf("Unauthorized: %s", err.Error()), http.StatusUnauthorized)
}

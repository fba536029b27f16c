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

// Package tracing wraps OpenTelemetry spans around AMS API calls and
// notification handling. Spans carry identifiers and outcomes only.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/sage-x-project/alipay-global-go"

// Tracer provides spans for the client and webhook packages
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer from the global provider
func NewTracer() *Tracer {
	return NewTracerWithProvider(otel.GetTracerProvider())
}

// NewTracerWithProvider creates a Tracer from provider
func NewTracerWithProvider(provider trace.TracerProvider) *Tracer {
	return &Tracer{
		tracer: provider.Tracer(tracerName),
	}
}

// StartCallSpan starts a span for an outbound API call
func (t *Tracer) StartCallSpan(ctx context.Context, endpoint, path, requestID string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "ams.call",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("ams.endpoint", endpoint),
			attribute.String("url.path", path),
			attribute.String("ams.request_id", requestID),
		),
	)
}

// EndCallSpan ends a call span with the HTTP status and AMS result
func (t *Tracer) EndCallSpan(span trace.Span, statusCode int, resultStatus, resultCode string, err error) {
	span.SetAttributes(
		attribute.Int("http.response.status_code", statusCode),
		attribute.String("ams.result_status", resultStatus),
		attribute.String("ams.result_code", resultCode),
	)
	finish(span, err)
}

// StartWebhookSpan starts a span for a received notification
func (t *Tracer) StartWebhookSpan(ctx context.Context, path, clientID string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "ams.webhook",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("url.path", path),
			attribute.String("ams.client_id", clientID),
		),
	)
}

// EndWebhookSpan ends a webhook span. A verification failure is recorded
// with its stage
func (t *Tracer) EndWebhookSpan(span trace.Span, stage string, err error) {
	if stage != "" {
		span.SetAttributes(attribute.String("ams.verification_stage", stage))
	}
	finish(span, err)
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

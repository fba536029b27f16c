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

// Package metrics exposes Prometheus instruments for signing, verification
// and AMS API calls. A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "alipay_global"

// Verification sources
const (
	SourceResponse = "response"
	SourceWebhook  = "webhook"
)

// Metrics holds the library's instruments
type Metrics struct {
	SignaturesTotal    *prometheus.CounterVec
	VerificationsTotal *prometheus.CounterVec
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	WebhooksTotal      *prometheus.CounterVec
}

// New registers the instruments with reg. Use prometheus.DefaultRegisterer
// in production and a fresh registry in tests
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Labels: result (ok, error)
		SignaturesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signatures_total",
				Help:      "Signatures produced for outbound messages",
			},
			[]string{"result"},
		),

		// Labels: source (response, webhook), result (ok or failing stage)
		VerificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "verifications_total",
				Help:      "Signature verifications of inbound messages",
			},
			[]string{"source", "result"},
		),

		// Labels: endpoint, result_status (S, F, U, error)
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "AMS API calls by endpoint and result status",
			},
			[]string{"endpoint", "result_status"},
		),

		// Labels: endpoint
		// Buckets: 50ms, 100ms, 250ms, 500ms, 1s, 2s, 5s, 10s, 30s
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_milliseconds",
				Help:      "AMS API call latency in milliseconds",
				Buckets:   []float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000},
			},
			[]string{"endpoint"},
		),

		// Labels: result (accepted, rejected)
		WebhooksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhooks_total",
				Help:      "Notifications received on the notify endpoint",
			},
			[]string{"result"},
		),
	}
}

// ObserveSignature counts one signing attempt
func (m *Metrics) ObserveSignature(err error) {
	if m == nil {
		return
	}
	m.SignaturesTotal.WithLabelValues(outcome(err)).Inc()
}

// ObserveVerification counts one verification. result is "ok", the
// failing stage or "too_large"
func (m *Metrics) ObserveVerification(source, result string) {
	if m == nil {
		return
	}
	m.VerificationsTotal.WithLabelValues(source, result).Inc()
}

// ObserveRequest records one API call
func (m *Metrics) ObserveRequest(endpoint, resultStatus string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(endpoint, resultStatus).Inc()
	m.RequestDuration.WithLabelValues(endpoint).Observe(float64(elapsed.Milliseconds()))
}

// ObserveWebhook counts one received notification
func (m *Metrics) ObserveWebhook(accepted bool) {
	if m == nil {
		return
	}
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	m.WebhooksTotal.WithLabelValues(result).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

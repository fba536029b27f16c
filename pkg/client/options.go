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

package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/sage-x-project/alipay-global-go/pkg/logger"
	"github.com/sage-x-project/alipay-global-go/pkg/metrics"
	"github.com/sage-x-project/alipay-global-go/pkg/tracing"
	"github.com/sage-x-project/alipay-global-go/pkg/verifier"
)

// Option configures a Client
type Option func(*Client)

// WithBaseURL sets the gateway host, e.g. a regional domain
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithSandbox switches endpoint paths to their sandbox form
func WithSandbox(sandbox bool) Option {
	return func(c *Client) {
		c.sandbox = sandbox
	}
}

// WithBaseTransport sets the RoundTripper beneath the signing transport
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.base = rt
	}
}

// WithTimeout sets the overall timeout of one call
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

// WithKeyVersion sets the keyVersion sent in the Signature header
func WithKeyVersion(v string) Option {
	return func(c *Client) {
		c.keyVersion = v
	}
}

// WithKeySelector picks the Alipay public key per keyVersion instead of
// the single key held by the key material
func WithKeySelector(s verifier.KeySelector) Option {
	return func(c *Client) {
		c.selector = s
	}
}

// WithVerifyOptions sets response verification options such as a clock
// skew window
func WithVerifyOptions(opts *verifier.VerifyOptions) Option {
	return func(c *Client) {
		c.verifyOpts = opts
	}
}

// WithoutResponseVerification stops checking response signatures. Only
// for stubs that cannot sign; the client logs a warning when built
func WithoutResponseVerification() Option {
	return func(c *Client) {
		c.verify = false
	}
}

// WithClock sets the time source for Request-Time
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTracer sets the tracer
func WithTracer(t *tracing.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

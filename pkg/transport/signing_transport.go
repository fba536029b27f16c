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

package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sage-x-project/alipay-global-go/pkg/canonical"
	"github.com/sage-x-project/alipay-global-go/pkg/keys"
	"github.com/sage-x-project/alipay-global-go/pkg/logger"
	"github.com/sage-x-project/alipay-global-go/pkg/metrics"
	"github.com/sage-x-project/alipay-global-go/pkg/signature"
	"github.com/sage-x-project/alipay-global-go/pkg/signer"
	"github.com/sage-x-project/alipay-global-go/pkg/verifier"
)

// DefaultMaxResponseBytes caps how much of a response body is read for
// verification
const DefaultMaxResponseBytes = 10 << 20

// ErrResponseTooLarge is returned when a response body exceeds the limit
// set by WithMaxResponseBytes
var ErrResponseTooLarge = errors.New("response body too large")

const contentTypeJSON = "application/json; charset=UTF-8"

// SigningTransport signs requests and verifies responses for one client id
type SigningTransport struct {
	base     http.RoundTripper
	clientID string
	key      keys.PrivateKeyHolder
	selector verifier.KeySelector

	signer   signer.Signer
	verifier verifier.Verifier
	now      func() time.Time
	maxBody  int64

	logger  *logger.Logger
	metrics *metrics.Metrics
}

// Option configures a SigningTransport
type Option func(*SigningTransport)

// WithBase sets the underlying RoundTripper. Default http.DefaultTransport
func WithBase(base http.RoundTripper) Option {
	return func(t *SigningTransport) {
		if base != nil {
			t.base = base
		}
	}
}

// WithSigner replaces the default signer, e.g. to change the key version
func WithSigner(s signer.Signer) Option {
	return func(t *SigningTransport) {
		if s != nil {
			t.signer = s
		}
	}
}

// WithVerifier replaces the default verifier, e.g. to add a clock skew window
func WithVerifier(v verifier.Verifier) Option {
	return func(t *SigningTransport) {
		if v != nil {
			t.verifier = v
		}
	}
}

// WithClock sets the time source for Request-Time
func WithClock(now func() time.Time) Option {
	return func(t *SigningTransport) {
		if now != nil {
			t.now = now
		}
	}
}

// WithMaxResponseBytes caps the response body size
func WithMaxResponseBytes(n int64) Option {
	return func(t *SigningTransport) {
		if n > 0 {
			t.maxBody = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(t *SigningTransport) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m *metrics.Metrics) Option {
	return func(t *SigningTransport) {
		t.metrics = m
	}
}

// NewSigningTransport creates a transport that signs with key as clientID.
// Responses are verified with the key selector picks; a nil selector turns
// verification off
func NewSigningTransport(clientID string, key keys.PrivateKeyHolder, selector verifier.KeySelector, opts ...Option) *SigningTransport {
	t := &SigningTransport{
		base:     http.DefaultTransport,
		clientID: clientID,
		key:      key,
		selector: selector,
		signer:   signer.NewDefaultSigner(),
		verifier: verifier.NewDefaultVerifier(),
		now:      time.Now,
		maxBody:  DefaultMaxResponseBytes,
		logger:   logger.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// VerifiesResponses reports whether response verification is on
func (t *SigningTransport) VerifiesResponses() bool {
	return t.selector != nil
}

// RoundTrip implements http.RoundTripper
func (t *SigningTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	// Read body to sign exactly what is sent
	body, err := drainBody(req)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	sc := canonical.NewSigningContext(canonical.Method(req.Method), req.URL.Path, t.clientID, t.now())
	msg, err := t.signer.SignMessage(ctx, sc, canonical.RawPayload(body), t.key)
	t.metrics.ObserveSignature(err)
	if err != nil {
		return nil, err
	}

	out := req.Clone(ctx)
	out.Body = io.NopCloser(strings.NewReader(msg.Body))
	out.ContentLength = int64(len(msg.Body))
	out.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(msg.Body)), nil
	}
	if out.Header.Get("Content-Type") == "" {
		out.Header.Set("Content-Type", contentTypeJSON)
	}
	msg.ApplyRequestHeaders(out.Header)

	t.logger.Debugw("sending signed request",
		logger.F("path", sc.Path),
		logger.F("client_id", sc.ClientID),
		logger.F("key_version", msg.Header.KeyVersion))

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if t.selector == nil {
		return resp, nil
	}

	// Read response body for verification
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBody+1))
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(respBody)) > t.maxBody {
		t.metrics.ObserveVerification(metrics.SourceResponse, "too_large")
		t.logger.Errorw("response body exceeds limit",
			logger.F("path", sc.Path),
			logger.F("status", resp.StatusCode),
			logger.F("limit", t.maxBody))
		return nil, fmt.Errorf("response from %s: %w", sc.Path, ErrResponseTooLarge)
	}

	inbound := verifier.MessageFromResponse(resp.Header, sc.Method, sc.Path, respBody)
	if err := t.verifier.VerifyMessageWithSelector(ctx, inbound, t.selector); err != nil {
		stage, _ := signature.IsVerificationError(err)
		t.metrics.ObserveVerification(metrics.SourceResponse, string(stage))
		t.logger.Errorw("response signature rejected",
			logger.F("path", sc.Path),
			logger.F("status", resp.StatusCode),
			logger.F("stage", string(stage)))
		return nil, fmt.Errorf("response from %s: %w", sc.Path, err)
	}
	t.metrics.ObserveVerification(metrics.SourceResponse, "ok")

	// Restore body for caller
	resp.Body = io.NopCloser(bytes.NewReader(respBody))
	resp.ContentLength = int64(len(respBody))
	return resp, nil
}

func drainBody(req *http.Request) (string, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return "", nil
	}
	defer req.Body.Close()

	data, err := io.ReadAll(req.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

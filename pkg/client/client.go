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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sage-x-project/alipay-global-go/pkg/canonical"
	"github.com/sage-x-project/alipay-global-go/pkg/config"
	"github.com/sage-x-project/alipay-global-go/pkg/keys"
	"github.com/sage-x-project/alipay-global-go/pkg/logger"
	"github.com/sage-x-project/alipay-global-go/pkg/metrics"
	"github.com/sage-x-project/alipay-global-go/pkg/protocol"
	"github.com/sage-x-project/alipay-global-go/pkg/signature"
	"github.com/sage-x-project/alipay-global-go/pkg/signer"
	"github.com/sage-x-project/alipay-global-go/pkg/tracing"
	"github.com/sage-x-project/alipay-global-go/pkg/transport"
	"github.com/sage-x-project/alipay-global-go/pkg/verifier"
)

// ResultCarrier is implemented by every response type
type ResultCarrier interface {
	ResultOf() protocol.Result
}

type validator interface {
	Validate() error
}

type requestIdentifier interface {
	RequestID() string
}

// Client calls AMS APIs as one merchant client id
type Client struct {
	clientID   string
	baseURL    string
	sandbox    bool
	keyVersion string
	timeout    time.Duration
	now        func() time.Time

	base       http.RoundTripper
	selector   verifier.KeySelector
	verifyOpts *verifier.VerifyOptions
	verify     bool

	httpClient *http.Client
	logger     *logger.Logger
	metrics    *metrics.Metrics
	tracer     *tracing.Tracer
}

// New creates a client for clientID. km must hold the merchant private
// key and, unless verification is turned off or a key selector is given,
// the Alipay public key
func New(clientID string, km *keys.KeyMaterial, opts ...Option) (*Client, error) {
	if clientID == "" {
		return nil, config.ErrMissingClientID
	}
	if !km.HasPrivateKey() {
		return nil, keys.ErrNoPrivateKey
	}

	c := &Client{
		clientID:   clientID,
		baseURL:    protocol.DefaultBaseURL,
		keyVersion: signature.DefaultKeyVersion,
		timeout:    config.DefaultTimeout,
		now:        time.Now,
		base:       http.DefaultTransport,
		verify:     true,
		logger:     logger.Default(),
		tracer:     tracing.NewTracer(),
	}
	for _, opt := range opts {
		opt(c)
	}

	var selector verifier.KeySelector
	if c.verify {
		selector = c.selector
		if selector == nil {
			if !km.HasPublicKey() {
				return nil, fmt.Errorf("response verification needs the alipay public key: %w", keys.ErrNoPublicKey)
			}
			selector = verifier.NewStaticKeySelector(km)
		}
	} else {
		c.logger.Errorw("response signature verification is disabled",
			logger.F("client_id", clientID))
	}

	topts := []transport.Option{
		transport.WithBase(c.base),
		transport.WithClock(c.now),
		transport.WithLogger(c.logger),
		transport.WithMetrics(c.metrics),
		transport.WithSigner(signer.NewDefaultSignerWithOptions(&signer.SigningOptions{
			KeyVersion: c.keyVersion,
		})),
	}
	if c.verifyOpts != nil {
		topts = append(topts, transport.WithVerifier(verifier.NewDefaultVerifierWithOptions(c.verifyOpts)))
	}
	c.httpClient = transport.NewHTTPClient(clientID, km, selector, c.timeout, topts...)

	return c, nil
}

// NewFromConfig loads keys named by cfg and creates a client. opts are
// applied after the configured values
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	km, err := cfg.LoadKeys()
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithBaseURL(cfg.BaseURL),
		WithSandbox(cfg.Sandbox),
		WithTimeout(cfg.Timeout),
	}
	if cfg.KeyVersion != "" {
		base = append(base, WithKeyVersion(cfg.KeyVersion))
	}
	if cfg.SkipResponseVerification {
		base = append(base, WithoutResponseVerification())
	}
	return New(cfg.ClientID, km, append(base, opts...)...)
}

// ClientID returns the merchant client id
func (c *Client) ClientID() string {
	return c.clientID
}

// BaseURL returns the gateway host
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Sandbox reports whether sandbox paths are used
func (c *Client) Sandbox() bool {
	return c.sandbox
}

// VerifiesResponses reports whether response signatures are checked
func (c *Client) VerifiesResponses() bool {
	return c.verify
}

// Pay creates a cashier payment. A U result with PAYMENT_IN_PROCESS is the
// normal outcome: redirect the buyer to NormalURL and wait for the
// notification
func (c *Client) Pay(ctx context.Context, p *protocol.CashierPayment) (*protocol.PayResponse, error) {
	out := new(protocol.PayResponse)
	err := c.Call(ctx, protocol.EndpointPay, p, out)
	if rerr, ok := AsResultError(err); ok && rerr.Result.ResultCode == protocol.CodePaymentInProcess && rerr.Result.IsUnknown() {
		return out, nil
	}
	return settle(out, err)
}

// Refund refunds all or part of a payment
func (c *Client) Refund(ctx context.Context, r *protocol.Refund) (*protocol.RefundResponse, error) {
	out := new(protocol.RefundResponse)
	return settle(out, c.Call(ctx, protocol.EndpointRefund, r, out))
}

// InquiryPayment queries the state of a payment
func (c *Client) InquiryPayment(ctx context.Context, q *protocol.PaymentInquiry) (*protocol.InquiryResponse, error) {
	out := new(protocol.InquiryResponse)
	return settle(out, c.Call(ctx, protocol.EndpointInquiryPayment, q, out))
}

// Call posts payload to endpoint and decodes the verified response into
// out. A result other than S is returned as *ResultError with out filled
func (c *Client) Call(ctx context.Context, endpoint protocol.Endpoint, payload any, out ResultCarrier) error {
	if out == nil {
		out = new(protocol.Response)
	}
	if v, ok := payload.(validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	body, err := canonical.MarshalJSON(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", endpoint.Name, err)
	}

	var requestID string
	if r, ok := payload.(requestIdentifier); ok {
		requestID = r.RequestID()
	}

	path := endpoint.Path(c.sandbox)
	ctx, span := c.tracer.StartCallSpan(ctx, endpoint.Name, path, requestID)
	start := time.Now()

	statusCode, err := c.do(ctx, endpoint, path, body, out)

	result := out.ResultOf()
	label := string(result.ResultStatus)
	if label == "" {
		label = "error"
	}
	c.tracer.EndCallSpan(span, statusCode, string(result.ResultStatus), result.ResultCode, err)
	c.metrics.ObserveRequest(endpoint.Name, label, time.Since(start))

	if err != nil {
		c.logger.Errorw("ams call failed",
			logger.F("endpoint", endpoint.Name),
			logger.F("path", path),
			logger.F("status", statusCode),
			logger.F("result_code", result.ResultCode),
			logger.F("error", err.Error()))
		return err
	}

	c.logger.Debugw("ams call succeeded",
		logger.F("endpoint", endpoint.Name),
		logger.F("path", path),
		logger.F("elapsed_ms", time.Since(start).Milliseconds()))
	return nil
}

func (c *Client) do(ctx context.Context, endpoint protocol.Endpoint, path, body string, out ResultCarrier) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create %s request: %w", endpoint.Name, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s request failed: %w", endpoint.Name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read %s response: %w", endpoint.Name, err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if err := json.Unmarshal(data, out); err != nil {
		if !ok {
			return resp.StatusCode, unexpectedStatus(endpoint.Name, resp.StatusCode)
		}
		return resp.StatusCode, fmt.Errorf("failed to decode %s response: %w", endpoint.Name, err)
	}

	result := out.ResultOf()
	if result.ResultStatus == "" {
		if !ok {
			return resp.StatusCode, unexpectedStatus(endpoint.Name, resp.StatusCode)
		}
		return resp.StatusCode, fmt.Errorf("%s: %w", endpoint.Name, ErrMissingResult)
	}
	if result.IsSuccess() {
		return resp.StatusCode, nil
	}
	return resp.StatusCode, &ResultError{
		Endpoint:   endpoint.Name,
		StatusCode: resp.StatusCode,
		Result:     result,
	}
}

// settle keeps the decoded response alongside a ResultError and drops it
// for every other failure
func settle[R ResultCarrier](out R, err error) (R, error) {
	if err == nil {
		return out, nil
	}
	if _, ok := AsResultError(err); ok {
		return out, err
	}
	var zero R
	return zero, err
}

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
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/alipay-global-go/internal/amstest"
	"github.com/sage-x-project/alipay-global-go/internal/testkeys"
	"github.com/sage-x-project/alipay-global-go/pkg/config"
	"github.com/sage-x-project/alipay-global-go/pkg/keys"
	"github.com/sage-x-project/alipay-global-go/pkg/metrics"
	"github.com/sage-x-project/alipay-global-go/pkg/protocol"
	"github.com/sage-x-project/alipay-global-go/pkg/signature"
	"github.com/sage-x-project/alipay-global-go/pkg/verifier"
)

const testClientID = "SANDBOX_5YBZ1A2ZTEST"

func setupTestClient(t *testing.T, opts ...Option) (*amstest.Gateway, *Client) {
	t.Helper()

	merchant := testkeys.Merchant(t)
	alipay := testkeys.Alipay(t)

	gw := amstest.NewGateway(&merchant.PublicKey, alipay)
	t.Cleanup(gw.Close)

	opts = append([]Option{WithBaseURL(gw.URL()), WithSandbox(true)}, opts...)
	c, err := New(testClientID, keys.NewKeyMaterial(merchant, &alipay.PublicKey), opts...)
	require.NoError(t, err)
	return gw, c
}

func testPayment() *protocol.CashierPayment {
	return protocol.NewCashierPayment(protocol.CashierPaymentParams{
		PaymentRequestID:  "pay-req-001",
		ReferenceOrderID:  "order-001",
		OrderDescription:  "Cappuccino",
		Currency:          "USD",
		AmountMinor:       1250,
		PaymentMethodType: "ALIPAY_CN",
		RedirectURL:       "https://merchant.example/return",
		NotifyURL:         "https://merchant.example/alipay/notify",
		TerminalType:      protocol.TerminalWeb,
	})
}

func respondWith(status int, v any) amstest.Responder {
	return func(path string, body []byte) (int, any) {
		return status, v
	}
}

func TestNew(t *testing.T) {
	merchant := testkeys.Merchant(t)
	alipay := testkeys.Alipay(t)

	t.Run("defaults", func(t *testing.T) {
		c, err := New(testClientID, keys.NewKeyMaterial(merchant, &alipay.PublicKey))
		require.NoError(t, err)
		assert.Equal(t, testClientID, c.ClientID())
		assert.Equal(t, protocol.DefaultBaseURL, c.BaseURL())
		assert.False(t, c.Sandbox())
		assert.True(t, c.VerifiesResponses())
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		c, err := New(testClientID, keys.NewKeyMaterial(merchant, &alipay.PublicKey),
			WithBaseURL("https://open-na-global.alipay.com/"))
		require.NoError(t, err)
		assert.Equal(t, "https://open-na-global.alipay.com", c.BaseURL())
	})

	t.Run("missing client id", func(t *testing.T) {
		_, err := New("", keys.NewKeyMaterial(merchant, &alipay.PublicKey))
		assert.ErrorIs(t, err, config.ErrMissingClientID)
	})

	t.Run("missing private key", func(t *testing.T) {
		_, err := New(testClientID, keys.NewKeyMaterial(nil, &alipay.PublicKey))
		assert.ErrorIs(t, err, keys.ErrNoPrivateKey)
	})

	t.Run("missing alipay public key", func(t *testing.T) {
		_, err := New(testClientID, keys.NewKeyMaterial(merchant, nil))
		assert.ErrorIs(t, err, keys.ErrNoPublicKey)
	})

	t.Run("public key not needed without verification", func(t *testing.T) {
		c, err := New(testClientID, keys.NewKeyMaterial(merchant, nil), WithoutResponseVerification())
		require.NoError(t, err)
		assert.False(t, c.VerifiesResponses())
	})
}

func TestClient_Pay(t *testing.T) {
	t.Run("payment in process is accepted", func(t *testing.T) {
		gw, c := setupTestClient(t)
		gw.SetResponder(respondWith(http.StatusOK, protocol.PayResponse{
			Response: protocol.Response{Result: protocol.Result{
				ResultCode:    protocol.CodePaymentInProcess,
				ResultStatus:  protocol.ResultUnknown,
				ResultMessage: "payment in process",
			}},
			PaymentRequestID: "pay-req-001",
			PaymentID:        "2024010119040108000000000000001",
			NormalURL:        "https://open-sea-global.alipay.com/checkout?token=abc",
		}))

		resp, err := c.Pay(context.Background(), testPayment())

		require.NoError(t, err)
		assert.Equal(t, "https://open-sea-global.alipay.com/checkout?token=abc", resp.NormalURL)
		assert.Equal(t, "2024010119040108000000000000001", resp.PaymentID)

		received := gw.Received()
		require.Len(t, received, 1)
		assert.Equal(t, "/ams/sandbox/api/v1/payments/pay", received[0].Path)
		assert.Equal(t, testClientID, received[0].ClientID)

		var sent protocol.CashierPayment
		require.NoError(t, json.Unmarshal(received[0].Body, &sent))
		assert.Equal(t, "pay-req-001", sent.PaymentRequestID)
		assert.Equal(t, protocol.ProductCodeCashierPayment, sent.ProductCode)
		assert.Equal(t, "1250", sent.PaymentAmount.Value)
	})

	t.Run("immediate success", func(t *testing.T) {
		_, c := setupTestClient(t)

		resp, err := c.Pay(context.Background(), testPayment())

		require.NoError(t, err)
		assert.True(t, resp.ResultOf().IsSuccess())
	})

	t.Run("failed result", func(t *testing.T) {
		gw, c := setupTestClient(t)
		gw.SetResponder(respondWith(http.StatusOK, protocol.Response{Result: protocol.Result{
			ResultCode:    "CURRENCY_NOT_SUPPORT",
			ResultStatus:  protocol.ResultFailed,
			ResultMessage: "currency not supported",
		}}))

		resp, err := c.Pay(context.Background(), testPayment())

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrResultFailed)
		assert.False(t, IsAmbiguous(err))
		require.NotNil(t, resp)
		assert.Equal(t, "CURRENCY_NOT_SUPPORT", resp.Result.ResultCode)

		rerr, ok := AsResultError(err)
		require.True(t, ok)
		assert.Equal(t, protocol.EndpointPay.Name, rerr.Endpoint)
		assert.Equal(t, http.StatusOK, rerr.StatusCode)
	})

	t.Run("unknown result other than in process", func(t *testing.T) {
		gw, c := setupTestClient(t)
		gw.SetResponder(respondWith(http.StatusOK, protocol.Response{Result: protocol.Result{
			ResultCode:   protocol.CodeUnknownException,
			ResultStatus: protocol.ResultUnknown,
		}}))

		_, err := c.Pay(context.Background(), testPayment())

		assert.True(t, IsAmbiguous(err))
		assert.ErrorIs(t, err, ErrResultUnknown)
	})

	t.Run("invalid payment is not sent", func(t *testing.T) {
		gw, c := setupTestClient(t)
		p := testPayment()
		p.PaymentRedirectURL = ""

		resp, err := c.Pay(context.Background(), p)

		assert.ErrorIs(t, err, protocol.ErrInvalidRequest)
		assert.Nil(t, resp)
		assert.Empty(t, gw.Received())
	})
}

func TestClient_Refund(t *testing.T) {
	gw, c := setupTestClient(t)
	gw.SetResponder(func(path string, body []byte) (int, any) {
		var r protocol.Refund
		_ = json.Unmarshal(body, &r)
		return http.StatusOK, protocol.RefundResponse{
			Response:        protocol.Response{Result: protocol.SuccessResult()},
			RefundRequestID: r.RefundRequestID,
			RefundID:        "refund-001",
			PaymentID:       r.PaymentID,
			RefundAmount:    &r.RefundAmount,
		}
	})

	refund := protocol.NewRefund("pay-001", protocol.NewAmount("usd", 500), "customer request")
	resp, err := c.Refund(context.Background(), refund)

	require.NoError(t, err)
	assert.Equal(t, refund.RefundRequestID, resp.RefundRequestID)
	assert.Equal(t, "refund-001", resp.RefundID)
	require.NotNil(t, resp.RefundAmount)
	assert.Equal(t, "USD", resp.RefundAmount.Currency)
	assert.Equal(t, "/ams/sandbox/api/v1/payments/refund", gw.Received()[0].Path)
}

func TestClient_InquiryPayment(t *testing.T) {
	gw, c := setupTestClient(t)
	gw.SetResponder(respondWith(http.StatusOK, protocol.InquiryResponse{
		Response:      protocol.Response{Result: protocol.SuccessResult()},
		PaymentStatus: protocol.PaymentStatusProcessing,
		PaymentID:     "pay-001",
	}))

	resp, err := c.InquiryPayment(context.Background(), &protocol.PaymentInquiry{PaymentRequestID: "pay-req-001"})

	require.NoError(t, err)
	assert.Equal(t, protocol.PaymentStatusProcessing, resp.PaymentStatus)
	assert.False(t, resp.Settled())
	assert.Equal(t, "/ams/sandbox/api/v1/payments/inquiryPayment", gw.Received()[0].Path)

	_, err = c.InquiryPayment(context.Background(), &protocol.PaymentInquiry{})
	assert.ErrorIs(t, err, protocol.ErrInvalidRequest)
}

func TestClient_ResponseVerification(t *testing.T) {
	t.Run("tampered response", func(t *testing.T) {
		gw, c := setupTestClient(t)
		gw.TamperResponse = true

		resp, err := c.Pay(context.Background(), testPayment())

		assert.Nil(t, resp)
		stage, ok := signature.IsVerificationError(err)
		require.True(t, ok)
		assert.Equal(t, signature.StageSignature, stage)
		_, isResult := AsResultError(err)
		assert.False(t, isResult)
	})

	t.Run("unsigned response", func(t *testing.T) {
		gw, c := setupTestClient(t)
		gw.UnsignedResponse = true

		_, err := c.Pay(context.Background(), testPayment())

		stage, ok := signature.IsVerificationError(err)
		require.True(t, ok)
		assert.Equal(t, signature.StageHeader, stage)
	})

	t.Run("unsigned response accepted when verification is off", func(t *testing.T) {
		gw, c := setupTestClient(t, WithoutResponseVerification())
		gw.UnsignedResponse = true

		_, err := c.Pay(context.Background(), testPayment())

		assert.NoError(t, err)
	})

	t.Run("stale response rejected with skew window", func(t *testing.T) {
		_, c := setupTestClient(t, WithVerifyOptions(&verifier.VerifyOptions{
			MaxClockSkew: time.Minute,
			Now:          func() time.Time { return time.Now().Add(time.Hour) },
		}))

		_, err := c.Pay(context.Background(), testPayment())

		stage, ok := signature.IsVerificationError(err)
		require.True(t, ok)
		assert.Equal(t, signature.StageTimestamp, stage)
	})
}

func TestClient_GatewayRejectsSignature(t *testing.T) {
	alipay := testkeys.Alipay(t)
	gw := amstest.NewGateway(&testkeys.Merchant(t).PublicKey, alipay)
	defer gw.Close()

	c, err := New(testClientID, keys.NewKeyMaterial(testkeys.RSA(t, "other-merchant"), &alipay.PublicKey),
		WithBaseURL(gw.URL()))
	require.NoError(t, err)

	_, err = c.Pay(context.Background(), testPayment())

	rerr, ok := AsResultError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rerr.StatusCode)
	assert.Equal(t, protocol.CodeInvalidSignature, rerr.Result.ResultCode)
	assert.ErrorIs(t, err, ErrResultFailed)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	gw, c := setupTestClient(t)
	gw.SetResponder(respondWith(http.StatusBadGateway, map[string]string{"error": "upstream"}))

	_, err := c.InquiryPayment(context.Background(), &protocol.PaymentInquiry{PaymentID: "pay-001"})

	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestClient_MissingResult(t *testing.T) {
	gw, c := setupTestClient(t)
	gw.SetResponder(respondWith(http.StatusOK, map[string]string{"paymentId": "pay-001"}))

	_, err := c.InquiryPayment(context.Background(), &protocol.PaymentInquiry{PaymentID: "pay-001"})

	assert.ErrorIs(t, err, ErrMissingResult)
}

func TestClient_Metrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	gw, c := setupTestClient(t, WithMetrics(m))

	_, err := c.Pay(context.Background(), testPayment())
	require.NoError(t, err)

	gw.SetResponder(respondWith(http.StatusOK, protocol.Response{Result: protocol.FailedResult("")}))
	_, err = c.Pay(context.Background(), testPayment())
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("pay", "S")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("pay", "F")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SignaturesTotal.WithLabelValues("ok")))
}

func TestClient_ContextCancelled(t *testing.T) {
	_, c := setupTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Pay(ctx, testPayment())

	assert.True(t, errors.Is(err, context.Canceled) || signature.IsSigningError(err))
}

func TestNewFromConfig(t *testing.T) {
	merchant := testkeys.Merchant(t)
	alipay := testkeys.Alipay(t)

	gw := amstest.NewGateway(&merchant.PublicKey, alipay)
	defer gw.Close()

	dir := t.TempDir()
	privPath := filepath.Join(dir, "merchant_private.pem")
	pubPath := filepath.Join(dir, "alipay_public.pem")
	require.NoError(t, os.WriteFile(privPath, testkeys.PrivatePEM(t, merchant), 0o600))
	require.NoError(t, os.WriteFile(pubPath, testkeys.PublicPEM(t, alipay), 0o644))

	cfg := &config.Config{
		ClientID:            testClientID,
		Sandbox:             true,
		BaseURL:             gw.URL(),
		KeyVersion:          "3",
		Timeout:             5 * time.Second,
		PrivateKeyFile:      privPath,
		AlipayPublicKeyFile: pubPath,
	}

	c, err := NewFromConfig(cfg)
	require.NoError(t, err)
	assert.True(t, c.Sandbox())

	_, err = c.Pay(context.Background(), testPayment())
	require.NoError(t, err)
	assert.Equal(t, "/ams/sandbox/api/v1/payments/pay", gw.Received()[0].Path)

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewFromConfig(&config.Config{PrivateKeyFile: privPath})
		assert.ErrorIs(t, err, config.ErrMissingClientID)
	})

	t.Run("unreadable key file", func(t *testing.T) {
		_, err := NewFromConfig(&config.Config{ClientID: testClientID, PrivateKeyFile: filepath.Join(dir, "missing.pem")})
		assert.Error(t, err)
	})
}

func TestClient_Call(t *testing.T) {
	gw, c := setupTestClient(t)
	cancelEndpoint := protocol.NewEndpoint("cancel", "/ams/api/v1/payments/cancel")

	err := c.Call(context.Background(), cancelEndpoint, map[string]string{"paymentId": "pay-001"}, nil)

	require.NoError(t, err)
	received := gw.Received()
	require.Len(t, received, 1)
	assert.Equal(t, "/ams/sandbox/api/v1/payments/cancel", received[0].Path)
	assert.JSONEq(t, `{"paymentId":"pay-001"}`, string(received[0].Body))
}

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
	"context"
	"crypto/rsa"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/alipay-global-go/internal/testkeys"
	"github.com/sage-x-project/alipay-global-go/pkg/canonical"
	"github.com/sage-x-project/alipay-global-go/pkg/keys"
	"github.com/sage-x-project/alipay-global-go/pkg/metrics"
	"github.com/sage-x-project/alipay-global-go/pkg/protocol"
	"github.com/sage-x-project/alipay-global-go/pkg/signature"
	"github.com/sage-x-project/alipay-global-go/pkg/signer"
	"github.com/sage-x-project/alipay-global-go/pkg/verifier"
)

const (
	testClientID = "SANDBOX_5YBZ1A2ZTEST"
	notifyPath   = "/alipay/notify"
)

func testNotification() protocol.PaymentNotification {
	return protocol.PaymentNotification{
		NotifyType:       protocol.NotifyPaymentResult,
		Result:           protocol.SuccessResult(),
		PaymentRequestID: "pay-req-001",
		PaymentID:        "2024010119040108000000000000001",
		PaymentAmount:    protocol.NewAmount("USD", 1250),
	}
}

// signedRequest builds a notification request signed with key
func signedRequest(t *testing.T, key *rsa.PrivateKey, path string, body any) *http.Request {
	t.Helper()

	sc := canonical.NewSigningContext(canonical.MethodPost, path, testClientID, time.Now())
	msg, err := signer.NewDefaultSigner().SignMessage(context.Background(), sc,
		canonical.JSONPayload{Value: body}, keys.NewKeyMaterial(key, nil))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(msg.Body))
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	msg.ApplyRequestHeaders(req.Header)
	return req
}

func alipaySelector(t *testing.T) verifier.KeySelector {
	return verifier.NewStaticKeySelector(keys.StaticPublicKey{Key: &testkeys.Alipay(t).PublicKey})
}

func TestMiddleware_Wrap(t *testing.T) {
	t.Run("valid notification reaches handler", func(t *testing.T) {
		// Setup
		mw := NewMiddleware(alipaySelector(t))

		var gotBody string
		var gotMsg *verifier.InboundMessage
		handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			gotBody = string(b)
			gotMsg, _ = MessageFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := signedRequest(t, testkeys.Alipay(t), notifyPath, testNotification())
		rec := httptest.NewRecorder()

		// Execute
		handler.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, gotBody, `"paymentRequestId":"pay-req-001"`)
		require.NotNil(t, gotMsg)
		assert.Equal(t, testClientID, gotMsg.ClientID)
		assert.Equal(t, notifyPath, gotMsg.Path)
		assert.Equal(t, gotBody, gotMsg.Body)
	})

	rejected := []struct {
		name  string
		req   func(t *testing.T) *http.Request
		stage signature.Stage
	}{
		{
			name: "unsigned",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, notifyPath, strings.NewReader(`{"paymentId":"x"}`))
			},
			stage: signature.StageHeader,
		},
		{
			name: "tampered body",
			req: func(t *testing.T) *http.Request {
				req := signedRequest(t, testkeys.Alipay(t), notifyPath, testNotification())
				b, _ := io.ReadAll(req.Body)
				tampered := strings.Replace(string(b), `"1250"`, `"1"`, 1)
				req.Body = io.NopCloser(strings.NewReader(tampered))
				return req
			},
			stage: signature.StageSignature,
		},
		{
			name: "signed for another path",
			req: func(t *testing.T) *http.Request {
				req := signedRequest(t, testkeys.Alipay(t), "/other/notify", testNotification())
				req.URL.Path = notifyPath
				return req
			},
			stage: signature.StageSignature,
		},
		{
			name: "signed by another key",
			req: func(t *testing.T) *http.Request {
				return signedRequest(t, testkeys.RSA(t, "imposter"), notifyPath, testNotification())
			},
			stage: signature.StageSignature,
		},
		{
			name: "changed client id",
			req: func(t *testing.T) *http.Request {
				req := signedRequest(t, testkeys.Alipay(t), notifyPath, testNotification())
				req.Header.Set(signature.HeaderClientID, "OTHER")
				return req
			},
			stage: signature.StageSignature,
		},
		{
			name: "garbled signature header",
			req: func(t *testing.T) *http.Request {
				req := signedRequest(t, testkeys.Alipay(t), notifyPath, testNotification())
				req.Header.Set(signature.HeaderSignature, "algorithm=RSA256,keyVersion=1")
				return req
			},
			stage: signature.StageHeader,
		},
	}

	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			var gotErr error
			mw := NewMiddleware(alipaySelector(t), WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
				gotErr = err
				w.WriteHeader(http.StatusForbidden)
			}))

			called := false
			handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, tt.req(t))

			assert.False(t, called, "handler must not run")
			assert.Equal(t, http.StatusForbidden, rec.Code)
			stage, ok := signature.IsVerificationError(gotErr)
			require.True(t, ok)
			assert.Equal(t, tt.stage, stage)
		})
	}
}

func TestMiddleware_DefaultErrorHandler(t *testing.T) {
	mw := NewMiddleware(alipaySelector(t))
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, notifyPath, strings.NewReader("{}")))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized")
}

func TestMiddleware_BodyLimit(t *testing.T) {
	var gotErr error
	mw := NewMiddleware(alipaySelector(t),
		WithMaxBodyBytes(16),
		WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			gotErr = err
		}))

	_, err := mw.Verify(signedRequest(t, testkeys.Alipay(t), notifyPath, testNotification()))
	assert.ErrorIs(t, err, ErrBodyTooLarge)

	mw.Wrap(http.NotFoundHandler()).ServeHTTP(httptest.NewRecorder(),
		signedRequest(t, testkeys.Alipay(t), notifyPath, testNotification()))
	assert.ErrorIs(t, gotErr, ErrBodyTooLarge)
}

func TestMiddleware_ClockSkew(t *testing.T) {
	v := verifier.NewDefaultVerifierWithOptions(&verifier.VerifyOptions{
		MaxClockSkew:     5 * time.Minute,
		ExpectedClientID: testClientID,
		Now:              func() time.Time { return time.Now().Add(time.Hour) },
	})
	mw := NewMiddleware(alipaySelector(t), WithVerifier(v))

	_, err := mw.Verify(signedRequest(t, testkeys.Alipay(t), notifyPath, testNotification()))

	stage, ok := signature.IsVerificationError(err)
	require.True(t, ok)
	assert.Equal(t, signature.StageTimestamp, stage)
}

func TestMiddleware_Metrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	mw := NewMiddleware(alipaySelector(t), WithMetrics(m))

	_, err := mw.Verify(signedRequest(t, testkeys.Alipay(t), notifyPath, testNotification()))
	require.NoError(t, err)
	_, err = mw.Verify(signedRequest(t, testkeys.RSA(t, "imposter"), notifyPath, testNotification()))
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhooksTotal.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhooksTotal.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VerificationsTotal.WithLabelValues(metrics.SourceWebhook, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VerificationsTotal.WithLabelValues(metrics.SourceWebhook, "signature")))
}

func TestMiddleware_Gin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mw := NewMiddleware(alipaySelector(t))
	router := gin.New()

	var fromGin, fromCtx *verifier.InboundMessage
	router.POST(notifyPath, mw.Gin(), func(c *gin.Context) {
		fromGin = c.MustGet(GinMessageKey).(*verifier.InboundMessage)
		fromCtx, _ = MessageFromContext(c.Request.Context())

		n, err := ParseNotification([]byte(fromGin.Body))
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"paymentRequestId": n.PaymentRequestID})
	})

	t.Run("verified", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, signedRequest(t, testkeys.Alipay(t), notifyPath, testNotification()))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"paymentRequestId":"pay-req-001"}`, rec.Body.String())
		require.NotNil(t, fromGin)
		assert.Same(t, fromGin, fromCtx)
	})

	t.Run("rejected", func(t *testing.T) {
		fromGin = nil
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, signedRequest(t, testkeys.RSA(t, "imposter"), notifyPath, testNotification()))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, fromGin)
	})
}

func TestParseNotification(t *testing.T) {
	body, err := json.Marshal(testNotification())
	require.NoError(t, err)

	n, err := ParseNotification(body)
	require.NoError(t, err)
	assert.Equal(t, protocol.NotifyPaymentResult, n.NotifyType)
	assert.True(t, n.Result.IsSuccess())

	_, err = ParseNotification([]byte(`{"notifyType":"PAYMENT_RESULT"}`))
	assert.ErrorIs(t, err, protocol.ErrInvalidRequest)
}

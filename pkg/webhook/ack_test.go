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
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/alipay-global-go/internal/testkeys"
	"github.com/sage-x-project/alipay-global-go/pkg/canonical"
	"github.com/sage-x-project/alipay-global-go/pkg/keys"
	"github.com/sage-x-project/alipay-global-go/pkg/protocol"
	"github.com/sage-x-project/alipay-global-go/pkg/signature"
	"github.com/sage-x-project/alipay-global-go/pkg/signer"
	"github.com/sage-x-project/alipay-global-go/pkg/verifier"
)

// verifyAck checks an acknowledgement the way the gateway would
func verifyAck(t *testing.T, rec *httptest.ResponseRecorder, path string) protocol.Acknowledgement {
	t.Helper()

	msg := verifier.MessageFromResponse(rec.Header(), canonical.MethodPost, path, rec.Body.Bytes())
	err := verifier.NewDefaultVerifier().VerifyMessage(context.Background(), msg,
		keys.StaticPublicKey{Key: &testkeys.Merchant(t).PublicKey})
	require.NoError(t, err)

	var ack protocol.Acknowledgement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	return ack
}

func merchantAcknowledger(t *testing.T, opts ...AckOption) *Acknowledger {
	return NewAcknowledger(testClientID, keys.NewKeyMaterial(testkeys.Merchant(t), nil), opts...)
}

func TestAcknowledger_Build(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ack := merchantAcknowledger(t,
		WithAckClock(func() time.Time { return fixed }),
		WithAckSigner(signer.NewDefaultSignerWithOptions(&signer.SigningOptions{KeyVersion: "2"})))

	msg, err := ack.Build(context.Background(), canonical.MethodPost, notifyPath, Success())
	require.NoError(t, err)

	assert.Equal(t, `{"result":{"resultCode":"SUCCESS","resultStatus":"S","resultMessage":"Success"}}`, msg.Body)
	assert.Equal(t, "2024-01-01T12:00:00Z", msg.Context.Timestamp)
	assert.Equal(t, testClientID, msg.Context.ClientID)
	assert.Equal(t, "2", msg.Header.KeyVersion)

	canonicalString := "POST /alipay/notify\n" + testClientID + ".2024-01-01T12:00:00Z." + msg.Body
	err = verifier.NewDefaultVerifier().Verify(context.Background(), canonicalString, msg.SignatureHeader(),
		keys.StaticPublicKey{Key: &testkeys.Merchant(t).PublicKey})
	assert.NoError(t, err)
}

func TestAcknowledger_BuildWithoutKey(t *testing.T) {
	ack := NewAcknowledger(testClientID, keys.NewKeyMaterial(nil, nil))

	_, err := ack.Build(context.Background(), canonical.MethodPost, notifyPath, Success())
	assert.True(t, signature.IsSigningError(err))

	rec := httptest.NewRecorder()
	err = ack.Respond(rec, httptest.NewRequest(http.MethodPost, notifyPath, nil), Success())
	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get(signature.HeaderSignature))
}

func TestAcknowledger_Respond(t *testing.T) {
	ack := merchantAcknowledger(t)
	rec := httptest.NewRecorder()

	err := ack.Respond(rec, httptest.NewRequest(http.MethodPost, notifyPath, nil), Failed("out of stock"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testClientID, rec.Header().Get(signature.HeaderClientID))
	assert.NotEmpty(t, rec.Header().Get(signature.HeaderResponseTime))

	got := verifyAck(t, rec, notifyPath)
	assert.True(t, got.Result.IsFailed())
	assert.Equal(t, "out of stock", got.Result.ResultMessage)
}

func TestAcknowledger_ErrorHandler(t *testing.T) {
	ack := merchantAcknowledger(t)
	mw := NewMiddleware(alipaySelector(t), WithErrorHandler(ack.ErrorHandler()))
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signedRequest(t, testkeys.RSA(t, "imposter"), notifyPath, testNotification()))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	got := verifyAck(t, rec, notifyPath)
	assert.Equal(t, protocol.CodeInvalidSignature, got.Result.ResultCode)
	assert.Equal(t, "invalid signature", got.Result.ResultMessage)
}

func TestNotifyHandler(t *testing.T) {
	var mu sync.Mutex
	var processed []string

	fn := func(ctx context.Context, n *protocol.PaymentNotification) error {
		if n.PaymentRequestID == "fail-me" {
			return errors.New("order store unavailable")
		}
		mu.Lock()
		processed = append(processed, n.PaymentRequestID)
		mu.Unlock()
		return nil
	}
	handler := NewNotifyHandler(alipaySelector(t), merchantAcknowledger(t), fn)

	t.Run("processed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, signedRequest(t, testkeys.Alipay(t), notifyPath, testNotification()))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, verifyAck(t, rec, notifyPath).Result.IsSuccess())
		assert.Equal(t, []string{"pay-req-001"}, processed)
	})

	t.Run("processing error asks for redelivery", func(t *testing.T) {
		n := testNotification()
		n.PaymentRequestID = "fail-me"

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, signedRequest(t, testkeys.Alipay(t), notifyPath, n))

		got := verifyAck(t, rec, notifyPath)
		assert.True(t, got.Result.IsFailed())
		assert.Equal(t, "processing failed", got.Result.ResultMessage)
	})

	t.Run("notification without ids", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, signedRequest(t, testkeys.Alipay(t), notifyPath,
			map[string]string{"notifyType": "PAYMENT_RESULT"}))

		got := verifyAck(t, rec, notifyPath)
		assert.True(t, got.Result.IsFailed())
		assert.Equal(t, protocol.CodeParamIllegal, got.Result.ResultCode)
	})

	t.Run("unsigned is rejected before processing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, notifyPath, strings.NewReader(`{"paymentRequestId":"sneaky"}`))
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.True(t, verifyAck(t, rec, notifyPath).Result.IsFailed())
		assert.NotContains(t, processed, "sneaky")
	})
}

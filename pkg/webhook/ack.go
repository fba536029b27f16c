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
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sage-x-project/alipay-global-go/pkg/canonical"
	"github.com/sage-x-project/alipay-global-go/pkg/keys"
	"github.com/sage-x-project/alipay-global-go/pkg/logger"
	"github.com/sage-x-project/alipay-global-go/pkg/protocol"
	"github.com/sage-x-project/alipay-global-go/pkg/signature"
	"github.com/sage-x-project/alipay-global-go/pkg/signer"
)

// Acknowledger signs the merchant's answer to a notification
type Acknowledger struct {
	clientID string
	key      keys.PrivateKeyHolder
	signer   signer.Signer
	now      func() time.Time
	logger   *logger.Logger
}

// AckOption configures an Acknowledger
type AckOption func(*Acknowledger)

// WithAckSigner replaces the default signer, e.g. to change the key version
func WithAckSigner(s signer.Signer) AckOption {
	return func(a *Acknowledger) {
		if s != nil {
			a.signer = s
		}
	}
}

// WithAckClock sets the time source for Response-Time
func WithAckClock(now func() time.Time) AckOption {
	return func(a *Acknowledger) {
		if now != nil {
			a.now = now
		}
	}
}

// WithAckLogger sets the logger
func WithAckLogger(l *logger.Logger) AckOption {
	return func(a *Acknowledger) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAcknowledger creates an Acknowledger signing as clientID with key
func NewAcknowledger(clientID string, key keys.PrivateKeyHolder, opts ...AckOption) *Acknowledger {
	a := &Acknowledger{
		clientID: clientID,
		key:      key,
		signer:   signer.NewDefaultSigner(),
		now:      time.Now,
		logger:   logger.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Success is the result that stops further delivery attempts
func Success() protocol.Result {
	return protocol.SuccessResult()
}

// Failed is the result that asks the gateway to deliver again
func Failed(message string) protocol.Result {
	return protocol.FailedResult(message)
}

// Build signs an acknowledgement carrying result for a notification
// received with method on path
func (a *Acknowledger) Build(ctx context.Context, method canonical.Method, path string, result protocol.Result) (*signer.SignedMessage, error) {
	sc := canonical.NewSigningContext(method, path, a.clientID, a.now())
	return a.signer.SignMessage(ctx, sc, canonical.JSONPayload{Value: protocol.Acknowledgement{Result: result}}, a.key)
}

// Respond writes a signed acknowledgement for r with status 200
func (a *Acknowledger) Respond(w http.ResponseWriter, r *http.Request, result protocol.Result) error {
	return a.respond(w, r, http.StatusOK, result)
}

// ErrorHandler returns a Middleware error handler that answers rejected
// notifications with a signed failed acknowledgement and status 401
func (a *Acknowledger) ErrorHandler() ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		message := "invalid signature"
		if errors.Is(err, ErrBodyTooLarge) {
			message = "request too large"
		} else if _, ok := signature.IsVerificationError(err); !ok {
			message = "unreadable request"
		}

		result := protocol.Result{
			ResultCode:    protocol.CodeInvalidSignature,
			ResultStatus:  protocol.ResultFailed,
			ResultMessage: message,
		}
		if aerr := a.respond(w, r, http.StatusUnauthorized, result); aerr != nil {
			a.logger.Errorw("failed to sign rejection", logger.F("error", aerr.Error()))
		}
	}
}

func (a *Acknowledger) respond(w http.ResponseWriter, r *http.Request, status int, result protocol.Result) error {
	msg, err := a.Build(r.Context(), canonical.Method(r.Method), r.URL.Path, result)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return err
	}

	msg.ApplyResponseHeaders(w.Header())
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_, err = io.WriteString(w, msg.Body)
	return err
}

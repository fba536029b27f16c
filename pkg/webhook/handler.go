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

	"github.com/sage-x-project/alipay-global-go/pkg/logger"
	"github.com/sage-x-project/alipay-global-go/pkg/protocol"
	"github.com/sage-x-project/alipay-global-go/pkg/verifier"
)

// NotificationFunc processes one verified payment notification. Returning
// an error answers with a failed result so the gateway delivers again
type NotificationFunc func(ctx context.Context, n *protocol.PaymentNotification) error

// NewNotifyHandler returns a handler that verifies, decodes and
// acknowledges notifications, calling fn for each one. Rejected requests
// get a signed failed acknowledgement
func NewNotifyHandler(selector verifier.KeySelector, ack *Acknowledger, fn NotificationFunc, opts ...Option) http.Handler {
	opts = append([]Option{WithErrorHandler(ack.ErrorHandler())}, opts...)
	mw := NewMiddleware(selector, opts...)
	return mw.Wrap(&notifyHandler{ack: ack, fn: fn, logger: mw.logger})
}

type notifyHandler struct {
	ack    *Acknowledger
	fn     NotificationFunc
	logger *logger.Logger
}

func (h *notifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.reply(w, r, Failed("unreadable body"))
		return
	}

	n, err := ParseNotification(body)
	if err != nil {
		h.logger.Errorw("notification rejected", logger.F("path", r.URL.Path), logger.F("error", err.Error()))
		message := "malformed notification"
		if errors.Is(err, protocol.ErrInvalidRequest) {
			message = "notification carries no payment id"
		}
		h.reply(w, r, Failed(message))
		return
	}

	if err := h.fn(r.Context(), n); err != nil {
		h.logger.Errorw("notification processing failed",
			logger.F("payment_request_id", n.PaymentRequestID),
			logger.F("notify_type", string(n.NotifyType)),
			logger.F("error", err.Error()))
		h.reply(w, r, Failed("processing failed"))
		return
	}

	h.logger.Infow("notification processed",
		logger.F("payment_request_id", n.PaymentRequestID),
		logger.F("notify_type", string(n.NotifyType)),
		logger.F("result_status", string(n.Result.ResultStatus)))
	h.reply(w, r, Success())
}

func (h *notifyHandler) reply(w http.ResponseWriter, r *http.Request, result protocol.Result) {
	if err := h.ack.Respond(w, r, result); err != nil {
		h.logger.Errorw("failed to write acknowledgement", logger.F("error", err.Error()))
	}
}

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

package protocol

import (
	"encoding/json"
	"fmt"
)

// NotifyType tells what a notification reports
type NotifyType string

const (
	NotifyPaymentResult  NotifyType = "PAYMENT_RESULT"
	NotifyPaymentPending NotifyType = "PAYMENT_PENDING"
	NotifyRefundResult   NotifyType = "REFUND_RESULT"
)

// PaymentNotification is the body the gateway posts to paymentNotifyUrl.
// Result describes the payment, not the delivery
type PaymentNotification struct {
	NotifyType        NotifyType `json:"notifyType"`
	Result            Result     `json:"result"`
	PaymentRequestID  string     `json:"paymentRequestId"`
	PaymentID         string     `json:"paymentId"`
	PaymentAmount     Amount     `json:"paymentAmount"`
	PaymentCreateTime string     `json:"paymentCreateTime,omitempty"`
	PaymentTime       string     `json:"paymentTime,omitempty"`
}

// ParseNotification decodes a notification body. Call it only on a body
// whose signature was verified
func ParseNotification(body []byte) (*PaymentNotification, error) {
	var n PaymentNotification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("failed to decode notification: %w", err)
	}
	if n.PaymentRequestID == "" && n.PaymentID == "" {
		return nil, invalid("notification carries no payment id")
	}
	return &n, nil
}

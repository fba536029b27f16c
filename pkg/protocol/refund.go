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

// Refund is the body of a refund call
type Refund struct {
	RefundRequestID string `json:"refundRequestId"`
	PaymentID       string `json:"paymentId"`
	RefundAmount    Amount `json:"refundAmount"`
	RefundReason    string `json:"refundReason,omitempty"`
	RefundNotifyURL string `json:"refundNotifyUrl,omitempty"`
}

// NewRefund creates a refund of amount against paymentID with a generated
// refundRequestId
func NewRefund(paymentID string, amount Amount, reason string) *Refund {
	return &Refund{
		RefundRequestID: NewRequestID(),
		PaymentID:       paymentID,
		RefundAmount:    amount,
		RefundReason:    reason,
	}
}

// Validate checks required fields
func (r *Refund) Validate() error {
	if r == nil {
		return invalid("refund cannot be nil")
	}
	if r.RefundRequestID == "" {
		return invalid("refundRequestId is required")
	}
	if r.PaymentID == "" {
		return invalid("paymentId is required")
	}
	if err := r.RefundAmount.Validate(); err != nil {
		return err
	}
	return checkURL("refundNotifyUrl", r.RefundNotifyURL, false)
}

// RequestID returns the refundRequestId
func (r *Refund) RequestID() string {
	if r == nil {
		return ""
	}
	return r.RefundRequestID
}

// RefundResponse is the response to a refund call
type RefundResponse struct {
	Response
	RefundRequestID string  `json:"refundRequestId,omitempty"`
	RefundID        string  `json:"refundId,omitempty"`
	PaymentID       string  `json:"paymentId,omitempty"`
	RefundAmount    *Amount `json:"refundAmount,omitempty"`
	RefundTime      string  `json:"refundTime,omitempty"`
}

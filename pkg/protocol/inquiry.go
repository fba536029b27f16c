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

// PaymentStatus is the state reported by inquiryPayment
type PaymentStatus string

const (
	PaymentStatusSuccess    PaymentStatus = "SUCCESS"
	PaymentStatusFail       PaymentStatus = "FAIL"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
	PaymentStatusPending    PaymentStatus = "PENDING"
)

// PaymentInquiry is the body of an inquiryPayment call. One of the two ids
// is required
type PaymentInquiry struct {
	PaymentRequestID string `json:"paymentRequestId,omitempty"`
	PaymentID        string `json:"paymentId,omitempty"`
}

// Validate checks that at least one id is set
func (q *PaymentInquiry) Validate() error {
	if q == nil {
		return invalid("inquiry cannot be nil")
	}
	if q.PaymentRequestID == "" && q.PaymentID == "" {
		return invalid("paymentRequestId or paymentId is required")
	}
	return nil
}

// RequestID returns whichever id the inquiry is keyed by
func (q *PaymentInquiry) RequestID() string {
	if q == nil {
		return ""
	}
	if q.PaymentRequestID != "" {
		return q.PaymentRequestID
	}
	return q.PaymentID
}

// InquiryResponse is the response to an inquiryPayment call
type InquiryResponse struct {
	Response
	PaymentStatus        PaymentStatus `json:"paymentStatus,omitempty"`
	PaymentResultCode    string        `json:"paymentResultCode,omitempty"`
	PaymentResultMessage string        `json:"paymentResultMessage,omitempty"`
	PaymentRequestID     string        `json:"paymentRequestId,omitempty"`
	PaymentID            string        `json:"paymentId,omitempty"`
	PaymentAmount        *Amount       `json:"paymentAmount,omitempty"`
	PaymentCreateTime    string        `json:"paymentCreateTime,omitempty"`
	PaymentTime          string        `json:"paymentTime,omitempty"`
}

// Settled reports whether the payment reached a final state
func (r *InquiryResponse) Settled() bool {
	switch r.PaymentStatus {
	case PaymentStatusSuccess, PaymentStatusFail, PaymentStatusCancelled:
		return true
	}
	return false
}

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

import "net/url"

// ProductCodeCashierPayment is the product code for hosted cashier payments
const ProductCodeCashierPayment = "CASHIER_PAYMENT"

// TerminalType is the buyer's terminal
type TerminalType string

const (
	TerminalWeb     TerminalType = "WEB"
	TerminalWap     TerminalType = "WAP"
	TerminalApp     TerminalType = "APP"
	TerminalMiniApp TerminalType = "MINI_APP"
)

// Valid reports whether t is a known terminal type
func (t TerminalType) Valid() bool {
	switch t {
	case TerminalWeb, TerminalWap, TerminalApp, TerminalMiniApp:
		return true
	}
	return false
}

// Order describes what is being paid for
type Order struct {
	ReferenceOrderID string `json:"referenceOrderId"`
	OrderDescription string `json:"orderDescription"`
	OrderAmount      Amount `json:"orderAmount"`
	Buyer            *Buyer `json:"buyer,omitempty"`
}

// Buyer identifies the merchant's customer
type Buyer struct {
	ReferenceBuyerID string `json:"referenceBuyerId,omitempty"`
}

// PaymentMethod selects the wallet or method, e.g. "ALIPAY_CN"
type PaymentMethod struct {
	PaymentMethodType string `json:"paymentMethodType"`
}

// Env describes the buyer's environment
type Env struct {
	TerminalType TerminalType `json:"terminalType"`
	OSType       string       `json:"osType,omitempty"`
}

// SettlementStrategy sets the currency the merchant is settled in
type SettlementStrategy struct {
	SettlementCurrency string `json:"settlementCurrency,omitempty"`
}

// CashierPayment is the body of a pay call with product code CASHIER_PAYMENT
type CashierPayment struct {
	ProductCode        string              `json:"productCode"`
	PaymentRequestID   string              `json:"paymentRequestId"`
	Order              Order               `json:"order"`
	PaymentAmount      Amount              `json:"paymentAmount"`
	PaymentMethod      PaymentMethod       `json:"paymentMethod"`
	PaymentRedirectURL string              `json:"paymentRedirectUrl"`
	PaymentNotifyURL   string              `json:"paymentNotifyUrl,omitempty"`
	SettlementStrategy *SettlementStrategy `json:"settlementStrategy,omitempty"`
	Env                *Env                `json:"env,omitempty"`
}

// Validate checks required fields
func (p *CashierPayment) Validate() error {
	if p == nil {
		return invalid("payment cannot be nil")
	}
	if p.ProductCode == "" {
		return invalid("productCode is required")
	}
	if p.PaymentRequestID == "" {
		return invalid("paymentRequestId is required")
	}
	if p.Order.ReferenceOrderID == "" {
		return invalid("order.referenceOrderId is required")
	}
	if err := p.Order.OrderAmount.Validate(); err != nil {
		return err
	}
	if err := p.PaymentAmount.Validate(); err != nil {
		return err
	}
	if p.PaymentMethod.PaymentMethodType == "" {
		return invalid("paymentMethod.paymentMethodType is required")
	}
	if err := checkURL("paymentRedirectUrl", p.PaymentRedirectURL, true); err != nil {
		return err
	}
	if err := checkURL("paymentNotifyUrl", p.PaymentNotifyURL, false); err != nil {
		return err
	}
	if p.Env != nil && !p.Env.TerminalType.Valid() {
		return invalid("unknown terminalType %q", p.Env.TerminalType)
	}
	return nil
}

// RequestID returns the paymentRequestId
func (p *CashierPayment) RequestID() string {
	if p == nil {
		return ""
	}
	return p.PaymentRequestID
}

// CashierPaymentParams is the short form of a cashier payment: one amount
// used for both the order and the payment
type CashierPaymentParams struct {
	PaymentRequestID   string
	ReferenceOrderID   string
	OrderDescription   string
	Currency           string
	AmountMinor        int64
	PaymentMethodType  string
	RedirectURL        string
	NotifyURL          string
	SettlementCurrency string
	TerminalType       TerminalType
}

// NewCashierPayment expands params into a full request. A missing
// PaymentRequestID is generated
func NewCashierPayment(params CashierPaymentParams) *CashierPayment {
	amount := NewAmount(params.Currency, params.AmountMinor)

	requestID := params.PaymentRequestID
	if requestID == "" {
		requestID = NewRequestID()
	}

	p := &CashierPayment{
		ProductCode:      ProductCodeCashierPayment,
		PaymentRequestID: requestID,
		Order: Order{
			ReferenceOrderID: params.ReferenceOrderID,
			OrderDescription: params.OrderDescription,
			OrderAmount:      amount,
		},
		PaymentAmount:      amount,
		PaymentMethod:      PaymentMethod{PaymentMethodType: params.PaymentMethodType},
		PaymentRedirectURL: params.RedirectURL,
		PaymentNotifyURL:   params.NotifyURL,
	}

	if params.SettlementCurrency != "" {
		p.SettlementStrategy = &SettlementStrategy{SettlementCurrency: params.SettlementCurrency}
	}
	if params.TerminalType != "" {
		p.Env = &Env{TerminalType: params.TerminalType}
	}
	return p
}

// CashierPaymentBuilder helps construct cashier payments with a fluent API
type CashierPaymentBuilder struct {
	params CashierPaymentParams
	buyer  *Buyer
}

// NewCashierPaymentBuilder creates a builder for a web cashier payment
func NewCashierPaymentBuilder() *CashierPaymentBuilder {
	return &CashierPaymentBuilder{
		params: CashierPaymentParams{TerminalType: TerminalWeb},
	}
}

// WithRequestID sets paymentRequestId instead of generating one
func (b *CashierPaymentBuilder) WithRequestID(id string) *CashierPaymentBuilder {
	b.params.PaymentRequestID = id
	return b
}

// WithOrder sets the merchant order reference and description
func (b *CashierPaymentBuilder) WithOrder(referenceOrderID, description string) *CashierPaymentBuilder {
	b.params.ReferenceOrderID = referenceOrderID
	b.params.OrderDescription = description
	return b
}

// WithAmount sets order and payment amount in minor units
func (b *CashierPaymentBuilder) WithAmount(currency string, minorUnits int64) *CashierPaymentBuilder {
	b.params.Currency = currency
	b.params.AmountMinor = minorUnits
	return b
}

// WithPaymentMethod sets paymentMethodType
func (b *CashierPaymentBuilder) WithPaymentMethod(methodType string) *CashierPaymentBuilder {
	b.params.PaymentMethodType = methodType
	return b
}

// WithRedirectURL sets where the buyer returns after paying
func (b *CashierPaymentBuilder) WithRedirectURL(u string) *CashierPaymentBuilder {
	b.params.RedirectURL = u
	return b
}

// WithNotifyURL sets where the payment result notification is sent
func (b *CashierPaymentBuilder) WithNotifyURL(u string) *CashierPaymentBuilder {
	b.params.NotifyURL = u
	return b
}

// WithSettlementCurrency sets the settlement currency
func (b *CashierPaymentBuilder) WithSettlementCurrency(currency string) *CashierPaymentBuilder {
	b.params.SettlementCurrency = currency
	return b
}

// WithTerminalType sets env.terminalType
func (b *CashierPaymentBuilder) WithTerminalType(t TerminalType) *CashierPaymentBuilder {
	b.params.TerminalType = t
	return b
}

// WithBuyer sets order.buyer.referenceBuyerId
func (b *CashierPaymentBuilder) WithBuyer(referenceBuyerID string) *CashierPaymentBuilder {
	b.buyer = &Buyer{ReferenceBuyerID: referenceBuyerID}
	return b
}

// Build returns the validated request
func (b *CashierPaymentBuilder) Build() (*CashierPayment, error) {
	p := NewCashierPayment(b.params)
	p.Order.Buyer = b.buyer
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// PayResponse is the response to a pay call
type PayResponse struct {
	Response
	PaymentRequestID  string  `json:"paymentRequestId,omitempty"`
	PaymentID         string  `json:"paymentId,omitempty"`
	PaymentAmount     *Amount `json:"paymentAmount,omitempty"`
	PaymentCreateTime string  `json:"paymentCreateTime,omitempty"`
	PaymentTime       string  `json:"paymentTime,omitempty"`
	NormalURL         string  `json:"normalUrl,omitempty"`
	ApplinkURL        string  `json:"applinkUrl,omitempty"`
	SchemeURL         string  `json:"schemeUrl,omitempty"`
}

func checkURL(field, raw string, required bool) error {
	if raw == "" {
		if required {
			return invalid("%s is required", field)
		}
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalid("%s must be an absolute URL", field)
	}
	return nil
}

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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidRequest is returned by Validate methods
var ErrInvalidRequest = errors.New("invalid request")

// NewRequestID returns a fresh idempotency id for paymentRequestId or
// refundRequestId
func NewRequestID() string {
	return uuid.NewString()
}

// Amount is a money value in minor units of Currency
type Amount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

// NewAmount creates an Amount from minor units, e.g. 1250 USD cents
func NewAmount(currency string, minorUnits int64) Amount {
	return Amount{
		Currency: strings.ToUpper(currency),
		Value:    strconv.FormatInt(minorUnits, 10),
	}
}

// MinorUnits parses Value
func (a Amount) MinorUnits() (int64, error) {
	return strconv.ParseInt(a.Value, 10, 64)
}

// Validate checks the currency code and value
func (a Amount) Validate() error {
	if len(a.Currency) != 3 {
		return invalid("currency must be an ISO 4217 code, got %q", a.Currency)
	}
	v, err := a.MinorUnits()
	if err != nil {
		return invalid("amount value %q is not an integer", a.Value)
	}
	if v <= 0 {
		return invalid("amount value must be positive")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

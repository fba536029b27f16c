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
	"errors"
	"fmt"
	"net/http"

	"github.com/sage-x-project/alipay-global-go/pkg/protocol"
)

var (
	// ErrResultFailed is matched by a ResultError with status F
	ErrResultFailed = errors.New("ams result failed")

	// ErrResultUnknown is matched by a ResultError with status U. The
	// operation may or may not have taken effect; inquire before retrying
	ErrResultUnknown = errors.New("ams result unknown")

	// ErrUnexpectedStatus is returned for a non-2xx response without a
	// usable result
	ErrUnexpectedStatus = errors.New("unexpected http status")

	// ErrMissingResult is returned when a verified response has no result
	ErrMissingResult = errors.New("response has no result")
)

// ResultError carries a non-success AMS result
type ResultError struct {
	Endpoint   string
	StatusCode int
	Result     protocol.Result
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Result)
}

// Unwrap returns ErrResultFailed or ErrResultUnknown
func (e *ResultError) Unwrap() error {
	if e.Result.IsFailed() {
		return ErrResultFailed
	}
	return ErrResultUnknown
}

// IsAmbiguous reports whether err leaves the outcome undetermined
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrResultUnknown)
}

// AsResultError extracts the ResultError from err
func AsResultError(err error) (*ResultError, bool) {
	var rerr *ResultError
	if errors.As(err, &rerr) {
		return rerr, true
	}
	return nil, false
}

func unexpectedStatus(endpoint string, code int) error {
	return fmt.Errorf("%s: %w: %d %s", endpoint, ErrUnexpectedStatus, code, http.StatusText(code))
}

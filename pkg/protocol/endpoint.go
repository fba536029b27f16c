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

import "strings"

// DefaultBaseURL is the global AMS gateway
const DefaultBaseURL = "https://open-global.alipay.com"

// Endpoint names an AMS API operation
type Endpoint struct {
	// Name is a short label used in logs and metrics
	Name string

	// path is the production path
	path string
}

var (
	EndpointPay            = Endpoint{Name: "pay", path: "/ams/api/v1/payments/pay"}
	EndpointRefund         = Endpoint{Name: "refund", path: "/ams/api/v1/payments/refund"}
	EndpointInquiryPayment = Endpoint{Name: "inquiry_payment", path: "/ams/api/v1/payments/inquiryPayment"}
)

// NewEndpoint defines an endpoint not covered by the predefined ones.
// path is the production path and must start with "/ams/"
func NewEndpoint(name, path string) Endpoint {
	return Endpoint{Name: name, path: path}
}

// Path returns the request path, in the sandbox form when sandbox is set
func (e Endpoint) Path(sandbox bool) string {
	if sandbox && strings.HasPrefix(e.path, "/ams/") && !strings.HasPrefix(e.path, "/ams/sandbox/") {
		return "/ams/sandbox/" + strings.TrimPrefix(e.path, "/ams/")
	}
	return e.path
}

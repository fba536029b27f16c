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

// Package protocol defines the Alipay Global (AMS) wire models: request
// bodies, responses, asynchronous notifications and the endpoints they
// are sent to.
//
// # Endpoints
//
// Every endpoint has a production path and a sandbox path. The sandbox
// path inserts "/sandbox" after "/ams":
//
//	protocol.EndpointPay.Path(false) // /ams/api/v1/payments/pay
//	protocol.EndpointPay.Path(true)  // /ams/sandbox/api/v1/payments/pay
//
// # Building a cashier payment
//
//	req, err := protocol.NewCashierPaymentBuilder().
//	    WithOrder("ORDER-1001", "Two coffees").
//	    WithAmount("USD", 1250).
//	    WithPaymentMethod("ALIPAY_CN").
//	    WithRedirectURL("https://shop.example.com/return").
//	    WithNotifyURL("https://shop.example.com/alipay/notify").
//	    WithTerminalType(protocol.TerminalWeb).
//	    Build()
//
// Amount values are minor currency units written as decimal strings.
//
// # Results
//
// Every response carries a Result whose status is S (success), F (failed)
// or U (unknown). U means the outcome is not known yet and the caller has
// to inquire later; it must not be read as success or failure.
package protocol

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

// Package transport provides an http.RoundTripper that signs every AMS
// request and verifies every AMS response.
//
// # Key Features
//
//   - Canonical string built from method, path, client id, Request-Time and
//     the exact body bytes that are sent
//   - Signature, Client-Id and Request-Time headers set on each request
//   - Response signature verified with the counterparty key before the
//     response reaches the caller; a rejected response is an error, never
//     a response
//   - Raw response bytes are verified, then handed back unchanged
//
// # Usage
//
//	km, _ := keys.Load(keys.Source{PrivateKeyFile: "merchant.pem", PublicKeyFile: "alipay.pem"})
//	httpClient := transport.NewHTTPClient(clientID, km,
//	    verifier.NewStaticKeySelector(km), 15*time.Second)
//
//	req, _ := http.NewRequestWithContext(ctx, http.MethodPost,
//	    protocol.DefaultBaseURL+protocol.EndpointPay.Path(false), strings.NewReader(body))
//	resp, err := httpClient.Do(req) // signed out, verified in
//
// Passing a nil KeySelector disables response verification. Only do this
// against a local stub that cannot sign.
//
// # Thread Safety
//
// SigningTransport is immutable after construction and safe for concurrent
// use.
package transport

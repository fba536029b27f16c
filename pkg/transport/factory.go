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

package transport

import (
	"net/http"
	"time"

	"github.com/sage-x-project/alipay-global-go/pkg/keys"
	"github.com/sage-x-project/alipay-global-go/pkg/verifier"
)

// NewHTTPClient returns an http.Client whose every request is signed as
// clientID and whose every response is verified with selector.
//
// Parameters:
//   - clientID: merchant client id issued by Alipay
//   - key: merchant private key holder
//   - selector: counterparty key selector, nil to skip response verification
//   - timeout: overall request timeout, zero for none
//
// Example:
//
//	httpClient := transport.NewHTTPClient(clientID, km,
//	    verifier.NewStaticKeySelector(km), 15*time.Second,
//	    transport.WithLogger(log))
func NewHTTPClient(clientID string, key keys.PrivateKeyHolder, selector verifier.KeySelector, timeout time.Duration, opts ...Option) *http.Client {
	return &http.Client{
		Transport: NewSigningTransport(clientID, key, selector, opts...),
		Timeout:   timeout,
	}
}

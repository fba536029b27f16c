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

package verifier

import (
	"net/http"

	"github.com/sage-x-project/alipay-global-go/pkg/canonical"
	"github.com/sage-x-project/alipay-global-go/pkg/signature"
)

// InboundMessage holds everything needed to verify one received message
type InboundMessage struct {
	Method    canonical.Method
	Path      string
	ClientID  string
	Timestamp string
	Body      string
	Signature string
}

// SigningContext returns the routing and identity fields of the message
func (m *InboundMessage) SigningContext() canonical.SigningContext {
	return canonical.SigningContext{
		Method:    m.Method,
		Path:      m.Path,
		ClientID:  m.ClientID,
		Timestamp: m.Timestamp,
	}
}

// Canonical rebuilds the string the sender signed
func (m *InboundMessage) Canonical() string {
	return canonical.Build(m.SigningContext(), m.Body)
}

// MessageFromResponse builds the message for a response to a request sent
// with method to path. Client-Id, Response-Time and Signature are read from
// the response headers
func MessageFromResponse(h http.Header, method canonical.Method, path string, body []byte) *InboundMessage {
	return &InboundMessage{
		Method:    method,
		Path:      path,
		ClientID:  h.Get(signature.HeaderClientID),
		Timestamp: h.Get(signature.HeaderResponseTime),
		Body:      string(body),
		Signature: h.Get(signature.HeaderSignature),
	}
}

// MessageFromRequest builds the message for a received notification. The
// path is the URL path the request arrived on
func MessageFromRequest(r *http.Request, body []byte) *InboundMessage {
	return &InboundMessage{
		Method:    canonical.Method(r.Method),
		Path:      r.URL.Path,
		ClientID:  r.Header.Get(signature.HeaderClientID),
		Timestamp: r.Header.Get(signature.HeaderRequestTime),
		Body:      string(body),
		Signature: r.Header.Get(signature.HeaderSignature),
	}
}

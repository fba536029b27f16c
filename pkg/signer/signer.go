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

package signer

import (
	"context"
	"net/http"

	"github.com/sage-x-project/alipay-global-go/pkg/canonical"
	"github.com/sage-x-project/alipay-global-go/pkg/keys"
	"github.com/sage-x-project/alipay-global-go/pkg/signature"
)

// Signer signs AMS messages with the merchant private key
type Signer interface {
	// Sign signs a canonical string and returns the standard base64 signature
	Sign(ctx context.Context, canonicalString string, key keys.PrivateKeyHolder) (string, error)

	// SignMessage serializes payload, builds the canonical string for sc and signs it
	SignMessage(ctx context.Context, sc canonical.SigningContext, payload canonical.Signable, key keys.PrivateKeyHolder) (*SignedMessage, error)
}

// SigningOptions contains options for signing
type SigningOptions struct {
	// Algorithm used to sign. If nil, signature.RSA256 is used
	Algorithm signature.Algorithm

	// KeyVersion is placed in the header so the receiver can pick the
	// matching public key. If empty, signature.DefaultKeyVersion is used
	KeyVersion string
}

// SignedMessage is a signed body plus the values that travel with it
type SignedMessage struct {
	// Context carries the method, path, client id and the exact timestamp
	// string that was signed
	Context canonical.SigningContext

	// Body is the serialized payload. It must be sent unchanged
	Body string

	// Header is the Signature header
	Header signature.Header
}

// SignatureHeader returns the Signature header value
func (m *SignedMessage) SignatureHeader() string {
	return m.Header.String()
}

// ApplyRequestHeaders sets Client-Id, Request-Time and Signature on an
// outbound request or an inbound notification being replayed
func (m *SignedMessage) ApplyRequestHeaders(h http.Header) {
	h.Set(signature.HeaderClientID, m.Context.ClientID)
	h.Set(signature.HeaderRequestTime, m.Context.Timestamp)
	h.Set(signature.HeaderSignature, m.Header.String())
}

// ApplyResponseHeaders sets Client-Id, Response-Time and Signature on a
// response
func (m *SignedMessage) ApplyResponseHeaders(h http.Header) {
	h.Set(signature.HeaderClientID, m.Context.ClientID)
	h.Set(signature.HeaderResponseTime, m.Context.Timestamp)
	h.Set(signature.HeaderSignature, m.Header.String())
}

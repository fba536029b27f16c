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

package signature

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// Wire header names used by AMS.
const (
	HeaderSignature    = "Signature"
	HeaderClientID     = "Client-Id"
	HeaderRequestTime  = "Request-Time"
	HeaderResponseTime = "Response-Time"
)

// DefaultKeyVersion is sent when no key version is configured.
const DefaultKeyVersion = "1"

const (
	fieldAlgorithm  = "algorithm"
	fieldKeyVersion = "keyVersion"
	fieldSignature  = "signature"
)

// Header is the parsed form of a Signature header. Signature holds the
// base64 text, already url-decoded.
type Header struct {
	Algorithm  string
	KeyVersion string
	Signature  string
}

// NewHeader builds a header for raw signature bytes.
func NewHeader(alg Algorithm, keyVersion string, sig []byte) Header {
	if keyVersion == "" {
		keyVersion = DefaultKeyVersion
	}
	return Header{
		Algorithm:  alg.Name(),
		KeyVersion: keyVersion,
		Signature:  EncodeSignature(sig),
	}
}

// String renders the header value. The base64 text is url-encoded since
// '+', '/' and '=' are not safe inside the comma separated list.
func (h Header) String() string {
	return fieldAlgorithm + "=" + h.Algorithm +
		"," + fieldKeyVersion + "=" + h.KeyVersion +
		"," + fieldSignature + "=" + url.QueryEscape(h.Signature)
}

// Bytes decodes the base64 signature.
func (h Header) Bytes() ([]byte, error) {
	return DecodeSignature(h.Signature)
}

// ParseHeader parses a Signature header value. Field order is free,
// whitespace around fields is ignored and unknown fields are skipped.
// A missing or repeated field is a header-stage VerificationError.
func ParseHeader(value string) (Header, error) {
	var (
		h            Header
		hasSignature bool
		seen         = make(map[string]bool, 3)
	)

	if strings.TrimSpace(value) == "" {
		return h, NewVerificationError(StageHeader, ErrMissingSignatureField)
	}

	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, val, ok := strings.Cut(part, "=")
		if !ok {
			return Header{}, NewVerificationError(StageHeader,
				fmt.Errorf("%w: field without '='", ErrMalformedHeader))
		}

		key = strings.TrimSpace(key)
		switch key {
		case fieldAlgorithm, fieldKeyVersion, fieldSignature:
			if seen[key] {
				return Header{}, NewVerificationError(StageHeader,
					fmt.Errorf("%w: duplicate field %q", ErrMalformedHeader, key))
			}
			seen[key] = true
		}

		switch key {
		case fieldAlgorithm:
			h.Algorithm = strings.TrimSpace(val)
		case fieldKeyVersion:
			h.KeyVersion = strings.TrimSpace(val)
		case fieldSignature:
			decoded, err := url.PathUnescape(strings.TrimSpace(val))
			if err != nil {
				return Header{}, NewVerificationError(StageHeader,
					fmt.Errorf("%w: bad percent-encoding", ErrMalformedHeader))
			}
			h.Signature = decoded
			hasSignature = true
		}
	}

	if !hasSignature {
		return Header{}, NewVerificationError(StageHeader, ErrMissingSignatureField)
	}
	if h.Signature == "" {
		return Header{}, NewVerificationError(StageHeader, ErrEmptySignature)
	}

	return h, nil
}

// EncodeSignature returns standard padded base64.
func EncodeSignature(sig []byte) string {
	return base64.StdEncoding.EncodeToString(sig)
}

// DecodeSignature accepts standard base64 with or without padding.
// Failures are decode-stage VerificationErrors.
func DecodeSignature(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.Trim(s, "=") == "" {
		return nil, NewVerificationError(StageDecode, ErrEmptySignature)
	}

	enc := base64.RawStdEncoding
	if strings.HasSuffix(s, "=") {
		enc = base64.StdEncoding
	}
	sig, err := enc.DecodeString(s)
	if err != nil {
		return nil, NewVerificationError(StageDecode, fmt.Errorf("invalid base64: %w", err))
	}
	return sig, nil
}

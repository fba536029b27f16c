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

// Package verifier checks signatures on inbound AMS messages: responses to
// the merchant's own calls and asynchronous notifications pushed to the
// merchant's notify URL.
//
// # Verification steps
//
// The Signature header is parsed, the signature field is url-decoded and
// base64-decoded, the canonical string is rebuilt from the received
// method, path, client id, timestamp and raw body, and the RSA PKCS#1 v1.5
// SHA-256 signature is checked with the counterparty public key. Any
// failure is a *signature.VerificationError carrying the stage; there is
// no fallback to acceptance.
//
//	v := verifier.NewDefaultVerifier()
//	err := v.Verify(ctx, canonicalString, r.Header.Get("Signature"), alipayKey)
//
// # Inbound messages
//
// InboundMessage gathers what the canonical string needs from an HTTP
// exchange. Use MessageFromResponse for a response (the path is the one
// the request was sent to, the timestamp comes from Response-Time) and
// MessageFromRequest for a notification (the path is the notify path,
// the timestamp comes from Request-Time). The body must be the raw bytes
// read from the wire.
//
//	body, _ := io.ReadAll(resp.Body)
//	msg := verifier.MessageFromResponse(resp.Header, canonical.MethodPost, path, body)
//	err := v.VerifyMessage(ctx, msg, alipayKey)
//
// # Key selection
//
// KeySelector chooses the public key by the keyVersion field, so a key
// rotation can be rolled out with both versions accepted:
//
//	selector := verifier.NewDefaultKeySelector(current, map[string]keys.PublicKeyHolder{
//	    "1": previous,
//	    "2": current,
//	})
//	err := v.VerifyMessageWithSelector(ctx, msg, selector)
//
// # Replay window
//
// VerifyOptions.MaxClockSkew rejects messages whose timestamp is too far
// from the local clock. It is off by default.
package verifier

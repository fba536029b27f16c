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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sage-x-project/alipay-global-go/pkg/canonical"
	"github.com/sage-x-project/alipay-global-go/pkg/keys"
	"github.com/sage-x-project/alipay-global-go/pkg/signature"
)

// DefaultVerifier implements Verifier using the signature algorithm
// registry. An inbound header without an algorithm field is treated as
// RSA256
type DefaultVerifier struct {
	opts VerifyOptions
}

// NewDefaultVerifier creates a verifier with no clock skew check
func NewDefaultVerifier() *DefaultVerifier {
	return NewDefaultVerifierWithOptions(nil)
}

// NewDefaultVerifierWithOptions creates a verifier with custom options
func NewDefaultVerifierWithOptions(opts *VerifyOptions) *DefaultVerifier {
	v := &DefaultVerifier{}
	if opts != nil {
		v.opts = *opts
	}
	if v.opts.Now == nil {
		v.opts.Now = time.Now
	}
	return v
}

// Verify checks headerValue against canonicalString with key
func (v *DefaultVerifier) Verify(ctx context.Context, canonicalString, headerValue string, key keys.PublicKeyHolder) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	header, err := signature.ParseHeader(headerValue)
	if err != nil {
		return err
	}

	return v.verifyHeader(canonicalString, header, key)
}

// VerifyMessage rebuilds the canonical string from msg and verifies it
// with key
func (v *DefaultVerifier) VerifyMessage(ctx context.Context, msg *InboundMessage, key keys.PublicKeyHolder) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	header, err := v.checkMessage(msg)
	if err != nil {
		return err
	}

	return v.verifyHeader(msg.Canonical(), header, key)
}

// VerifyMessageWithSelector verifies msg with the key selector picks for
// the header's keyVersion
func (v *DefaultVerifier) VerifyMessageWithSelector(ctx context.Context, msg *InboundMessage, selector KeySelector) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if selector == nil {
		return signature.NewVerificationError(signature.StageKey, keys.ErrNoPublicKey)
	}

	header, err := v.checkMessage(msg)
	if err != nil {
		return err
	}

	key, err := selector.SelectKey(ctx, header.KeyVersion)
	if err != nil {
		return signature.NewVerificationError(signature.StageKey, err)
	}

	return v.verifyHeader(msg.Canonical(), header, key)
}

// checkMessage validates the transport fields of msg and parses its
// Signature header
func (v *DefaultVerifier) checkMessage(msg *InboundMessage) (signature.Header, error) {
	if msg == nil {
		return signature.Header{}, signature.NewVerificationError(signature.StageHeader,
			errors.New("message cannot be nil"))
	}

	if msg.Signature == "" {
		return signature.Header{}, missingHeader(signature.HeaderSignature)
	}
	if msg.ClientID == "" {
		return signature.Header{}, missingHeader(signature.HeaderClientID)
	}
	if msg.Timestamp == "" {
		return signature.Header{}, missingHeader("timestamp")
	}

	if v.opts.ExpectedClientID != "" && msg.ClientID != v.opts.ExpectedClientID {
		return signature.Header{}, signature.NewVerificationError(signature.StageHeader,
			fmt.Errorf("unexpected client id %q", msg.ClientID))
	}

	if err := v.checkClock(msg.Timestamp); err != nil {
		return signature.Header{}, err
	}

	return signature.ParseHeader(msg.Signature)
}

func (v *DefaultVerifier) checkClock(timestamp string) error {
	if v.opts.MaxClockSkew <= 0 {
		return nil
	}

	ts, err := canonical.ParseTimestamp(timestamp)
	if err != nil {
		return signature.NewVerificationError(signature.StageTimestamp, fmt.Errorf("invalid timestamp: %w", err))
	}

	skew := v.opts.Now().Sub(ts)
	if skew < 0 {
		skew = -skew
	}
	if skew > v.opts.MaxClockSkew {
		return signature.NewVerificationError(signature.StageTimestamp,
			fmt.Errorf("%w: off by %s", signature.ErrClockSkew, skew.Truncate(time.Second)))
	}
	return nil
}

func (v *DefaultVerifier) verifyHeader(canonicalString string, header signature.Header, key keys.PublicKeyHolder) error {
	algName := header.Algorithm
	if algName == "" {
		algName = signature.RSA256.Name()
	}
	alg, err := signature.LookupAlgorithm(algName)
	if err != nil {
		return signature.NewVerificationError(signature.StageHeader, err)
	}

	sig, err := header.Bytes()
	if err != nil {
		return err
	}

	if key == nil {
		return signature.NewVerificationError(signature.StageKey, keys.ErrNoPublicKey)
	}
	pub, err := key.PublicKey()
	if err != nil {
		return signature.NewVerificationError(signature.StageKey, err)
	}

	if err := alg.Verify([]byte(canonicalString), sig, pub); err != nil {
		if errors.Is(err, signature.ErrUnsupportedKey) || errors.Is(err, signature.ErrKeyTooSmall) {
			return signature.NewVerificationError(signature.StageKey, err)
		}
		return signature.NewVerificationError(signature.StageSignature, err)
	}
	return nil
}

func missingHeader(name string) error {
	return signature.NewVerificationError(signature.StageHeader,
		fmt.Errorf("%w: %s", signature.ErrMissingHeader, name))
}

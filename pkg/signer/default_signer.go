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
	"errors"
	"fmt"

	"github.com/sage-x-project/alipay-global-go/pkg/canonical"
	"github.com/sage-x-project/alipay-global-go/pkg/keys"
	"github.com/sage-x-project/alipay-global-go/pkg/signature"
)

// DefaultSigner implements Signer with a registered signature.Algorithm
type DefaultSigner struct {
	algorithm  signature.Algorithm
	keyVersion string
}

// NewDefaultSigner creates a signer using RSA256 and the default key version
func NewDefaultSigner() *DefaultSigner {
	return NewDefaultSignerWithOptions(nil)
}

// NewDefaultSignerWithOptions creates a signer with custom options
func NewDefaultSignerWithOptions(opts *SigningOptions) *DefaultSigner {
	s := &DefaultSigner{
		algorithm:  signature.RSA256,
		keyVersion: signature.DefaultKeyVersion,
	}
	if opts == nil {
		return s
	}
	if opts.Algorithm != nil {
		s.algorithm = opts.Algorithm
	}
	if opts.KeyVersion != "" {
		s.keyVersion = opts.KeyVersion
	}
	return s
}

// Algorithm returns the algorithm this signer uses
func (s *DefaultSigner) Algorithm() signature.Algorithm {
	return s.algorithm
}

// KeyVersion returns the key version placed in headers
func (s *DefaultSigner) KeyVersion() string {
	return s.keyVersion
}

// Sign signs a canonical string and returns the base64 signature
func (s *DefaultSigner) Sign(ctx context.Context, canonicalString string, key keys.PrivateKeyHolder) (string, error) {
	sig, err := s.sign(ctx, canonicalString, key)
	if err != nil {
		return "", err
	}
	return signature.EncodeSignature(sig), nil
}

// SignMessage serializes payload once, signs the canonical string and
// returns the body and header to send
func (s *DefaultSigner) SignMessage(ctx context.Context, sc canonical.SigningContext, payload canonical.Signable, key keys.PrivateKeyHolder) (*SignedMessage, error) {
	if payload == nil {
		return nil, &signature.SigningError{Err: errors.New("payload cannot be nil")}
	}

	body, err := payload.SignablePayload()
	if err != nil {
		return nil, &signature.SigningError{Err: err}
	}

	sig, err := s.sign(ctx, canonical.Build(sc, body), key)
	if err != nil {
		return nil, err
	}

	return &SignedMessage{
		Context: sc,
		Body:    body,
		Header:  signature.NewHeader(s.algorithm, s.keyVersion, sig),
	}, nil
}

func (s *DefaultSigner) sign(ctx context.Context, canonicalString string, key keys.PrivateKeyHolder) ([]byte, error) {
	// Check context
	if err := ctx.Err(); err != nil {
		return nil, &signature.SigningError{Err: fmt.Errorf("context error: %w", err)}
	}

	if key == nil {
		return nil, &signature.SigningError{Err: keys.ErrNoPrivateKey}
	}

	priv, err := key.PrivateKey()
	if err != nil {
		return nil, &signature.SigningError{Err: err}
	}

	sig, err := s.algorithm.Sign([]byte(canonicalString), priv)
	if err != nil {
		return nil, &signature.SigningError{Err: err}
	}
	return sig, nil
}

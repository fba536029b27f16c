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
	"errors"
	"fmt"
)

var (
	ErrMissingSignatureField = errors.New("signature field not found in header")
	ErrMalformedHeader       = errors.New("malformed signature header")
	ErrEmptySignature        = errors.New("empty signature")
	ErrSignatureMismatch     = errors.New("signature does not match message")
	ErrUnsupportedAlgorithm  = errors.New("unsupported signature algorithm")
	ErrUnsupportedKey        = errors.New("unsupported key type")
	ErrKeyTooSmall           = errors.New("key size below minimum")
	ErrMissingHeader         = errors.New("required header missing")
	ErrClockSkew             = errors.New("timestamp outside accepted window")
)

// Stage names the step of verification that failed.
type Stage string

const (
	StageHeader    Stage = "header"
	StageDecode    Stage = "decode"
	StageSignature Stage = "signature"
	StageKey       Stage = "key"
	StageTimestamp Stage = "timestamp"
)

// SigningError reports that a signature could not be produced.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing failed: %v", e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// VerificationError reports that an inbound signature was rejected.
// Messages never include key material or the signature itself.
type VerificationError struct {
	Stage Stage
	Err   error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("signature verification failed at %s stage: %v", e.Stage, e.Err)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// NewVerificationError wraps err with the stage it happened in.
func NewVerificationError(stage Stage, err error) *VerificationError {
	return &VerificationError{Stage: stage, Err: err}
}

// IsVerificationError reports whether err is a verification failure and
// returns its stage.
func IsVerificationError(err error) (Stage, bool) {
	var verr *VerificationError
	if errors.As(err, &verr) {
		return verr.Stage, true
	}
	return "", false
}

// IsSigningError reports whether err is a signing failure.
func IsSigningError(err error) bool {
	var serr *SigningError
	return errors.As(err, &serr)
}

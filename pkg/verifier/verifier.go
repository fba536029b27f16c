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
	"time"

	"github.com/sage-x-project/alipay-global-go/pkg/keys"
)

// Verifier verifies signatures on inbound AMS messages
type Verifier interface {
	// Verify checks headerValue against a canonical string the caller
	// already built
	Verify(ctx context.Context, canonicalString, headerValue string, key keys.PublicKeyHolder) error

	// VerifyMessage rebuilds the canonical string from msg and verifies it
	VerifyMessage(ctx context.Context, msg *InboundMessage, key keys.PublicKeyHolder) error

	// VerifyMessageWithSelector is VerifyMessage with the key chosen by
	// the header's keyVersion
	VerifyMessageWithSelector(ctx context.Context, msg *InboundMessage, selector KeySelector) error
}

// VerifyOptions contains options for verification
type VerifyOptions struct {
	// MaxClockSkew rejects messages whose timestamp differs from Now by
	// more than this. Zero disables the check
	MaxClockSkew time.Duration

	// ExpectedClientID, if set, rejects messages carrying another client id
	ExpectedClientID string

	// Now returns the current time. If nil, time.Now is used
	Now func() time.Time
}

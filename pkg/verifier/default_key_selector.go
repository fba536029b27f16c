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

	"github.com/sage-x-project/alipay-global-go/pkg/keys"
)

// ErrUnknownKeyVersion is returned when no key matches a keyVersion and
// there is no fallback
var ErrUnknownKeyVersion = errors.New("no public key for key version")

// DefaultKeySelector implements KeySelector with a fixed version table
// and a fallback key
type DefaultKeySelector struct {
	fallback keys.PublicKeyHolder
	versions map[string]keys.PublicKeyHolder
}

// NewDefaultKeySelector creates a selector. fallback is used for an empty
// or unknown keyVersion and may be nil to require an exact match
func NewDefaultKeySelector(fallback keys.PublicKeyHolder, versions map[string]keys.PublicKeyHolder) *DefaultKeySelector {
	table := make(map[string]keys.PublicKeyHolder, len(versions))
	for version, holder := range versions {
		table[version] = holder
	}

	return &DefaultKeySelector{
		fallback: fallback,
		versions: table,
	}
}

// NewStaticKeySelector returns a selector that always yields key
func NewStaticKeySelector(key keys.PublicKeyHolder) *DefaultKeySelector {
	return NewDefaultKeySelector(key, nil)
}

// SelectKey selects the key registered for keyVersion
func (s *DefaultKeySelector) SelectKey(ctx context.Context, keyVersion string) (keys.PublicKeyHolder, error) {
	// Check context first
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if keyVersion != "" {
		if holder, ok := s.versions[keyVersion]; ok {
			return holder, nil
		}
	}

	// Fallback: default key
	if s.fallback != nil {
		return s.fallback, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKeyVersion, keyVersion)
}

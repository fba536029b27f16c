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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/alipay-global-go/internal/testkeys"
	"github.com/sage-x-project/alipay-global-go/pkg/keys"
)

func TestDefaultKeySelector(t *testing.T) {
	current := keys.StaticPublicKey{Key: &testkeys.Alipay(t).PublicKey}
	previous := keys.StaticPublicKey{Key: &testkeys.Merchant(t).PublicKey}

	t.Run("exact version", func(t *testing.T) {
		s := NewDefaultKeySelector(current, map[string]keys.PublicKeyHolder{"1": previous, "2": current})

		got, err := s.SelectKey(context.Background(), "1")
		require.NoError(t, err)
		assert.Equal(t, previous, got)
	})

	t.Run("empty version uses fallback", func(t *testing.T) {
		s := NewDefaultKeySelector(current, map[string]keys.PublicKeyHolder{"1": previous})

		got, err := s.SelectKey(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, current, got)
	})

	t.Run("unknown version uses fallback", func(t *testing.T) {
		s := NewStaticKeySelector(current)

		got, err := s.SelectKey(context.Background(), "42")
		require.NoError(t, err)
		assert.Equal(t, current, got)
	})

	t.Run("no match and no fallback", func(t *testing.T) {
		s := NewDefaultKeySelector(nil, nil)

		_, err := s.SelectKey(context.Background(), "1")
		assert.ErrorIs(t, err, ErrUnknownKeyVersion)
	})

	t.Run("table is copied", func(t *testing.T) {
		table := map[string]keys.PublicKeyHolder{"1": previous}
		s := NewDefaultKeySelector(nil, table)
		delete(table, "1")

		_, err := s.SelectKey(context.Background(), "1")
		assert.NoError(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewStaticKeySelector(current).SelectKey(ctx, "1")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

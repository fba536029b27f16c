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

	"github.com/sage-x-project/alipay-global-go/pkg/keys"
)

// KeySelector selects the counterparty public key for a message
// based on the keyVersion field of its Signature header
type KeySelector interface {
	// SelectKey returns the key for keyVersion. An empty keyVersion
	// asks for the default key
	SelectKey(ctx context.Context, keyVersion string) (keys.PublicKeyHolder, error)
}

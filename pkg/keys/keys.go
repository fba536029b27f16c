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

// Package keys loads and holds the RSA keys used on both sides of an AMS
// exchange: the merchant's own private key, which signs outbound requests
// and webhook acknowledgements, and the counterparty public key, which
// verifies responses and notifications.
//
// Keys are parsed once, when KeyMaterial is built, and are read-only
// afterwards, so one KeyMaterial can be shared by any number of goroutines.
package keys

import (
	"crypto"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrNoPrivateKey = errors.New("no private key configured")
	ErrNoPublicKey  = errors.New("no counterparty public key configured")
)

// PrivateKeyHolder provides the key used to sign outbound messages.
type PrivateKeyHolder interface {
	PrivateKey() (crypto.Signer, error)
}

// PublicKeyHolder provides the key used to verify inbound messages.
type PublicKeyHolder interface {
	PublicKey() (crypto.PublicKey, error)
}

// KeyMaterial pairs the merchant private key with the counterparty public
// key. Either half may be absent; asking for a missing half is an error.
type KeyMaterial struct {
	private crypto.Signer
	public  crypto.PublicKey
}

// NewKeyMaterial wraps already parsed keys. Pass nil for a missing half.
func NewKeyMaterial(private crypto.Signer, counterparty crypto.PublicKey) *KeyMaterial {
	return &KeyMaterial{
		private: private,
		public:  counterparty,
	}
}

// PrivateKey implements PrivateKeyHolder.
func (k *KeyMaterial) PrivateKey() (crypto.Signer, error) {
	if k == nil || k.private == nil {
		return nil, ErrNoPrivateKey
	}
	return k.private, nil
}

// PublicKey implements PublicKeyHolder.
func (k *KeyMaterial) PublicKey() (crypto.PublicKey, error) {
	if k == nil || k.public == nil {
		return nil, ErrNoPublicKey
	}
	return k.public, nil
}

// HasPrivateKey reports whether a signing key is present.
func (k *KeyMaterial) HasPrivateKey() bool {
	return k != nil && k.private != nil
}

// HasPublicKey reports whether a verification key is present.
func (k *KeyMaterial) HasPublicKey() bool {
	return k != nil && k.public != nil
}

// StaticPublicKey adapts a parsed public key to PublicKeyHolder.
type StaticPublicKey struct {
	Key crypto.PublicKey
}

// PublicKey implements PublicKeyHolder.
func (s StaticPublicKey) PublicKey() (crypto.PublicKey, error) {
	if s.Key == nil {
		return nil, ErrNoPublicKey
	}
	return s.Key, nil
}

// Source describes where key text comes from. For each key, inline text
// wins over a file path. Inline text may be PEM or bare base64 DER.
type Source struct {
	PrivateKey     string
	PrivateKeyFile string
	PublicKey      string
	PublicKeyFile  string
}

// Load reads and parses every key named in src.
func Load(src Source) (*KeyMaterial, error) {
	km := &KeyMaterial{}

	privData, err := readKeyText(src.PrivateKey, src.PrivateKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	if privData != nil {
		km.private, err = ParsePrivateKey(privData)
		if err != nil {
			return nil, err
		}
	}

	pubData, err := readKeyText(src.PublicKey, src.PublicKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key: %w", err)
	}
	if pubData != nil {
		km.public, err = ParsePublicKey(pubData)
		if err != nil {
			return nil, err
		}
	}

	return km, nil
}

func readKeyText(inline, path string) ([]byte, error) {
	if strings.TrimSpace(inline) != "" {
		return []byte(inline), nil
	}
	if path == "" {
		return nil, nil
	}
	return os.ReadFile(path)
}

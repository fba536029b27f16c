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

// Package testkeys generates RSA keys for tests. Keys are created once per
// test binary and never written to disk.
package testkeys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"testing"
)

var (
	mu    sync.Mutex
	cache = make(map[string]*rsa.PrivateKey)
)

// RSA returns a 2048-bit key for name. The same name yields the same key
// within one test binary.
func RSA(t testing.TB, name string) *rsa.PrivateKey {
	t.Helper()
	return generate(t, name, 2048)
}

// Weak returns a 1024-bit key, below the accepted minimum.
func Weak(t testing.TB) *rsa.PrivateKey {
	t.Helper()
	return generate(t, "weak-1024", 1024)
}

// Merchant is the key a merchant signs requests with.
func Merchant(t testing.TB) *rsa.PrivateKey {
	t.Helper()
	return RSA(t, "merchant")
}

// Alipay is the key the gateway signs responses and notifications with.
func Alipay(t testing.TB) *rsa.PrivateKey {
	t.Helper()
	return RSA(t, "alipay")
}

// PrivatePEM encodes key as a PKCS#8 PEM block.
func PrivatePEM(t testing.TB, key *rsa.PrivateKey) []byte {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal private key: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

// PublicPEM encodes the public half of key as a PKIX PEM block.
func PublicPEM(t testing.TB, key *rsa.PrivateKey) []byte {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
}

func generate(t testing.TB, name string, bits int) *rsa.PrivateKey {
	t.Helper()

	mu.Lock()
	defer mu.Unlock()

	if key, ok := cache[name]; ok {
		return key
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		t.Fatalf("generate %s key: %v", name, err)
	}
	cache[name] = key
	return key
}

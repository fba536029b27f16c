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
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"sync"

	_ "crypto/sha256"
	_ "crypto/sha512"
)

// MinRSAKeyBits is the smallest RSA modulus accepted for signing or
// verification.
const MinRSAKeyBits = 2048

// Algorithm is a named signature scheme usable in the algorithm= field of
// a Signature header. Implementations are stateless.
type Algorithm interface {
	// Name returns the identifier placed in the header, e.g. "RSA256".
	Name() string

	// Sign digests message and signs the digest with key.
	Sign(message []byte, key crypto.Signer) ([]byte, error)

	// Verify checks sig over message with key. It returns
	// ErrSignatureMismatch when the signature is well formed but wrong.
	Verify(message, sig []byte, key crypto.PublicKey) error
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Algorithm)
)

// RSA256 is SHA-256 with RSASSA-PKCS1-v1_5, the AMS default.
var RSA256 Algorithm = &rsaPKCS1v15{name: "RSA256", hash: crypto.SHA256}

// RSA512 is SHA-512 with RSASSA-PKCS1-v1_5.
var RSA512 Algorithm = &rsaPKCS1v15{name: "RSA512", hash: crypto.SHA512}

func init() {
	RegisterAlgorithm(RSA256)
	RegisterAlgorithm(RSA512)
}

// RegisterAlgorithm adds alg to the registry. It panics if the name is
// already taken.
func RegisterAlgorithm(alg Algorithm) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := alg.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("algorithm %q already registered", name))
	}
	registry[name] = alg
}

// LookupAlgorithm returns the algorithm registered under name.
func LookupAlgorithm(name string) (Algorithm, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnsupportedAlgorithm)
	}

	registryMu.RLock()
	alg, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
	return alg, nil
}

type rsaPKCS1v15 struct {
	name string
	hash crypto.Hash
}

func (a *rsaPKCS1v15) Name() string {
	return a.name
}

func (a *rsaPKCS1v15) digest(message []byte) []byte {
	h := a.hash.New()
	h.Write(message)
	return h.Sum(nil)
}

func (a *rsaPKCS1v15) Sign(message []byte, key crypto.Signer) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: nil signer", ErrUnsupportedKey)
	}

	pub, ok := key.Public().(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s requires an RSA key, got %T", ErrUnsupportedKey, a.name, key.Public())
	}
	if err := checkRSASize(pub); err != nil {
		return nil, err
	}

	// Passing the hash as SignerOpts makes the signer embed the DigestInfo.
	sig, err := key.Sign(rand.Reader, a.digest(message), a.hash)
	if err != nil {
		return nil, fmt.Errorf("%s sign: %w", a.name, err)
	}
	return sig, nil
}

func (a *rsaPKCS1v15) Verify(message, sig []byte, key crypto.PublicKey) error {
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("%w: %s requires an RSA key, got %T", ErrUnsupportedKey, a.name, key)
	}
	if err := checkRSASize(pub); err != nil {
		return err
	}
	if len(sig) == 0 {
		return ErrEmptySignature
	}

	if err := rsa.VerifyPKCS1v15(pub, a.hash, a.digest(message), sig); err != nil {
		return ErrSignatureMismatch
	}
	return nil
}

func checkRSASize(pub *rsa.PublicKey) error {
	if pub.N == nil {
		return fmt.Errorf("%w: empty modulus", ErrUnsupportedKey)
	}
	if bits := pub.N.BitLen(); bits < MinRSAKeyBits {
		return fmt.Errorf("%w: %d bits, need %d", ErrKeyTooSmall, bits, MinRSAKeyBits)
	}
	return nil
}

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

package keys

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"github.com/sigstore/sigstore/pkg/cryptoutils"
)

var ErrInvalidKey = errors.New("invalid key data")

// ParsePrivateKey parses a PEM block (PKCS#8 or PKCS#1) or bare base64
// DER, as exported by the Alipay developer console.
func ParsePrivateKey(data []byte) (crypto.Signer, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty private key", ErrInvalidKey)
	}

	var (
		priv crypto.PrivateKey
		err  error
	)
	if isPEM(data) {
		priv, err = cryptoutils.UnmarshalPEMToPrivateKey(data, nil)
	} else {
		priv, err = parsePrivateDER(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	signer, ok := priv.(crypto.Signer)
	if !ok {
		return nil, fmt.Errorf("%w: private key does not implement crypto.Signer", ErrInvalidKey)
	}
	return signer, nil
}

// ParsePublicKey parses a PEM block (PKIX or PKCS#1) or bare base64 DER.
func ParsePublicKey(data []byte) (crypto.PublicKey, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty public key", ErrInvalidKey)
	}

	var (
		pub crypto.PublicKey
		err error
	)
	if isPEM(data) {
		pub, err = cryptoutils.UnmarshalPEMToPublicKey(data)
		if err != nil {
			pub, err = parsePKCS1PublicPEM(data, err)
		}
	} else {
		pub, err = parsePublicDER(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return pub, nil
}

// GenerateRSA creates a new RSA key of the given size.
func GenerateRSA(bits int) (*rsa.PrivateKey, error) {
	if bits < 2048 {
		return nil, fmt.Errorf("%w: RSA keys must be at least 2048 bits", ErrInvalidKey)
	}
	return rsa.GenerateKey(rand.Reader, bits)
}

// MarshalPrivateKeyPEM encodes key as PEM.
func MarshalPrivateKeyPEM(key crypto.PrivateKey) ([]byte, error) {
	return cryptoutils.MarshalPrivateKeyToPEM(key)
}

// MarshalPublicKeyPEM encodes key as a PKIX PEM block.
func MarshalPublicKeyPEM(key crypto.PublicKey) ([]byte, error) {
	return cryptoutils.MarshalPublicKeyToPEM(key)
}

// MarshalPublicKeyBase64 encodes key as bare base64 PKIX DER, the form
// uploaded to the Alipay developer console.
func MarshalPublicKeyBase64(key crypto.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(der), nil
}

func isPEM(data []byte) bool {
	return bytes.HasPrefix(data, []byte("-----BEGIN"))
}

func decodeBareBase64(data []byte) ([]byte, error) {
	compact := strings.Join(strings.Fields(string(data)), "")
	der, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("%w: not PEM and not base64", ErrInvalidKey)
	}
	return der, nil
}

func parsePrivateDER(data []byte) (crypto.PrivateKey, error) {
	der, err := decodeBareBase64(data)
	if err != nil {
		return nil, err
	}
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	return nil, fmt.Errorf("%w: unrecognized private key DER", ErrInvalidKey)
}

func parsePublicDER(data []byte) (crypto.PublicKey, error) {
	der, err := decodeBareBase64(data)
	if err != nil {
		return nil, err
	}
	if key, err := x509.ParsePKIXPublicKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParsePKCS1PublicKey(der); err == nil {
		return key, nil
	}
	return nil, fmt.Errorf("%w: unrecognized public key DER", ErrInvalidKey)
}

func parsePKCS1PublicPEM(data []byte, cause error) (crypto.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "RSA PUBLIC KEY" {
		return nil, cause
	}
	return x509.ParsePKCS1PublicKey(block.Bytes)
}

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
	"time"

	"github.com/sage-x-project/alipay-global-go/internal/testkeys"
	"github.com/sage-x-project/alipay-global-go/pkg/canonical"
	"github.com/sage-x-project/alipay-global-go/pkg/keys"
	"github.com/sage-x-project/alipay-global-go/pkg/signer"
)

func BenchmarkVerifyMessage(b *testing.B) {
	alipay := testkeys.Alipay(b)
	ctx := context.Background()
	sc := canonical.NewSigningContext(canonical.MethodPost, "/ams/api/v1/payments/pay", "BENCH", time.Now())

	signed, err := signer.NewDefaultSigner().SignMessage(ctx, sc,
		canonical.RawPayload(`{"result":{"resultCode":"SUCCESS","resultStatus":"S"}}`),
		keys.NewKeyMaterial(alipay, nil))
	if err != nil {
		b.Fatal(err)
	}

	msg := &InboundMessage{
		Method:    sc.Method,
		Path:      sc.Path,
		ClientID:  sc.ClientID,
		Timestamp: sc.Timestamp,
		Body:      signed.Body,
		Signature: signed.SignatureHeader(),
	}
	key := keys.NewKeyMaterial(nil, &alipay.PublicKey)
	v := NewDefaultVerifier()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := v.VerifyMessage(ctx, msg, key); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerifyWithSelector(b *testing.B) {
	alipay := testkeys.Alipay(b)
	ctx := context.Background()
	sc := canonical.NewSigningContext(canonical.MethodPost, "/alipay/notify", "BENCH", time.Now())

	signed, err := signer.NewDefaultSignerWithOptions(&signer.SigningOptions{KeyVersion: "2"}).
		SignMessage(ctx, sc, canonical.RawPayload(`{"paymentId":"bench"}`), keys.NewKeyMaterial(alipay, nil))
	if err != nil {
		b.Fatal(err)
	}

	msg := &InboundMessage{
		Method:    sc.Method,
		Path:      sc.Path,
		ClientID:  sc.ClientID,
		Timestamp: sc.Timestamp,
		Body:      signed.Body,
		Signature: signed.SignatureHeader(),
	}
	selector := NewDefaultKeySelector(nil, map[string]keys.PublicKeyHolder{
		"1": keys.StaticPublicKey{Key: &testkeys.Merchant(b).PublicKey},
		"2": keys.StaticPublicKey{Key: &alipay.PublicKey},
	})
	v := NewDefaultVerifier()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := v.VerifyMessageWithSelector(ctx, msg, selector); err != nil {
			b.Fatal(err)
		}
	}
}

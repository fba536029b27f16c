// Package signer produces AMS message signatures.
//
// A signature covers the canonical string built by package canonical:
// method, path, client id, timestamp and the exact serialized body. The
// result is standard base64 of an RSA PKCS#1 v1.5 signature over the
// SHA-256 digest, carried in the Signature header:
//
//	Signature: algorithm=RSA256,keyVersion=1,signature=<url-encoded base64>
//
// # Signing a canonical string
//
//	s := signer.NewDefaultSigner()
//	sig, err := s.Sign(ctx, canonicalString, keyMaterial)
//
// # Signing a message
//
// SignMessage serializes the payload once, signs it and returns the body to
// send together with the headers:
//
//	sc := canonical.NewSigningContext(canonical.MethodPost, path, clientID, time.Now())
//	msg, err := s.SignMessage(ctx, sc, canonical.JSONPayload{Value: req}, keyMaterial)
//	if err != nil {
//	    return err
//	}
//	httpReq, _ := http.NewRequestWithContext(ctx, "POST", url, strings.NewReader(msg.Body))
//	msg.ApplyRequestHeaders(httpReq.Header)
//
// The body sent must be msg.Body byte for byte; re-serializing the request
// invalidates the signature.
//
// # Key handling
//
// Keys come from a keys.PrivateKeyHolder. Any crypto.Signer backed by RSA
// works, so keys held in a KMS or HSM can be used through their crypto.Signer
// adapter. The signer never logs or stores key material.
//
// # Thread safety
//
// DefaultSigner holds no mutable state and is safe for concurrent use.
package signer

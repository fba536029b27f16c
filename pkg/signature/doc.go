// Package signature holds the primitives shared by signing and verification
// of AMS messages: the algorithm registry, the Signature header codec and
// the error taxonomy.
//
// A Signature header value looks like:
//
//	algorithm=RSA256,keyVersion=1,signature=<url-encoded base64>
//
// RSA256 means SHA-256 digest signed with RSASSA-PKCS1-v1_5, with the
// DigestInfo for SHA-256 embedded in the signed block.
//
// Verification failures are reported as *VerificationError with a Stage
// telling where they happened (header parse, decode, crypto check). None
// of them is ever treated as success.
package signature

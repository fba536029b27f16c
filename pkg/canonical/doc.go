// Package canonical builds the exact string that is signed and verified on
// every Alipay Global (AMS) message.
//
// The layout is fixed and carries no trailing newline:
//
//	<METHOD> <PATH>\n<CLIENT_ID>.<TIMESTAMP>.<PAYLOAD>
//
// For example:
//
//	sc := canonical.NewSigningContext(canonical.MethodPost,
//	    "/ams/sandbox/api/v1/payments/pay", "SANDBOX_TEST", time.Now())
//	s := canonical.Build(sc, `{"paymentRequestId":"abc"}`)
//
// The payload must be the exact bytes that travel on the wire. Senders
// serialize once with JSON and send that string; receivers pass the raw
// body they read, never a re-serialized value.
//
// The timestamp is RFC 3339 in UTC at second precision (FormatTimestamp).
// The same string has to be placed in the Request-Time or Response-Time
// header, so callers keep SigningContext.Timestamp and reuse it.
package canonical

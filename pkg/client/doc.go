// Package client provides a typed AMS API client with automatic request
// signing and response verification.
//
// Every call goes through the signing transport: the JSON body is serialized
// once, signed together with the method, path, client id and Request-Time,
// and the response is checked against the Alipay public key before it is
// decoded. A response that fails verification is never returned.
//
// # Features
//
//   - Pay (cashier payment), Refund and InquiryPayment
//   - Generic Call for endpoints without a typed helper
//   - Sandbox path selection
//   - Result classification into success, failure and unknown
//   - Logging, Prometheus metrics and OpenTelemetry spans per call
//
// # Basic Usage
//
//	km, err := keys.Load(keys.Source{
//	    PrivateKeyFile: "/etc/alipay/merchant_private.pem",
//	    PublicKeyFile:  "/etc/alipay/alipay_public.pem",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c, err := client.New(clientID, km, client.WithSandbox(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	payment := protocol.NewCashierPayment(protocol.CashierPaymentParams{
//	    ReferenceOrderID:  "order-1001",
//	    Currency:          "USD",
//	    AmountMinor:       1250,
//	    PaymentMethodType: "ALIPAY_CN",
//	    RedirectURL:       "https://shop.example/return",
//	    NotifyURL:         "https://shop.example/alipay/notify",
//	})
//
//	resp, err := c.Pay(ctx, payment)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Redirect the buyer to resp.NormalURL
//
// # Results
//
// AMS reports the outcome in result.resultStatus. S is success. F is
// returned as a *ResultError matching ErrResultFailed. U is returned as a
// *ResultError matching ErrResultUnknown: the operation may have taken
// effect, so inquire before retrying with the same request id.
//
//	resp, err := c.Refund(ctx, refund)
//	switch {
//	case err == nil:
//	case client.IsAmbiguous(err):
//	    // inquire later
//	case errors.Is(err, client.ErrResultFailed):
//	    // resp.Result has the code
//	default:
//	    // transport, signing or verification failure
//	}
//
// Pay treats U with PAYMENT_IN_PROCESS as accepted, since that is the
// normal answer for a cashier payment awaiting the buyer.
//
// # Thread Safety
//
// Client is immutable after New and safe for concurrent use.
package client

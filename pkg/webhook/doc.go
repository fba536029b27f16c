// Package webhook verifies and acknowledges asynchronous AMS notifications.
//
// The gateway posts payment results to the paymentNotifyUrl given in the
// pay request. Each notification is signed with the Alipay private key over
// the request method, the URL path it was posted to, the Client-Id and the
// Request-Time header. The merchant answers with a signed acknowledgement.
//
// # Features
//
//   - net/http middleware and a gin adapter
//   - Key selection by keyVersion
//   - Body preservation for downstream handlers
//   - Signed acknowledgements (Success and Failed)
//   - A complete notify handler built on the two
//
// # Basic Usage
//
//	km, _ := keys.Load(keys.Source{
//	    PrivateKeyFile: "/etc/alipay/merchant_private.pem",
//	    PublicKeyFile:  "/etc/alipay/alipay_public.pem",
//	})
//
//	ack := webhook.NewAcknowledger(clientID, km)
//	handler := webhook.NewNotifyHandler(verifier.NewStaticKeySelector(km), ack,
//	    func(ctx context.Context, n *protocol.PaymentNotification) error {
//	        return orders.MarkPaid(ctx, n.PaymentRequestID, n.Result)
//	    })
//
//	http.Handle("/alipay/notify", handler)
//
// # Middleware Only
//
//	mw := webhook.NewMiddleware(verifier.NewStaticKeySelector(km))
//	http.Handle("/alipay/notify", mw.Wrap(http.HandlerFunc(
//	    func(w http.ResponseWriter, r *http.Request) {
//	        msg, _ := webhook.MessageFromContext(r.Context())
//	        n, err := webhook.ParseNotification([]byte(msg.Body))
//	        ...
//	        ack.Respond(w, r, webhook.Success())
//	    })))
//
// # Gin
//
//	router := gin.New()
//	router.POST("/alipay/notify", mw.Gin(), func(c *gin.Context) {
//	    msg := c.MustGet(webhook.GinMessageKey).(*verifier.InboundMessage)
//	    ...
//	})
//
// # How It Works
//
// The middleware performs the following steps for each request:
//
//  1. Reads the body up to the configured limit
//  2. Builds the message from the method, URL path and headers
//  3. Picks the Alipay public key for the keyVersion in the header
//  4. Verifies the RSA256 signature
//  5. Restores the body and adds the message to the request context
//  6. Calls the next handler
//
// If verification fails at any step the error handler runs and the next
// handler does not. The default handler returns 401 Unauthorized;
// Acknowledger.ErrorHandler answers with a signed failed result instead.
//
// # Thread Safety
//
// Middleware and Acknowledger are immutable after construction and safe
// for concurrent use.
package webhook

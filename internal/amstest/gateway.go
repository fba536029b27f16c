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

// Package amstest runs an in-process stand-in for the AMS gateway. It
// checks merchant request signatures, answers with signed responses and
// can push signed notifications to a merchant notify URL.
package amstest

import (
	"bytes"
	"context"
	"crypto"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	"github.com/sage-x-project/alipay-global-go/pkg/canonical"
	"github.com/sage-x-project/alipay-global-go/pkg/keys"
	"github.com/sage-x-project/alipay-global-go/pkg/protocol"
	"github.com/sage-x-project/alipay-global-go/pkg/signature"
	"github.com/sage-x-project/alipay-global-go/pkg/signer"
	"github.com/sage-x-project/alipay-global-go/pkg/verifier"
)

// Received is a request the gateway accepted
type Received struct {
	Path     string
	ClientID string
	Body     []byte
}

// Responder returns the status and body for an accepted request
type Responder func(path string, body []byte) (int, any)

// Gateway is a fake AMS gateway backed by httptest
type Gateway struct {
	Server *httptest.Server

	merchantKey keys.PublicKeyHolder
	gatewayKey  *keys.KeyMaterial
	signer      *signer.DefaultSigner
	verifier    *verifier.DefaultVerifier

	mu        sync.Mutex
	responder Responder
	received  []Received
	rejected  int

	// TamperResponse alters the body after it was signed
	TamperResponse bool

	// UnsignedResponse omits the Signature header
	UnsignedResponse bool
}

// NewGateway starts a gateway that trusts merchantPub and signs with
// gatewayKey. Close it with Server.Close
func NewGateway(merchantPub crypto.PublicKey, gatewayKey crypto.Signer) *Gateway {
	g := &Gateway{
		merchantKey: keys.StaticPublicKey{Key: merchantPub},
		gatewayKey:  keys.NewKeyMaterial(gatewayKey, nil),
		signer:      signer.NewDefaultSigner(),
		verifier:    verifier.NewDefaultVerifier(),
		responder:   successResponder,
	}
	g.Server = httptest.NewServer(http.HandlerFunc(g.serve))
	return g
}

// URL is the gateway base URL
func (g *Gateway) URL() string {
	return g.Server.URL
}

// Close stops the server
func (g *Gateway) Close() {
	g.Server.Close()
}

// SetResponder replaces the response logic
func (g *Gateway) SetResponder(r Responder) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responder = r
}

// Received returns the accepted requests in order
func (g *Gateway) Received() []Received {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Received(nil), g.received...)
}

// Rejected returns how many requests failed signature checks
func (g *Gateway) Rejected() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rejected
}

func (g *Gateway) serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	msg := verifier.MessageFromRequest(r, body)
	if err := g.verifier.VerifyMessage(r.Context(), msg, g.merchantKey); err != nil {
		g.mu.Lock()
		g.rejected++
		g.mu.Unlock()
		g.write(w, r, http.StatusUnauthorized, protocol.Acknowledgement{Result: protocol.Result{
			ResultCode:    protocol.CodeInvalidSignature,
			ResultStatus:  protocol.ResultFailed,
			ResultMessage: "invalid signature",
		}})
		return
	}

	g.mu.Lock()
	g.received = append(g.received, Received{Path: r.URL.Path, ClientID: msg.ClientID, Body: body})
	responder := g.responder
	g.mu.Unlock()

	status, v := responder(r.URL.Path, body)
	g.write(w, r, status, v)
}

func (g *Gateway) write(w http.ResponseWriter, r *http.Request, status int, v any) {
	sc := canonical.NewSigningContext(canonical.Method(r.Method), r.URL.Path,
		r.Header.Get(signature.HeaderClientID), time.Now())

	msg, err := g.signer.SignMessage(r.Context(), sc, canonical.JSONPayload{Value: v}, g.gatewayKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !g.UnsignedResponse {
		msg.ApplyResponseHeaders(w.Header())
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)

	body := msg.Body
	if g.TamperResponse {
		body = string(bytes.Replace([]byte(body), []byte(`"S"`), []byte(`"F"`), 1)) + " "
	}
	io.WriteString(w, body)
}

// Notify posts a signed notification to notifyURL as the gateway would
func (g *Gateway) Notify(ctx context.Context, notifyURL, clientID string, n any) (*http.Response, []byte, error) {
	u, err := url.Parse(notifyURL)
	if err != nil {
		return nil, nil, err
	}

	sc := canonical.NewSigningContext(canonical.MethodPost, u.Path, clientID, time.Now())
	msg, err := g.signer.SignMessage(ctx, sc, canonical.JSONPayload{Value: n}, g.gatewayKey)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, notifyURL, bytes.NewReader([]byte(msg.Body)))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	msg.ApplyRequestHeaders(req.Header)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read ack: %w", err)
	}
	return resp, body, nil
}

func successResponder(path string, body []byte) (int, any) {
	return http.StatusOK, protocol.Response{Result: protocol.SuccessResult()}
}

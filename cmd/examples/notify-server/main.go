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

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sage-x-project/alipay-global-go/pkg/config"
	"github.com/sage-x-project/alipay-global-go/pkg/logger"
	"github.com/sage-x-project/alipay-global-go/pkg/metrics"
	"github.com/sage-x-project/alipay-global-go/pkg/protocol"
	"github.com/sage-x-project/alipay-global-go/pkg/verifier"
	"github.com/sage-x-project/alipay-global-go/pkg/webhook"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitWithConfig(cfg.Log)
	defer logger.Close()

	km, err := cfg.LoadKeys()
	if err != nil {
		log.Fatalf("Failed to load keys: %v", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	v := verifier.NewDefaultVerifierWithOptions(&verifier.VerifyOptions{
		MaxClockSkew:     cfg.Webhook.MaxClockSkew,
		ExpectedClientID: cfg.ClientID,
	})

	ack := webhook.NewAcknowledger(cfg.ClientID, km)
	notify := webhook.NewNotifyHandler(verifier.NewStaticKeySelector(km), ack, handlePayment,
		webhook.WithVerifier(v),
		webhook.WithMetrics(m))

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.POST(cfg.Webhook.NotifyPath, gin.WrapH(notify))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:              cfg.Webhook.Listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("listening on %s, notifications at %s", cfg.Webhook.Listen, cfg.Webhook.NotifyPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

// handlePayment is where an order would be marked paid
func handlePayment(ctx context.Context, n *protocol.PaymentNotification) error {
	logger.Infow("payment notification",
		logger.F("payment_request_id", n.PaymentRequestID),
		logger.F("payment_id", n.PaymentID),
		logger.F("result", n.Result.String()))
	return nil
}

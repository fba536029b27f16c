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
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sage-x-project/alipay-global-go/pkg/client"
	"github.com/sage-x-project/alipay-global-go/pkg/config"
	"github.com/sage-x-project/alipay-global-go/pkg/logger"
	"github.com/sage-x-project/alipay-global-go/pkg/protocol"
)

func main() {
	fmt.Println("Alipay Global Go - Cashier Payment Example")
	fmt.Println("==========================================")

	// Credentials come from CONFIG_PATH or ALIPAY_* variables only
	fmt.Println("\n1. Loading configuration...")
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Println("   Set CONFIG_PATH to a config file, or ALIPAY_CLIENT_ID,")
		fmt.Println("   ALIPAY_PRIVATE_KEY_FILE and ALIPAY_PUBLIC_KEY_FILE.")
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitWithConfig(cfg.Log)
	defer logger.Close()
	fmt.Printf("   Client ID: %s\n", cfg.ClientID)
	fmt.Printf("   Sandbox:   %v\n", cfg.Sandbox)

	fmt.Println("\n2. Creating client...")
	c, err := client.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	fmt.Println("\n3. Building cashier payment...")
	payment, err := protocol.NewCashierPaymentBuilder().
		WithOrder(fmt.Sprintf("order-%d", time.Now().Unix()), "Example order").
		WithAmount("USD", 1250).
		WithPaymentMethod("ALIPAY_CN").
		WithRedirectURL(envOr("REDIRECT_URL", "https://merchant.example/return")).
		WithNotifyURL(os.Getenv("NOTIFY_URL")).
		Build()
	if err != nil {
		log.Fatalf("Invalid payment: %v", err)
	}
	fmt.Printf("   paymentRequestId: %s\n", payment.PaymentRequestID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("\n4. Sending pay request...")
	resp, err := c.Pay(ctx, payment)
	switch {
	case err == nil:
		fmt.Printf("   Result: %s\n", resp.Result)
		fmt.Printf("   Redirect the buyer to: %s\n", resp.NormalURL)
	case client.IsAmbiguous(err):
		fmt.Printf("   Outcome unknown (%v), inquiring...\n", err)
	case errors.Is(err, client.ErrResultFailed):
		log.Fatalf("Payment refused: %v", err)
	default:
		log.Fatalf("Request failed: %v", err)
	}

	fmt.Println("\n5. Inquiring payment status...")
	inquiry, err := c.InquiryPayment(ctx, &protocol.PaymentInquiry{PaymentRequestID: payment.PaymentRequestID})
	if err != nil {
		log.Fatalf("Inquiry failed: %v", err)
	}
	fmt.Printf("   Status: %s (settled: %v)\n", inquiry.PaymentStatus, inquiry.Settled())

	fmt.Println("\nExample completed!")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

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

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sage-x-project/alipay-global-go/pkg/client"
	"github.com/sage-x-project/alipay-global-go/pkg/config"
	"github.com/sage-x-project/alipay-global-go/pkg/logger"
	"github.com/sage-x-project/alipay-global-go/pkg/protocol"
)

func Pay() *cobra.Command {
	var (
		configPath string
		params     protocol.CashierPaymentParams
		terminal   string
	)

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Create a cashier payment.",
		Long: `Create a cashier payment.

    Client id, keys and gateway come from --config, or from the file named by
    CONFIG_PATH and the ALIPAY_* environment variables. The verified response
    is printed as JSON; send the buyer to normalUrl.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg *config.Config
			var err error
			if configPath != "" {
				cfg, err = config.Load(configPath)
			} else {
				cfg, err = config.FromEnv()
			}
			if err != nil {
				return err
			}
			logger.InitWithConfig(cfg.Log)

			c, err := client.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			params.TerminalType = protocol.TerminalType(terminal)
			resp, err := c.Pay(cmd.Context(), protocol.NewCashierPayment(params))
			if resp != nil {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(resp); encErr != nil {
					return encErr
				}
			}
			if client.IsAmbiguous(err) {
				return fmt.Errorf("%w; inquire with paymentRequestId before retrying", err)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "",
		"configuration file")
	cmd.Flags().StringVar(&params.PaymentRequestID, "request-id", "",
		"paymentRequestId (default random)")
	cmd.Flags().StringVar(&params.ReferenceOrderID, "order-id", "",
		"merchant order id")
	cmd.Flags().StringVar(&params.OrderDescription, "description", "",
		"order description shown to the buyer")
	cmd.Flags().StringVar(&params.Currency, "currency", "USD",
		"ISO 4217 currency")
	cmd.Flags().Int64Var(&params.AmountMinor, "amount", 0,
		"amount in minor units, e.g. 1250 for 12.50")
	cmd.Flags().StringVar(&params.PaymentMethodType, "payment-method", "ALIPAY_CN",
		"paymentMethodType")
	cmd.Flags().StringVar(&params.RedirectURL, "redirect-url", "",
		"where the buyer returns after paying")
	cmd.Flags().StringVar(&params.NotifyURL, "notify-url", "",
		"where the payment result is posted")
	cmd.Flags().StringVar(&params.SettlementCurrency, "settlement-currency", "",
		"settlement currency")
	cmd.Flags().StringVar(&terminal, "terminal", string(protocol.TerminalWeb),
		"terminal type (WEB, WAP, APP, MINI_APP)")
	_ = cmd.MarkFlagRequired("order-id")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("redirect-url")

	return cmd
}

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
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sage-x-project/alipay-global-go/pkg/canonical"
	"github.com/sage-x-project/alipay-global-go/pkg/keys"
	"github.com/sage-x-project/alipay-global-go/pkg/verifier"
)

func Verify() *cobra.Command {
	o := &MessageOptions{}
	var (
		keyFile string
		header  string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a Signature header against a message.",
		Long: `Verify a Signature header against a message.

    --time must be the exact Request-Time or Response-Time header value that
    came with the message. Exits non-zero when the signature does not match.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.Time == "" {
				return fmt.Errorf("--time is required for verification")
			}
			sc, err := o.SigningContext(time.Now())
			if err != nil {
				return err
			}
			body, err := o.ReadBody(cmd.InOrStdin())
			if err != nil {
				return err
			}

			data, err := os.ReadFile(keyFile)
			if err != nil {
				return fmt.Errorf("failed to read public key: %w", err)
			}
			pub, err := keys.ParsePublicKey(data)
			if err != nil {
				return err
			}

			// Verify the time string exactly as given
			sc.Timestamp = o.Time
			err = verifier.NewDefaultVerifier().Verify(cmd.Context(), canonical.Build(sc, body), header,
				keys.StaticPublicKey{Key: pub})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "signature OK")
			return err
		},
	}
	o.AddFlags(cmd)
	cmd.Flags().StringVar(&keyFile, "public-key", "",
		"counterparty public key file (PEM or bare base64)")
	cmd.Flags().StringVar(&header, "signature", "",
		"Signature header value")
	_ = cmd.MarkFlagRequired("public-key")
	_ = cmd.MarkFlagRequired("signature")

	return cmd
}

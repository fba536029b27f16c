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
	"github.com/sage-x-project/alipay-global-go/pkg/signature"
	"github.com/sage-x-project/alipay-global-go/pkg/signer"
)

func Sign() *cobra.Command {
	o := &MessageOptions{}
	var (
		keyFile    string
		keyVersion string
		headers    bool
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message and print the Signature header.",
		Long: `Sign a message and print the Signature header.

    With --headers the Client-Id and Request-Time headers to send alongside
    are printed too, one "Name: value" per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
				return fmt.Errorf("failed to read private key: %w", err)
			}
			priv, err := keys.ParsePrivateKey(data)
			if err != nil {
				return err
			}

			s := signer.NewDefaultSignerWithOptions(&signer.SigningOptions{KeyVersion: keyVersion})
			msg, err := s.SignMessage(cmd.Context(), sc, canonical.RawPayload(body), keys.NewKeyMaterial(priv, nil))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !headers {
				_, err = fmt.Fprintln(out, msg.SignatureHeader())
				return err
			}
			fmt.Fprintf(out, "%s: %s\n", signature.HeaderClientID, msg.Context.ClientID)
			fmt.Fprintf(out, "%s: %s\n", signature.HeaderRequestTime, msg.Context.Timestamp)
			_, err = fmt.Fprintf(out, "%s: %s\n", signature.HeaderSignature, msg.SignatureHeader())
			return err
		},
	}
	o.AddFlags(cmd)
	cmd.Flags().StringVar(&keyFile, "key", "",
		"merchant private key file (PEM or bare base64)")
	cmd.Flags().StringVar(&keyVersion, "key-version", signature.DefaultKeyVersion,
		"keyVersion placed in the header")
	cmd.Flags().BoolVar(&headers, "headers", false,
		"print all three headers")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sage-x-project/alipay-global-go/pkg/keys"
)

func Keygen() *cobra.Command {
	var (
		bits   int
		outDir string
		prefix string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a merchant RSA key pair.",
		Long: `Generate a merchant RSA key pair.

    Writes <prefix>_private.pem (mode 0600) and <prefix>_public.pem to the
    output directory and prints the public key as bare base64, the form the
    Alipay developer console accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			privPath := filepath.Join(outDir, prefix+"_private.pem")
			pubPath := filepath.Join(outDir, prefix+"_public.pem")
			if !force {
				for _, p := range []string{privPath, pubPath} {
					if _, err := os.Stat(p); err == nil {
						return fmt.Errorf("%s already exists, use --force to overwrite", p)
					}
				}
			}

			priv, err := keys.GenerateRSA(bits)
			if err != nil {
				return err
			}

			privPEM, err := keys.MarshalPrivateKeyPEM(priv)
			if err != nil {
				return fmt.Errorf("failed to encode private key: %w", err)
			}
			pubPEM, err := keys.MarshalPublicKeyPEM(&priv.PublicKey)
			if err != nil {
				return fmt.Errorf("failed to encode public key: %w", err)
			}
			pubB64, err := keys.MarshalPublicKeyBase64(&priv.PublicKey)
			if err != nil {
				return fmt.Errorf("failed to encode public key: %w", err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(privPath, privPEM, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", privPath, err)
			}
			if err := os.WriteFile(pubPath, pubPEM, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", pubPath, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "private key: %s\n", privPath)
			fmt.Fprintf(out, "public key:  %s\n", pubPath)
			_, err = fmt.Fprintf(out, "upload this public key to the Alipay console:\n%s\n", pubB64)
			return err
		},
	}
	cmd.Flags().IntVar(&bits, "bits", 2048,
		"RSA key size, at least 2048")
	cmd.Flags().StringVar(&outDir, "out-dir", ".",
		"directory to write the key files to")
	cmd.Flags().StringVar(&prefix, "prefix", "merchant",
		"file name prefix")
	cmd.Flags().BoolVar(&force, "force", false,
		"overwrite existing files")

	return cmd
}

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
	"time"

	"github.com/spf13/cobra"

	"github.com/sage-x-project/alipay-global-go/pkg/canonical"
)

func Canonical() *cobra.Command {
	o := &MessageOptions{}

	cmd := &cobra.Command{
		Use:   "canonical",
		Short: "Print the string that gets signed.",
		Long: `Print the string that gets signed.

    The output is "<METHOD> <PATH>\n<CLIENT_ID>.<TIME>.<BODY>" with no trailing
    newline. Useful for comparing against what a counterparty signed.`,
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

			_, err = fmt.Fprint(cmd.OutOrStdout(), canonical.Build(sc, body))
			return err
		},
	}
	o.AddFlags(cmd)

	return cmd
}

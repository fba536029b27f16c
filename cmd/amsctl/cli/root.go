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

// Package cli implements the amsctl command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// New returns the root command
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amsctl",
		Short: "Alipay Global (AMS) signing and API tool.",
		Long: `Alipay Global (AMS) signing and API tool.

    Builds canonical strings, signs and verifies messages with RSA256, creates
    merchant key pairs and sends cashier payments.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	// Add sub-commands.
	cmd.AddCommand(Canonical())
	cmd.AddCommand(Sign())
	cmd.AddCommand(Verify())
	cmd.AddCommand(Keygen())
	cmd.AddCommand(Pay())
	cmd.AddCommand(Version())
	return cmd
}

// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(bootstrapCmd)
	RootCmd.AddCommand(cleanAllCmd)
	RootCmd.AddCommand(revokeCmd)
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "reset the toolkit state and build CA, server certificate, DH parameters and TLS auth key",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}

		return p.Bootstrap()
	},
}

var cleanAllCmd = &cobra.Command{
	Use:   "clean-all",
	Short: "reset the toolkit working state of an instance",
	Long: `clean-all resets the state the external toolkit keeps for an instance.
Artifacts already copied into the publish tree are left in place; removing
stale published material is an operator task.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}

		return p.CleanAll()
	},
}

var revokeCmd = &cobra.Command{
	Use:   "revoke <common-name>",
	Short: "revoke a client certificate and republish the refreshed CRL",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}

		return p.Revoke(args[0])
	},
}

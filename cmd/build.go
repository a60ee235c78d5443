// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/whatevsz/openvpn-helper/pki"
)

func init() {
	RootCmd.AddCommand(buildCACmd)
	RootCmd.AddCommand(buildServerCmd)
	RootCmd.AddCommand(buildDHCmd)
	RootCmd.AddCommand(buildTLSAuthCmd)
	RootCmd.AddCommand(buildEmptyCRLCmd)
	RootCmd.AddCommand(buildClientCmd)
	RootCmd.AddCommand(buildClientsCmd)
}

var buildCACmd = &cobra.Command{
	Use:   "build-ca",
	Short: "create the certificate authority of an instance",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return buildArtifact(pki.CAArtifact())
	},
}

var buildServerCmd = &cobra.Command{
	Use:   "build-server",
	Short: "issue the server certificate of an instance",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return buildArtifact(pki.ServerArtifact())
	},
}

var buildDHCmd = &cobra.Command{
	Use:   "build-dh",
	Short: "generate the Diffie-Hellman parameters of an instance",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return buildArtifact(pki.DHArtifact())
	},
}

var buildTLSAuthCmd = &cobra.Command{
	Use:   "build-tls-auth",
	Short: "generate the TLS auth (HMAC) key of an instance",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return buildArtifact(pki.TLSAuthArtifact())
	},
}

var buildEmptyCRLCmd = &cobra.Command{
	Use:   "build-empty-crl",
	Short: "sign an empty certificate revocation list for an instance",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return buildArtifact(pki.CRLArtifact())
	},
}

var buildClientCmd = &cobra.Command{
	Use:   "build-client <common-name>",
	Short: "issue a client certificate for the given common name",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return buildArtifact(pki.ClientArtifact(args[0]))
	},
}

var buildClientsCmd = &cobra.Command{
	Use:   "build-clients",
	Short: "issue client certificates for every common name in the instance client manifest",
	Args:  cobra.NoArgs,
	RunE:  buildClientsFn,
}

func buildArtifact(a pki.Artifact) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}

	return p.Build(a)
}

func buildClientsFn(_ *cobra.Command, _ []string) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}

	clients, err := pki.LoadClientManifest(p.Paths().ClientManifestFile())
	if err != nil {
		return err
	}

	for _, cn := range clients {
		if err := p.Build(pki.ClientArtifact(cn)); err != nil {
			return err
		}
	}

	return nil
}

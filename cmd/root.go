// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"os"

	"github.com/google/shlex"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	helpererrors "github.com/whatevsz/openvpn-helper/errors"
	"github.com/whatevsz/openvpn-helper/pki"
	"github.com/whatevsz/openvpn-helper/runner"
)

var (
	debugCount   int
	logLevel     string
	rootDir      string
	publishRoot  string
	instanceName string
	toolArgs     string
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:               "openvpn-helper",
	Short:             "drive an external PKI toolkit and stage OpenVPN certificate material per instance",
	PersistentPreRunE: preRunFn,
}

func init() {
	RootCmd.SilenceUsage = true
	RootCmd.PersistentFlags().CountVarP(&debugCount, "debug", "d", "enable debug mode")
	RootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info",
		"logging level; one of [trace, debug, info, warning, error, fatal]")
	RootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", ".",
		"installation root containing the easy-rsa, vars and keys directories")
	RootCmd.PersistentFlags().StringVarP(&publishRoot, "publish-root", "p", "",
		"root of the publish tree; defaults to the deploy dir under the installation root")
	RootCmd.PersistentFlags().StringVarP(&instanceName, "instance", "i", "",
		"name of the VPN instance to operate on")
	RootCmd.PersistentFlags().StringVarP(&toolArgs, "tool-args", "", "",
		"extra arguments appended to toolkit generation commands")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

func preRunFn(_ *cobra.Command, _ []string) error {
	// setting log level
	switch {
	case debugCount > 0:
		log.SetLevel(log.DebugLevel)
	default:
		l, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}

		log.SetLevel(l)
	}

	// step announcements go to stderr, so that command output stays parseable
	log.SetOutput(os.Stderr)

	return nil
}

// newPipeline resolves the instance layout and assembles the artifact
// pipeline all action commands run on.
func newPipeline() (*pki.Pipeline, error) {
	if instanceName == "" {
		return nil, errors.Wrap(helpererrors.ErrIncorrectInput,
			"an instance name is required, use --instance")
	}

	var extraArgs []string
	if toolArgs != "" {
		var err error
		extraArgs, err = shlex.Split(toolArgs)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse --tool-args")
		}
	}

	paths, err := pki.NewInstancePaths(rootDir, publishRoot, instanceName)
	if err != nil {
		return nil, err
	}

	if err := paths.Resolve(); err != nil {
		return nil, err
	}

	return pki.NewPipeline(paths, pki.NewToolkit(paths, extraArgs), runner.NewHostRunner()), nil
}

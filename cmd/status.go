package cmd

import (
	"os"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/whatevsz/openvpn-helper/pki"
	"github.com/whatevsz/openvpn-helper/runner"
)

func init() {
	RootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "show the lifecycle state of every artifact of an instance",
	Args:  cobra.NoArgs,
	RunE:  statusFn,
}

func statusFn(_ *cobra.Command, _ []string) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}

	if v, err := pki.OpenVPNVersion(runner.NewHostRunner()); err != nil {
		log.Warnf("could not determine openvpn version: %v", err)
	} else {
		log.Infof("openvpn version %s", v)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Artifact", "Generated", "Published"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, s := range p.Status() {
		table.Append([]string{s.Name, yesNo(s.Generated), yesNo(s.Published)})
	}

	table.Render()

	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

package pki

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	gover "github.com/hashicorp/go-version"
	log "github.com/sirupsen/logrus"

	"github.com/whatevsz/openvpn-helper/constants"
	"github.com/whatevsz/openvpn-helper/runner"
	"github.com/whatevsz/openvpn-helper/utils"
)

const (
	pkitoolCmd  = "./pkitool"
	buildDHCmd  = "./build-dh"
	cleanAllCmd = "./clean-all"
	revokeCmd   = "./revoke-full"

	opensslConfigFile = "openssl.cnf"

	openvpnBinary = "openvpn"
	opensslBinary = "openssl"
)

// minOpenVPNVersion is the oldest openvpn release whose --genkey output is
// accepted by the deployments consuming the publish tree.
var minOpenVPNVersion = gover.Must(gover.NewVersion("2.4.0"))

var openvpnVersionRe = regexp.MustCompile(`OpenVPN (\d+\.\d+(\.\d+)?)`)

// Toolkit builds the external command invocations for one instance. Commands
// run from the toolkit root with the instance parameter source merged into
// their environment, mirroring the way the toolkit expects to be driven.
type Toolkit struct {
	paths     *InstancePaths
	extraArgs []string
}

// NewToolkit initializes a Toolkit for the given instance paths. extraArgs
// are appended verbatim to every generation command.
func NewToolkit(paths *InstancePaths, extraArgs []string) *Toolkit {
	return &Toolkit{
		paths:     paths,
		extraArgs: extraArgs,
	}
}

// commandEnv assembles the environment of a toolkit command: the inherited
// process environment, the pipeline-owned variables and the instance
// parameters, in increasing order of precedence.
func (t *Toolkit) commandEnv(vars map[string]string) []string {
	own := map[string]string{
		"EASY_RSA":   t.paths.EasyRSADir(),
		"KEY_DIR":    t.paths.KeysDir(),
		"KEY_CONFIG": filepath.Join(t.paths.EasyRSADir(), opensslConfigFile),
	}

	merged := utils.MergeStringMaps(own, vars)

	return append(os.Environ(), utils.ConvertEnvs(merged)...)
}

func (t *Toolkit) command(vars map[string]string, args ...string) *runner.ExecCmd {
	cmd := runner.NewExecCmdFromSlice(args)
	cmd.Dir = t.paths.EasyRSADir()
	cmd.Env = t.commandEnv(vars)
	return cmd
}

func (t *Toolkit) generationCommand(vars map[string]string, args ...string) *runner.ExecCmd {
	return t.command(vars, append(args, t.extraArgs...)...)
}

// GenerateCmd returns the toolkit invocation that produces the files of the
// given artifact in the working directory.
func (t *Toolkit) GenerateCmd(a Artifact, vars map[string]string) *runner.ExecCmd {
	switch a.Kind {
	case KindCA:
		return t.generationCommand(vars, pkitoolCmd, "--initca")
	case KindServer:
		return t.generationCommand(vars, pkitoolCmd, "--server", constants.ServerCertName)
	case KindDH:
		return t.generationCommand(vars, buildDHCmd)
	case KindTLSAuth:
		return t.generationCommand(vars, openvpnBinary, "--genkey", "--secret",
			t.paths.KeyFile(constants.TLSAuthKeyFile))
	case KindCRL:
		return t.generationCommand(vars, opensslBinary, "ca", "-gencrl",
			"-keyfile", t.paths.KeyFile(constants.CAKeyFile),
			"-cert", t.paths.KeyFile(constants.CACertFile),
			"-out", t.paths.KeyFile(constants.CRLFile),
			"-crldays", strconv.Itoa(constants.CRLValidityDays),
			"-config", filepath.Join(t.paths.EasyRSADir(), opensslConfigFile))
	case KindClient:
		return t.generationCommand(vars, pkitoolCmd, a.CommonName)
	}
	return nil
}

// CleanAllCmd returns the toolkit invocation that resets its working state.
func (t *Toolkit) CleanAllCmd(vars map[string]string) *runner.ExecCmd {
	return t.command(vars, cleanAllCmd)
}

// RevokeCmd returns the toolkit invocation that revokes a client certificate
// and re-signs the CRL.
func (t *Toolkit) RevokeCmd(vars map[string]string, commonName string) *runner.ExecCmd {
	return t.command(vars, revokeCmd, commonName)
}

// OpenVPNVersion runs the openvpn binary and parses its reported version.
func OpenVPNVersion(e runner.Executor) (*gover.Version, error) {
	// openvpn historically exits non-zero for --version, the output is
	// all that matters here
	res, err := e.RunCmd(runner.NewExecCmdFromSlice([]string{openvpnBinary, "--version"}))
	if err != nil {
		return nil, err
	}

	m := openvpnVersionRe.FindStringSubmatch(res.GetStdOutString())
	if m == nil {
		return nil, fmt.Errorf("cannot parse openvpn version from %q", res.GetStdOutString())
	}

	return gover.NewVersion(m[1])
}

// CheckOpenVPNVersion verifies the installed openvpn release is recent
// enough for HMAC key generation. An undeterminable version is logged and
// tolerated, an outdated one is an error.
func CheckOpenVPNVersion(e runner.Executor) error {
	v, err := OpenVPNVersion(e)
	if err != nil {
		log.Warnf("could not determine openvpn version: %v", err)
		return nil
	}

	if v.LessThan(minOpenVPNVersion) {
		return fmt.Errorf("openvpn %s is older than the minimum supported %s",
			v, minOpenVPNVersion)
	}

	log.Debugf("openvpn version %s", v)

	return nil
}

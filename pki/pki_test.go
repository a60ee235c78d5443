package pki

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/whatevsz/openvpn-helper/runner"
)

// testInstance scaffolds an installation root with a toolkit dir, a vars
// file and a publish root for one instance and returns resolved paths.
func testInstance(t *testing.T, instance string) *InstancePaths {
	t.Helper()

	root := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(root, "easy-rsa"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "vars"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "deploy"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vars", instance),
		[]byte("KEY_SIZE=2048\nKEY_COUNTRY=DE\n"), 0o644))

	paths, err := NewInstancePaths(root, "", instance)
	require.NoError(t, err)

	return paths
}

// fakeToolkit implements runner.Executor by fabricating the files the real
// toolkit would produce in the working directory.
type fakeToolkit struct {
	t     *testing.T
	paths *InstancePaths

	// calls records every executed command string in order.
	calls []string
	// failOn makes any command containing the substring exit with code 1.
	failOn string
	// openvpnVersion is the version string reported for openvpn --version.
	openvpnVersion string
}

func newFakeToolkit(t *testing.T, paths *InstancePaths) *fakeToolkit {
	t.Helper()
	return &fakeToolkit{
		t:              t,
		paths:          paths,
		openvpnVersion: "2.5.8",
	}
}

func (f *fakeToolkit) writeKeyFile(name, content string) {
	f.t.Helper()
	err := os.WriteFile(f.paths.KeyFile(name), []byte(content), 0o600)
	require.NoError(f.t, err)
}

func (f *fakeToolkit) RunCmd(cmd *runner.ExecCmd) (*runner.ExecResult, error) {
	cmdStr := cmd.GetCmdString()
	f.calls = append(f.calls, cmdStr)

	res := runner.NewExecResult(cmd)

	if f.failOn != "" && strings.Contains(cmdStr, f.failOn) {
		res.SetReturnCode(1)
		res.SetStdErr([]byte("toolkit failure"))
		return res, nil
	}

	switch {
	case cmdStr == "openvpn --version":
		res.SetStdOut([]byte("OpenVPN " + f.openvpnVersion + " x86_64-pc-linux-gnu\n"))
	case strings.HasPrefix(cmdStr, "./pkitool --initca"):
		f.writeKeyFile("ca.crt", "ca cert")
		f.writeKeyFile("ca.key", "ca key")
	case strings.HasPrefix(cmdStr, "./pkitool --server server"):
		f.writeKeyFile("server.crt", "server cert")
		f.writeKeyFile("server.key", "server key")
	case strings.HasPrefix(cmdStr, "./build-dh"):
		f.writeKeyFile("dh.pem", "dh params")
	case strings.HasPrefix(cmdStr, "openvpn --genkey"):
		f.writeKeyFile("ta.key", "hmac key")
	case strings.HasPrefix(cmdStr, "openssl ca -gencrl"):
		f.writeKeyFile("crl.pem", "empty crl")
	case strings.HasPrefix(cmdStr, "./clean-all"):
		entries, err := os.ReadDir(f.paths.KeysDir())
		require.NoError(f.t, err)
		for _, e := range entries {
			require.NoError(f.t, os.Remove(f.paths.KeyFile(e.Name())))
		}
	case strings.HasPrefix(cmdStr, "./revoke-full "):
		cn := strings.TrimPrefix(cmdStr, "./revoke-full ")
		f.writeKeyFile("crl.pem", "crl with "+cn)
		// the trailing verify reports 23 for a freshly revoked cert
		res.SetReturnCode(23)
	case strings.HasPrefix(cmdStr, "./pkitool "):
		cn := strings.TrimPrefix(cmdStr, "./pkitool ")
		f.writeKeyFile(cn+".crt", cn+" cert")
		f.writeKeyFile(cn+".key", cn+" key")
	default:
		f.t.Fatalf("fake toolkit got unexpected command %q", cmdStr)
	}

	return res, nil
}

// generationCalls returns the recorded calls without the version probe.
func (f *fakeToolkit) generationCalls() []string {
	var calls []string
	for _, c := range f.calls {
		if c == "openvpn --version" {
			continue
		}
		calls = append(calls, c)
	}
	return calls
}

func testPipeline(t *testing.T, instance string) (*Pipeline, *fakeToolkit) {
	t.Helper()

	paths := testInstance(t, instance)
	require.NoError(t, paths.Resolve())

	fake := newFakeToolkit(t, paths)

	return NewPipeline(paths, NewToolkit(paths, nil), fake), fake
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

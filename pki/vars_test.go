package pki

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helpererrors "github.com/whatevsz/openvpn-helper/errors"
)

func TestLoadVars(t *testing.T) {
	paths := testInstance(t, "vpn1")

	vars, err := LoadVars(paths.VarsFile())
	require.NoError(t, err)

	want := map[string]string{
		"KEY_SIZE":    "2048",
		"KEY_COUNTRY": "DE",
	}
	if !cmp.Equal(vars, want) {
		t.Errorf("LoadVars() mismatch:\n%s", cmp.Diff(want, vars))
	}
}

func TestLoadVarsMissingFile(t *testing.T) {
	paths := testInstance(t, "vpn1")
	missing := paths.VarsFile() + ".nope"

	_, err := LoadVars(missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, helpererrors.ErrPathNotFound))
	assert.Contains(t, err.Error(), missing)
}

func TestLoadClientManifest(t *testing.T) {
	type args struct {
		content string
	}
	tests := []struct {
		name    string
		args    args
		want    []string
		wantErr error
	}{
		{
			name: "two clients",
			args: args{
				content: "clients:\n  - alice\n  - bob\n",
			},
			want: []string{"alice", "bob"},
		},
		{
			name: "empty list",
			args: args{
				content: "clients: []\n",
			},
			wantErr: helpererrors.ErrIncorrectInput,
		},
		{
			name: "unknown key",
			args: args{
				content: "client: [alice]\n",
			},
			wantErr: errors.New("failed to parse"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "vpn1.clients.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.args.content), 0o644))

			got, err := LoadClientManifest(path)
			if tt.wantErr != nil {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if !cmp.Equal(got, tt.want) {
				t.Errorf("LoadClientManifest() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadClientManifestMissingFile(t *testing.T) {
	paths := testInstance(t, "vpn1")

	_, err := LoadClientManifest(paths.ClientManifestFile())
	require.Error(t, err)
	assert.True(t, errors.Is(err, helpererrors.ErrPathNotFound))
}

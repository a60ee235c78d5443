package runner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewExecCmdFromString(t *testing.T) {
	type args struct {
		cmd string
	}
	tests := []struct {
		name    string
		args    args
		want    []string
		wantErr bool
	}{
		{
			name: "simple command",
			args: args{
				cmd: "./pkitool --initca",
			},
			want:    []string{"./pkitool", "--initca"},
			wantErr: false,
		},
		{
			name: "quoted argument",
			args: args{
				cmd: `openvpn --genkey --secret "ta key.key"`,
			},
			want:    []string{"openvpn", "--genkey", "--secret", "ta key.key"},
			wantErr: false,
		},
		{
			name: "unbalanced quote",
			args: args{
				cmd: `openssl ca "-gencrl`,
			},
			want:    nil,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewExecCmdFromString(tt.args.cmd)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExecCmdFromString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !cmp.Equal(got.GetCmd(), tt.want) {
				t.Errorf("NewExecCmdFromString() = %v, want %v", got.GetCmd(), tt.want)
			}
		})
	}
}

func TestExecResultString(t *testing.T) {
	res := NewExecResult(NewExecCmdFromSlice([]string{"./build-dh"}))
	res.SetReturnCode(1)
	res.SetStdOut([]byte("generating"))
	res.SetStdErr([]byte("boom"))

	want := "Cmd: ./build-dh\nReturnCode: 1\nStdout: \"generating\"\nStderr: \"boom\""
	if res.String() != want {
		t.Errorf("String() = %q, want %q", res.String(), want)
	}
}

func TestHostRunnerRunCmd(t *testing.T) {
	tests := []struct {
		name   string
		cmd    []string
		wantRC int
	}{
		{
			name:   "zero exit",
			cmd:    []string{"sh", "-c", "exit 0"},
			wantRC: 0,
		},
		{
			name:   "non-zero exit",
			cmd:    []string{"sh", "-c", "exit 3"},
			wantRC: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewHostRunner().RunCmd(NewExecCmdFromSlice(tt.cmd))
			if err != nil {
				t.Fatalf("RunCmd() error = %v", err)
			}
			if res.GetReturnCode() != tt.wantRC {
				t.Errorf("return code = %d, want %d", res.GetReturnCode(), tt.wantRC)
			}
		})
	}
}

func TestHostRunnerCapturesOutput(t *testing.T) {
	res, err := NewHostRunner().RunCmd(NewExecCmdFromSlice([]string{"sh", "-c", "echo out; echo err >&2"}))
	if err != nil {
		t.Fatalf("RunCmd() error = %v", err)
	}
	if res.GetStdOutString() != "out\n" {
		t.Errorf("stdout = %q, want %q", res.GetStdOutString(), "out\n")
	}
	if res.GetStdErrString() != "err\n" {
		t.Errorf("stderr = %q, want %q", res.GetStdErrString(), "err\n")
	}
}

func TestHostRunnerEmptyCommand(t *testing.T) {
	_, err := NewHostRunner().RunCmd(&ExecCmd{})
	if err == nil {
		t.Fatal("expected error for empty command")
	}
}

package runner

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
)

// ExecCmd represents an external toolkit command together with the working
// directory and environment it must run with.
type ExecCmd struct {
	Cmd []string // Cmd is a slice-based representation of a string command.
	Dir string   // Dir is the working directory the command runs in.
	Env []string // Env is the full environment of the command, k=v form.
}

// NewExecCmdFromString creates ExecCmd for a string-based command.
func NewExecCmdFromString(cmd string) (*ExecCmd, error) {
	result := &ExecCmd{}
	if err := result.SetCmd(cmd); err != nil {
		return nil, err
	}
	return result, nil
}

// NewExecCmdFromSlice creates ExecCmd for a command represented as a slice of strings.
func NewExecCmdFromSlice(cmd []string) *ExecCmd {
	return &ExecCmd{
		Cmd: cmd,
	}
}

// SetCmd sets the command that is to be executed.
func (e *ExecCmd) SetCmd(cmd string) error {
	c, err := shlex.Split(cmd)
	if err != nil {
		return err
	}
	e.Cmd = c
	return nil
}

// GetCmd returns the command that is to be executed.
func (e *ExecCmd) GetCmd() []string {
	return e.Cmd
}

// GetCmdString returns the command as a string for e.g. log output purpose.
func (e *ExecCmd) GetCmdString() string {
	return strings.Join(e.Cmd, " ")
}

// ExecResult represents a result of a command execution.
type ExecResult struct {
	Cmd        []string
	ReturnCode int
	Stdout     string
	Stderr     string
}

// NewExecResult initializes an ExecResult for the given command.
func NewExecResult(op *ExecCmd) *ExecResult {
	return &ExecResult{Cmd: op.GetCmd()}
}

func (e *ExecResult) String() string {
	var s strings.Builder

	s.WriteString(fmt.Sprintf("Cmd: %s\nReturnCode: %d", e.GetCmdString(), e.ReturnCode))

	if e.Stdout != "" {
		s.WriteString(fmt.Sprintf("\nStdout: %q", e.Stdout))
	}
	if e.Stderr != "" {
		s.WriteString(fmt.Sprintf("\nStderr: %q", e.Stderr))
	}

	return s.String()
}

// GetCmdString returns the initially parsed cmd as a string for e.g. log output purpose.
func (e *ExecResult) GetCmdString() string {
	return strings.Join(e.Cmd, " ")
}

func (e *ExecResult) GetReturnCode() int {
	return e.ReturnCode
}

func (e *ExecResult) SetReturnCode(rc int) {
	e.ReturnCode = rc
}

func (e *ExecResult) GetStdOutString() string {
	return e.Stdout
}

func (e *ExecResult) GetStdErrString() string {
	return e.Stderr
}

func (e *ExecResult) SetStdOut(data []byte) {
	e.Stdout = string(data)
}

func (e *ExecResult) SetStdErr(data []byte) {
	e.Stderr = string(data)
}

// Executor runs external toolkit commands. The single implementation used at
// runtime is HostRunner; tests substitute a fake.
type Executor interface {
	RunCmd(cmd *ExecCmd) (*ExecResult, error)
}

// HostRunner executes commands as blocking subprocesses on the host.
// Execution is strictly sequential, there is no timeout and no cancellation;
// a hung command hangs the caller.
type HostRunner struct{}

// NewHostRunner initializes a HostRunner.
func NewHostRunner() *HostRunner {
	return &HostRunner{}
}

// RunCmd runs the command and waits for it to complete, capturing both output
// streams. A non-zero exit status is not an error at this level; it is
// reported via the result's return code so that the caller decides fatality.
func (*HostRunner) RunCmd(cmd *ExecCmd) (*ExecResult, error) {
	if len(cmd.Cmd) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	c := exec.Command(cmd.Cmd[0], cmd.Cmd[1:]...) // skipcq: GSC-G204
	c.Dir = cmd.Dir

	c.Env = cmd.Env
	if c.Env == nil {
		c.Env = os.Environ()
	}

	var stdout, stderr strings.Builder
	c.Stdout = &stdout
	c.Stderr = &stderr

	res := NewExecResult(cmd)

	err := c.Run()
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			// the command did not start at all
			return nil, err
		}
		res.SetReturnCode(exitErr.ExitCode())
	}

	res.SetStdOut([]byte(stdout.String()))
	res.SetStdErr([]byte(stderr.String()))

	return res, nil
}

package upload

import (
	"bytes"
	"io"
	"os/exec"
)

// RunOutput is the captured result of one finished tool invocation.
type RunOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes an external tool and blocks until it terminates. A
// non-nil error means the tool could not be started at all; a tool that
// ran and exited non-zero is reported through ExitCode, not the error.
type Runner interface {
	Run(name string, args []string, tee io.Writer) (RunOutput, error)
}

// ExecRunner runs tools as real subprocesses via os/exec.
type ExecRunner struct{}

// Run executes the tool, capturing stdout and stderr separately. When tee
// is non-nil, stdout is additionally streamed to it as the tool produces
// output.
func (ExecRunner) Run(name string, args []string, tee io.Writer) (RunOutput, error) {
	if _, err := exec.LookPath(name); err != nil {
		return RunOutput{}, err
	}

	cmd := exec.Command(name, args...)

	var stdout, stderr bytes.Buffer
	if tee != nil {
		cmd.Stdout = io.MultiWriter(&stdout, tee)
	} else {
		cmd.Stdout = &stdout
	}
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := RunOutput{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, err
	}
	return out, nil
}

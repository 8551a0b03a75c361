//go:build windows

package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ProcessRunner spawns the tool, waits, and reports its exit code.
type ProcessRunner struct{}

// NewProcessRunner returns the platform runner.
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{}
}

// Run implements Runner.
func (ProcessRunner) Run(_ context.Context, binary string, args, env []string) (int, error) {
	cmd := exec.Command(binary, args...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return 1, nil
	}
	return 1, fmt.Errorf("running %s: %w", binary, err)
}

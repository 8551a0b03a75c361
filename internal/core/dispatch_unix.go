//go:build !windows

package core

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// ProcessRunner replaces the current process with the tool, so signals,
// stdio and the exit status belong to the tool itself.
type ProcessRunner struct{}

// NewProcessRunner returns the platform runner.
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{}
}

// Run implements Runner. It only returns if exec fails.
func (ProcessRunner) Run(_ context.Context, binary string, args, env []string) (int, error) {
	argv := append([]string{binary}, args...)
	if err := unix.Exec(binary, argv, env); err != nil {
		return 1, fmt.Errorf("executing %s: %w", binary, err)
	}
	return 0, nil
}

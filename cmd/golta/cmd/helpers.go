package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/golta-dev/golta/internal/core"
	"github.com/golta-dev/golta/internal/tui"
	"github.com/spf13/cobra"
)

// workingDir returns the directory versions are resolved from.
func workingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// warnf prints a non-fatal problem to stderr.
func warnf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, tui.WarningStyle.Render("Warning: "+fmt.Sprintf(format, args...)))
}

// toolArg parses an optional tool name argument, defaulting to go.
func toolArg(args []string) (core.Tool, error) {
	if len(args) == 0 {
		return core.LookupTool(core.GoToolName)
	}
	return core.LookupTool(strings.TrimSpace(args[0]))
}

// installedVersion returns the installed directory name for version,
// accepting "0.16.0" for an auxiliary tool installed as "v0.16.0".
func installedVersion(registry *core.LocalRegistry, t core.Tool, version string) (string, bool) {
	if registry.IsInstalled(t, version) {
		return version, true
	}
	if t.IsAuxiliary() && !strings.HasPrefix(version, "v") && registry.IsInstalled(t, "v"+version) {
		return "v" + version, true
	}
	return "", false
}

// exitWith converts a child exit code into an error main understands.
func exitWith(code int, err error) error {
	if err != nil {
		return err
	}
	if code != 0 {
		return &core.ExitError{Code: code}
	}
	return nil
}

// completeToolName offers the managed tool names for the first argument.
func completeToolName(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return core.ToolNames(), cobra.ShellCompDirectiveNoFileComp
}

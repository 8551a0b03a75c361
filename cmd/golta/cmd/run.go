package cmd

import (
	"github.com/golta-dev/golta/internal/core"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <tool>@<version> [args...]",
	Short: "Run a command with a one-time tool version, ignoring the current configuration",
	Example: `  golta run go@1.21.0 version
  golta run go@1.22.3 test ./...`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, version, err := core.ParseToolVersion(args[0])
		if err != nil {
			return err
		}

		d, err := newDeps()
		if err != nil {
			return err
		}
		defer d.Close()

		dir, err := workingDir()
		if err != nil {
			return err
		}

		return exitWith(d.Dispatcher().Dispatch(cmd.Context(), core.DispatchRequest{
			Tool:    t,
			Version: version,
			Dir:     dir,
			Args:    args[1:],
		}))
	},
}

func init() {
	// Everything after the tool spec belongs to the tool.
	runCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(runCmd)
}

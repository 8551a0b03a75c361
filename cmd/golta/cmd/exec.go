package cmd

import (
	"github.com/golta-dev/golta/internal/core"
	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <tool> [args...]",
	Short: "Execute a command using the currently active tool version",
	Example: `  golta exec go build ./...
  golta exec gopls version`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := core.LookupTool(args[0])
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
			Tool: t,
			Dir:  dir,
			Args: args[1:],
		}))
	},
}

func init() {
	execCmd.ValidArgsFunction = completeToolName
	execCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(execCmd)
}

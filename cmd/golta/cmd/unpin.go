package cmd

import (
	"fmt"
	"os"

	"github.com/golta-dev/golta/internal/core"
	"github.com/spf13/cobra"
)

var unpinCmd = &cobra.Command{
	Use:   "unpin [<tool>]",
	Short: "Unpin tool versions from the current project",
	Long: `Remove one tool from .golta.json in the current directory, or delete the
file entirely when no tool is named.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := workingDir()
		if err != nil {
			return err
		}
		pins := core.NewPinStore()

		if len(args) == 0 {
			removed, err := pins.RemoveFile(dir)
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintln(os.Stdout, "Removed pinned versions for this project.")
			} else {
				fmt.Fprintln(os.Stdout, "No versions are pinned in this directory.")
			}
			return nil
		}

		t, err := toolArg(args)
		if err != nil {
			return err
		}
		removed, err := pins.Remove(dir, t.Name)
		if err != nil {
			return err
		}
		if removed {
			fmt.Fprintf(os.Stdout, "Removed pinned %s version for this project.\n", t.Name)
		} else {
			fmt.Fprintf(os.Stdout, "No %s version is pinned in this directory.\n", t.Name)
		}
		return nil
	},
}

func init() {
	unpinCmd.ValidArgsFunction = completeToolName
	rootCmd.AddCommand(unpinCmd)
}

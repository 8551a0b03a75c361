package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/golta-dev/golta/internal/core"
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:     "uninstall <tool>@<version>",
	Aliases: []string{"un"},
	Short:   "Uninstall a specific version of a tool",
	Long: `Remove an installed tool version.

The global default version is not removed unless --clear-default is given.
Pins that name the version are reported but left untouched.`,
	Args: cobra.ExactArgs(1),
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

		clearDefault, _ := cmd.Flags().GetBool("clear-default")
		result, err := d.Uninstaller.Uninstall(t, version, core.UninstallOptions{
			Dir:          dir,
			ClearDefault: clearDefault,
		})
		if err != nil {
			var notInstalled *core.NotInstalledError
			if errors.As(err, &notInstalled) {
				return fmt.Errorf("%s %s is not installed", notInstalled.Tool, notInstalled.Version)
			}
			return err
		}

		for _, w := range result.Warnings {
			warnf("%s", w)
		}
		fmt.Fprintf(os.Stdout, "%s %s has been uninstalled.\n", result.Tool, result.Version)
		return nil
	},
}

func init() {
	uninstallCmd.Flags().Bool("clear-default", false, "Clear the global default if it points at this version")
	rootCmd.AddCommand(uninstallCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/golta-dev/golta/internal/core"
	"github.com/spf13/cobra"
)

var defaultCmd = &cobra.Command{
	Use:   "default [<tool>@<version>]",
	Short: "Set or show the global default version for a tool",
	Long: `Set the global default version for a tool. The default applies wherever
no pin file or go.mod selects a version.

Without arguments, print the current defaults.`,
	Example: `  golta default go@1.22.3
  golta default
  golta default clear go`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		defer d.Close()

		if len(args) == 0 {
			defaults, err := d.Defaults.All()
			if err != nil {
				return err
			}
			if len(defaults) == 0 {
				fmt.Fprintln(os.Stdout, "No default versions set.")
				return nil
			}
			for _, name := range core.ToolNames() {
				if v, ok := defaults[name]; ok {
					fmt.Fprintf(os.Stdout, "%s: %s\n", name, v)
				}
			}
			return nil
		}

		t, version, err := core.ParseToolVersion(args[0])
		if err != nil {
			return err
		}
		installed, ok := installedVersion(d.Registry, t, version)
		if !ok {
			return &core.NotInstalledError{Tool: t.Name, Version: version}
		}
		if err := d.Defaults.Set(t.Name, installed); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Set %s default version to %s\n", t.Name, installed)
		return nil
	},
}

var defaultClearCmd = &cobra.Command{
	Use:   "clear [<tool>]",
	Short: "Clear the global default version (go unless a tool is named)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := toolArg(args)
		if err != nil {
			return err
		}

		d, err := newDeps()
		if err != nil {
			return err
		}
		defer d.Close()

		cleared, err := d.Defaults.Clear(t.Name)
		if err != nil {
			return err
		}
		if cleared {
			fmt.Fprintf(os.Stdout, "Cleared global default %s version.\n", t.Name)
		} else {
			fmt.Fprintf(os.Stdout, "No global default %s version is set.\n", t.Name)
		}
		return nil
	},
}

func init() {
	defaultClearCmd.ValidArgsFunction = completeToolName
	defaultCmd.AddCommand(defaultClearCmd)
	rootCmd.AddCommand(defaultCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/golta-dev/golta/internal/core"
	"github.com/spf13/cobra"
)

var whichCmd = &cobra.Command{
	Use:   "which <tool>",
	Short: "Display the full path to the currently active tool executable",
	Args:  cobra.ExactArgs(1),
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

		active, err := d.Resolver.Resolve(t.Name, dir)
		if err != nil {
			return err
		}
		version, ok, err := d.Registry.Find(t, active.Version)
		if err != nil {
			return err
		}
		if !ok {
			if v, found := installedVersion(d.Registry, t, active.Version); found {
				version, ok = v, true
			}
		}
		if !ok {
			return &core.NotInstalledError{Tool: t.Name, Version: active.Version}
		}

		fmt.Fprintln(os.Stdout, d.Registry.BinaryPath(t, version))
		return nil
	},
}

func init() {
	whichCmd.ValidArgsFunction = completeToolName
	rootCmd.AddCommand(whichCmd)
}

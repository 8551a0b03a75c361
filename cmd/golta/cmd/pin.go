package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/golta-dev/golta/internal/core"
	"github.com/golta-dev/golta/internal/tui"
	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin [<tool>@<version>]",
	Short: "Pin a tool version to the current project (.golta.json)",
	Long: `Record a tool version in .golta.json in the current directory. The pin
applies to this directory and everything below it. Other pinned tools and
comments in the file are preserved.

Without an argument, show the versions pinned in this directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return showPins()
		}
		t, version, err := core.ParseToolVersion(args[0])
		if err != nil {
			return err
		}

		d, err := newDeps()
		if err != nil {
			return err
		}
		defer d.Close()

		installed, ok := installedVersion(d.Registry, t, version)
		if !ok {
			return &core.NotInstalledError{Tool: t.Name, Version: version}
		}

		dir, err := workingDir()
		if err != nil {
			return err
		}
		if err := d.Pins.Set(dir, t.Name, installed); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Pinned %s version %s to %s\n", t.Name, installed, d.Pins.Path(dir))
		return nil
	},
}

func showPins() error {
	dir, err := workingDir()
	if err != nil {
		return err
	}
	pins := core.NewPinStore()
	versions, ok, err := pins.Read(dir)
	if err != nil {
		return err
	}
	if !ok || len(versions) == 0 {
		fmt.Fprintln(os.Stdout, "No versions are pinned in this directory.")
		return nil
	}

	tools := make([]string, 0, len(versions))
	for name := range versions {
		tools = append(tools, name)
	}
	sort.Strings(tools)

	fmt.Fprintln(os.Stdout, tui.HeadingStyle.Render("Pinned in "+pins.Path(dir)+":"))
	for _, name := range tools {
		fmt.Fprintf(os.Stdout, "  %s %s\n", name, versions[name])
	}
	return nil
}

func init() {
	rootCmd.AddCommand(pinCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/golta-dev/golta/internal/core"
	"github.com/golta-dev/golta/internal/tui"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:     "install <tool>[@<version>]",
	Aliases: []string{"i", "fetch"},
	Short:   "Download and install a tool version (e.g. go@1.23.0)",
	Long: `Download and install a tool version.

The version may be exact (go@1.22.3), a release line (go@1.22), or "latest".
Without a version, go installs the version required by the nearest go.mod,
or the latest stable release when there is none. "go@mod" requires a go.mod.

Auxiliary tools (gopls, dlv, air, staticcheck, golangci-lint) are built
with go install using the active Go version.`,
	Example: `  golta install go@1.22.3
  golta install go@latest
  golta install gopls@v0.16.0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, spec, err := core.ParseToolSpec(args[0])
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

		result, err := d.Installer.Install(cmd.Context(), t, spec, dir)
		if err != nil {
			return err
		}

		if result.AlreadyInstalled {
			fmt.Fprintf(os.Stdout, "%s %s is already installed.\n", t.Name, result.Version)
		} else {
			fmt.Fprintf(os.Stdout, "%s installed to %s\n",
				tui.SuccessStyle.Render(t.Name+" "+result.Version), result.Path)
		}

		setDefault, _ := cmd.Flags().GetBool("default")
		current, err := d.Defaults.Get(t.Name)
		if err != nil {
			return err
		}
		switch {
		case setDefault:
			if err := d.Defaults.Set(t.Name, result.Version); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Set %s default version to %s\n", t.Name, result.Version)
		case current == "":
			fmt.Fprintf(os.Stdout, "Make it the default with `golta default %s@%s`\n", t.Name, result.Version)
		}
		return nil
	},
}

func init() {
	installCmd.Flags().Bool("default", false, "Also set the installed version as the global default")
	rootCmd.AddCommand(installCmd)
}

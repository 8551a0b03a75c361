package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/golta-dev/golta/internal/core"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create tool shims and show how to put them on PATH",
	Long: `Create one shim per managed tool in ~/.golta/bin. Each shim resolves the
active version and runs it, so plain "go build" picks the project's version
once the directory is on PATH.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := core.ResolvePaths()
		if err != nil {
			return err
		}

		cfg := core.NewConfigManager(paths)
		wrote, err := cfg.WriteDefaults()
		if err != nil {
			return err
		}
		if wrote {
			fmt.Fprintf(os.Stdout, "Wrote default settings to %s\n", cfg.ConfigPath())
		}

		shim, err := core.LocateShim()
		if err != nil {
			return fmt.Errorf("%w. Install golta-shim next to golta and run setup again", err)
		}

		created, err := core.InstallShims(paths, shim)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Configuring your shell for golta...")
		for _, path := range created {
			fmt.Fprintf(os.Stdout, "  %s\n", path)
		}

		if runtime.GOOS == "windows" {
			fmt.Fprintln(os.Stdout, "\nAdd the following directory to your user PATH environment variable:")
			fmt.Fprintf(os.Stdout, "  %s\n", paths.BinDir)
			fmt.Fprintln(os.Stdout, "\nRestart your terminal for the change to take effect.")
		} else {
			fmt.Fprintln(os.Stdout, "\nAdd the following line to your shell's startup file (e.g. ~/.bashrc, ~/.zshrc):")
			fmt.Fprintf(os.Stdout, "\n  export PATH=\"%s:$PATH\"\n", paths.BinDir)
			fmt.Fprintln(os.Stdout, "\nThen restart your terminal or source the file.")
		}
		fmt.Fprintln(os.Stdout, "\nSetup complete.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

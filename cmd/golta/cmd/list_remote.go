package cmd

import (
	"fmt"
	"os"

	"github.com/golta-dev/golta/internal/core"
	"github.com/golta-dev/golta/internal/tui"
	"github.com/spf13/cobra"
)

var listRemoteCmd = &cobra.Command{
	Use:   "list-remote [<tool>]",
	Short: "List versions available to install (go unless a tool is named)",
	Long: `List published versions, newest first. The last fetched list is cached and
shown when the network is unavailable.`,
	Args: cobra.MaximumNArgs(1),
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

		result, err := d.Catalog.List(cmd.Context(), t)
		if err != nil {
			return err
		}

		for _, w := range result.Warnings {
			warnf("%s", w)
		}
		if result.FromCache && !result.Degraded {
			fmt.Fprintf(os.Stdout, "Latest %s versions unchanged; showing cached results.\n", t.Name)
		}

		stableOnly, _ := cmd.Flags().GetBool("stable")
		renderVersions(result.Versions, stableOnly)
		fmt.Fprintf(os.Stdout, "\nUse `golta install %s@<version>` to install a specific version.\n", t.Name)
		return nil
	},
}

func renderVersions(versions []core.RemoteVersionInfo, stableOnly bool) {
	fmt.Fprintln(os.Stdout, "\n"+tui.HeadingStyle.Render("Available versions:"))
	for _, v := range versions {
		switch {
		case v.Stable:
			fmt.Fprintf(os.Stdout, "  %s\n", v.Version)
		case !stableOnly:
			fmt.Fprintf(os.Stdout, "  %s %s\n", v.Version, tui.MutedStyle.Render("(unstable)"))
		}
	}
}

func init() {
	listRemoteCmd.ValidArgsFunction = completeToolName
	listRemoteCmd.Flags().Bool("stable", false, "Hide prereleases")
	rootCmd.AddCommand(listRemoteCmd)
}

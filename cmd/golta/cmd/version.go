package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tcnksm/go-latest"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "golta %s (commit: %s, built: %s)\n", Version, Commit, Date)

		check, _ := cmd.Flags().GetBool("check")
		if check {
			checkForUpdate(Version)
		}
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}

// checkForUpdate reports a newer golta release. Failures are only logged
// as a warning since the check is best effort.
func checkForUpdate(current string) {
	githubTag := &latest.GithubTag{
		Owner:      "golta-dev",
		Repository: "golta",
	}

	res, err := latest.Check(githubTag, current)
	if err != nil {
		warnf("could not check for updates: %v", err)
		return
	}
	if res.Outdated {
		fmt.Fprintf(os.Stdout, "A new version is available: %s (you have %s)\n", res.Current, current)
		fmt.Fprintln(os.Stdout, "Download it from https://github.com/golta-dev/golta/releases")
		return
	}
	fmt.Fprintf(os.Stdout, "You are using the latest version: %s\n", current)
}

package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "golta",
	Short: "A fast, simple Go version manager",
	Long: `golta installs Go releases and Go tools side by side and runs the
right version for each project.

The active version comes from the nearest .golta.json pin, then the
go.mod toolchain or go directive, then the global default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Execute runs the root command. Interrupts cancel in-flight network work.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

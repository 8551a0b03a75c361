package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golta-dev/golta/internal/core"
	"github.com/golta-dev/golta/internal/tui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list [<tool>]",
	Aliases: []string{"ls"},
	Short:   "List installed versions (go unless a tool is named)",
	Long: `List installed versions sorted oldest to newest. The active version is
marked with *, and the global default and project pin are tagged.`,
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

		dir, err := workingDir()
		if err != nil {
			return err
		}

		installed, err := d.Registry.List(t)
		if err != nil {
			return err
		}
		defaultVersion, err := d.Defaults.Get(t.Name)
		if err != nil {
			return err
		}

		var pinnedVersion string
		if pin, ok, err := d.Resolver.FindPin(t.Name, dir); err != nil {
			warnf("%v", err)
		} else if ok {
			pinnedVersion = pin.Version
		}

		var activeVersion string
		if active, err := d.Resolver.Resolve(t.Name, dir); err == nil {
			if v, ok, err := d.Registry.Find(t, active.Version); err == nil && ok {
				activeVersion = v
			}
		} else {
			var notActive *core.NotActiveError
			if !errors.As(err, &notActive) {
				warnf("%v", err)
			}
		}

		fmt.Fprintln(os.Stdout, tui.HeadingStyle.Render(fmt.Sprintf("Installed %s versions:", t.Name)))
		if len(installed) == 0 {
			fmt.Fprintf(os.Stdout, "  No %s versions installed\n", t.Name)
			return nil
		}

		for _, iv := range installed {
			var tags []string
			if iv.Version == defaultVersion {
				tags = append(tags, "default")
			}
			if iv.Version == pinnedVersion {
				tags = append(tags, "pinned")
			}

			line := "  " + iv.Version
			if iv.Version == activeVersion {
				line = tui.ActiveStyle.Render("* " + iv.Version)
			}
			if len(tags) > 0 {
				line += " " + tui.MutedStyle.Render("("+strings.Join(tags, ", ")+")")
			}
			fmt.Fprintln(os.Stdout, line)
		}
		return nil
	},
}

func init() {
	listCmd.ValidArgsFunction = completeToolName
	rootCmd.AddCommand(listCmd)
}

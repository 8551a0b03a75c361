// Command golta-shim stands in for a managed tool on PATH. Installed as
// "go" (or "gopls", "dlv", ...), it resolves the active version for the
// working directory and runs it with the same arguments.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/golta-dev/golta/internal/app"
	"github.com/golta-dev/golta/internal/core"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	t, err := core.LookupTool(toolName(argv[0]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "golta: %v\n", err)
		return 1
	}

	a, err := app.New(Version, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "golta: %v\n", err)
		return 1
	}
	defer a.Close()

	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "golta: getting current directory: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	code, err := a.Dispatcher().Dispatch(ctx, core.DispatchRequest{
		Tool: t,
		Dir:  dir,
		Args: argv[1:],
	})
	if err != nil {
		var exitErr *core.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintf(os.Stderr, "golta: %v\n", err)
		return 1
	}
	return code
}

// toolName derives the tool from the name the shim was invoked as.
func toolName(arg0 string) string {
	name := strings.TrimSuffix(filepath.Base(arg0), ".exe")
	if name == core.ShimBinaryName {
		return core.GoToolName
	}
	return name
}

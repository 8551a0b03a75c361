package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/golta-dev/golta/cmd/golta/cmd"
	"github.com/golta-dev/golta/internal/core"
	"github.com/golta-dev/golta/internal/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var exitErr *core.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", tui.ErrorStyle.Render("Error:"), err)
	return 1
}

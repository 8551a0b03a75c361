package cmd

import (
	"fmt"

	"github.com/golta-dev/golta/internal/app"
)

// newDeps creates shared dependencies. Called lazily by commands that need them.
func newDeps() (*app.App, error) {
	a, err := app.New(Version, verbose)
	if err != nil {
		return nil, fmt.Errorf("initializing golta: %w", err)
	}
	return a, nil
}

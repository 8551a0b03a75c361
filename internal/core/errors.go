package core

import (
	"errors"
	"fmt"
)

// ErrNoStableVersion is returned when "latest" is requested but the catalog
// has no stable entry.
var ErrNoStableVersion = errors.New("could not find a stable version in the catalog")

// UserInputError reports a malformed tool spec or an unsupported tool.
type UserInputError struct {
	Msg string
}

func (e *UserInputError) Error() string { return e.Msg }

func userInputf(format string, args ...any) error {
	return &UserInputError{Msg: fmt.Sprintf(format, args...)}
}

// NotInstalledError reports a tool version missing from disk.
type NotInstalledError struct {
	Tool    string
	Version string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("%s %s is not installed. Install it first with `golta install %s@%s`",
		e.Tool, e.Version, e.Tool, e.Version)
}

// NotActiveError reports that no pin, manifest directive, or default applies.
type NotActiveError struct {
	Tool string
}

func (e *NotActiveError) Error() string {
	return fmt.Sprintf("no %s version is active. Use `golta pin %s@<version>` in your project, or `golta default %s@<version>` globally",
		e.Tool, e.Tool, e.Tool)
}

// VersionNotFoundError reports a spec with no matching catalog entry.
type VersionNotFoundError struct {
	Tool string
	Spec string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("%s version %q not found. Pick a version from `golta list-remote %s`", e.Tool, e.Spec, e.Tool)
}

// FetchError wraps a network failure while talking to a remote endpoint.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// PartialStateError reports a destination that already exists where a fresh
// one was expected. It is never resolved by overwriting.
type PartialStateError struct {
	Path string
}

func (e *PartialStateError) Error() string {
	return fmt.Sprintf("destination %s already exists; remove it or run `golta uninstall` before installing again", e.Path)
}

// DefaultInUseError is returned when uninstalling the global default version.
type DefaultInUseError struct {
	Tool    string
	Version string
}

func (e *DefaultInUseError) Error() string {
	return fmt.Sprintf("%s %s is the global default. Run `golta default clear %s` first, or pass --clear-default",
		e.Tool, e.Version, e.Tool)
}

// ExitError carries a dispatched child's non-zero exit code up to main.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

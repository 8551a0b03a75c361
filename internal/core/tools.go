package core

import (
	"runtime"
	"sort"
	"strings"
)

// GoToolName is the primary managed toolchain.
const GoToolName = "go"

// Tool describes a managed executable.
type Tool struct {
	Name    string
	Package string // go install path; empty for the Go distribution itself
	Module  string // module path queried on the package proxy
}

// Binary returns the executable file name for the host platform.
func (t Tool) Binary() string {
	if runtime.GOOS == "windows" {
		return t.Name + ".exe"
	}
	return t.Name
}

// IsAuxiliary reports whether the tool is installed with `go install`
// rather than from a distribution archive.
func (t Tool) IsAuxiliary() bool {
	return t.Name != GoToolName
}

var knownTools = map[string]Tool{
	GoToolName: {Name: GoToolName},
	"gopls": {
		Name:    "gopls",
		Package: "golang.org/x/tools/gopls",
		Module:  "golang.org/x/tools/gopls",
	},
	"dlv": {
		Name:    "dlv",
		Package: "github.com/go-delve/delve/cmd/dlv",
		Module:  "github.com/go-delve/delve",
	},
	"air": {
		Name:    "air",
		Package: "github.com/air-verse/air",
		Module:  "github.com/air-verse/air",
	},
	"staticcheck": {
		Name:    "staticcheck",
		Package: "honnef.co/go/tools/cmd/staticcheck",
		Module:  "honnef.co/go/tools",
	},
	"golangci-lint": {
		Name:    "golangci-lint",
		Package: "github.com/golangci/golangci-lint/cmd/golangci-lint",
		Module:  "github.com/golangci/golangci-lint",
	},
}

// ToolNames returns the supported tool names, sorted.
func ToolNames() []string {
	names := make([]string, 0, len(knownTools))
	for name := range knownTools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupTool returns the definition for a tool name.
func LookupTool(name string) (Tool, error) {
	t, ok := knownTools[name]
	if !ok {
		return Tool{}, userInputf("unknown tool %q. Supported tools: %s", name, strings.Join(ToolNames(), ", "))
	}
	return t, nil
}

// ParseToolSpec splits "tool@version" into its parts. A bare tool name
// returns an empty version.
func ParseToolSpec(input string) (Tool, string, error) {
	input = strings.TrimSpace(input)
	name, version, hasAt := strings.Cut(input, "@")
	if name == "" {
		return Tool{}, "", userInputf("invalid format %q. Use <tool>@<version>", input)
	}
	if hasAt && version == "" {
		return Tool{}, "", userInputf("invalid format %q: missing version after '@'", input)
	}
	t, err := LookupTool(name)
	if err != nil {
		return Tool{}, "", err
	}
	return t, version, nil
}

// ParseToolVersion is like ParseToolSpec but requires a version.
func ParseToolVersion(input string) (Tool, string, error) {
	t, version, err := ParseToolSpec(input)
	if err != nil {
		return Tool{}, "", err
	}
	if version == "" {
		return Tool{}, "", userInputf("invalid format %q. Use %s@<version>", input, t.Name)
	}
	return t, CleanVersion(t.Name, version), nil
}

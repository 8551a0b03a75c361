package main

import "testing"

func TestToolName(t *testing.T) {
	tests := []struct {
		arg0 string
		want string
	}{
		{"go", "go"},
		{"/home/me/.golta/bin/go", "go"},
		{"gopls", "gopls"},
		{"/usr/local/bin/golangci-lint", "golangci-lint"},
		{"golta-shim", "go"},
		{"/opt/golta/golta-shim", "go"},
	}
	for _, tt := range tests {
		if got := toolName(tt.arg0); got != tt.want {
			t.Errorf("toolName(%q) = %q, want %q", tt.arg0, got, tt.want)
		}
	}
}

package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCleanVersion(t *testing.T) {
	tests := []struct {
		tool string
		in   string
		want string
	}{
		{"go", "1.22.3", "1.22.3"},
		{"go", " go1.22.3\n", "1.22.3"},
		{"go", "go@1.22.3", "1.22.3"},
		{"gopls", "gopls@v0.16.0", "v0.16.0"},
		{"gopls", "v0.16.0", "v0.16.0"},
		{"go", "latest", "latest"},
	}
	for _, tt := range tests {
		if got := CleanVersion(tt.tool, tt.in); got != tt.want {
			t.Errorf("CleanVersion(%q, %q) = %q, want %q", tt.tool, tt.in, got, tt.want)
		}
	}
}

func TestSortVersions(t *testing.T) {
	got := []string{"1.22.0", "1.9", "1.21rc2", "1.21.0", "nightly", "1.10.1", "1.21beta1"}
	SortVersions(got)

	want := []string{"1.9", "1.10.1", "1.21beta1", "1.21rc2", "1.21.0", "1.22.0", "nightly"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortVersions mismatch (-want +got):\n%s", diff)
	}
}

func TestIsPartialSpec(t *testing.T) {
	tests := map[string]bool{
		"1":       true,
		"1.22":    true,
		"v0.16":   true,
		"1.22.3":  false,
		"1.22rc1": false,
		"latest":  false,
	}
	for spec, want := range tests {
		if got := IsPartialSpec(spec); got != want {
			t.Errorf("IsPartialSpec(%q) = %v, want %v", spec, got, want)
		}
	}
}

func TestMatchPartial(t *testing.T) {
	candidates := []string{"1.21.9", "1.22.0", "1.22.5", "1.23rc1", "1.22.10"}
	tests := []struct {
		spec   string
		want   string
		wantOK bool
	}{
		{"1.22", "1.22.10", true},
		{"1.21", "1.21.9", true},
		{"1.23", "", false},
		{"1.20", "", false},
	}
	for _, tt := range tests {
		got, ok := matchPartial(tt.spec, candidates)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("matchPartial(%q) = (%q, %v), want (%q, %v)", tt.spec, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIsStableVersion(t *testing.T) {
	tests := map[string]bool{
		"v0.16.0":       true,
		"v0.16.0-pre.1": false,
		"1.22.3":        true,
		"1.23rc1":       false,
		"garbage":       false,
	}
	for v, want := range tests {
		if got := isStableVersion(v); got != want {
			t.Errorf("isStableVersion(%q) = %v, want %v", v, got, want)
		}
	}
}

package core

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func newTestResolver(t *testing.T) (*VersionResolver, *DefaultStore, string) {
	t.Helper()
	root := t.TempDir()
	paths := NewPaths(filepath.Join(root, "home", ".golta"))
	defaults := NewDefaultStore(paths)
	projects := filepath.Join(root, "projects")
	return NewVersionResolver(NewPinStore(), defaults, nil), defaults, projects
}

func TestResolve_Precedence(t *testing.T) {
	r, defaults, projects := newTestResolver(t)
	project := filepath.Join(projects, "app")
	sub := filepath.Join(project, "cmd", "server")
	writeFile(t, filepath.Join(sub, "main.go"), "package main\n")

	// Nothing configured.
	_, err := r.Resolve("go", sub)
	var notActive *NotActiveError
	if !errors.As(err, &notActive) {
		t.Fatalf("Resolve() error = %v, want NotActiveError", err)
	}
	if !strings.Contains(err.Error(), "golta pin go@<version>") || !strings.Contains(err.Error(), "golta default go@<version>") {
		t.Errorf("error should name both remediation commands: %v", err)
	}

	// Default only.
	if err := defaults.Set("go", "1.20.1"); err != nil {
		t.Fatal(err)
	}
	assertActive(t, r, "go", sub, "1.20.1", SourceDefault)

	// go.mod beats the default.
	writeFile(t, filepath.Join(project, ManifestFileName), "module example.com/app\n\ngo 1.21.0\n")
	assertActive(t, r, "go", sub, "1.21.0", SourceManifest)

	// A pin beats go.mod, even in the same directory.
	if err := NewPinStore().Set(project, "go", "1.22.3"); err != nil {
		t.Fatal(err)
	}
	assertActive(t, r, "go", sub, "1.22.3", SourcePin)

	// A nearer go.mod wins over a farther pin.
	writeFile(t, filepath.Join(sub, ManifestFileName), "module example.com/app/server\n\ngo 1.23.0\n")
	assertActive(t, r, "go", sub, "1.23.0", SourceManifest)
}

func TestResolve_PinBoundary(t *testing.T) {
	r, defaults, projects := newTestResolver(t)
	outer := filepath.Join(projects, "mono")
	inner := filepath.Join(outer, "svc")
	writeFile(t, filepath.Join(outer, ManifestFileName), "module example.com/mono\n\ngo 1.21.0\n")
	// The inner pin file names only gopls; it still ends the upward walk.
	writeFile(t, filepath.Join(inner, PinFileName), `{"gopls": "v0.16.0"}`)
	if err := defaults.Set("go", "1.20.1"); err != nil {
		t.Fatal(err)
	}

	assertActive(t, r, "go", inner, "1.20.1", SourceDefault)

	// The same directory's go.mod is still consulted.
	writeFile(t, filepath.Join(inner, ManifestFileName), "module example.com/mono/svc\n\ngo 1.22.0\n")
	assertActive(t, r, "go", inner, "1.22.0", SourceManifest)
}

func TestResolve_UnparsableManifest(t *testing.T) {
	r, defaults, projects := newTestResolver(t)
	project := filepath.Join(projects, "app")
	if err := defaults.Set("go", "1.20.1"); err != nil {
		t.Fatal(err)
	}

	// A blank go line counts as no directive.
	writeFile(t, filepath.Join(project, ManifestFileName), "module x\n\ngo\n")
	assertActive(t, r, "go", project, "1.20.1", SourceDefault)

	// A bad require line does not hide the go line.
	writeFile(t, filepath.Join(project, ManifestFileName), "module x\n\ngo 1.22.3\n\nrequire example.com/dep\n")
	assertActive(t, r, "go", project, "1.22.3", SourceManifest)

	// The walk continues past a go.mod with nothing usable.
	writeFile(t, filepath.Join(projects, ManifestFileName), "module outer\n\ngo 1.21.0\n")
	writeFile(t, filepath.Join(project, ManifestFileName), "module x\n\ngo\nrequire (\n")
	assertActive(t, r, "go", project, "1.21.0", SourceManifest)
}

func TestResolve_AuxiliaryToolIgnoresManifest(t *testing.T) {
	r, defaults, projects := newTestResolver(t)
	writeFile(t, filepath.Join(projects, ManifestFileName), "module example.com/app\n\ngo 1.22.0\n")
	if err := defaults.Set("gopls", "v0.15.0"); err != nil {
		t.Fatal(err)
	}
	assertActive(t, r, "gopls", projects, "v0.15.0", SourceDefault)

	if err := NewPinStore().Set(projects, "gopls", "v0.16.0"); err != nil {
		t.Fatal(err)
	}
	assertActive(t, r, "gopls", projects, "v0.16.0", SourcePin)
}

func TestResolve_InvalidPinIsFatal(t *testing.T) {
	r, defaults, projects := newTestResolver(t)
	writeFile(t, filepath.Join(projects, PinFileName), `{"go": `)
	if err := defaults.Set("go", "1.22.3"); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Resolve("go", projects); err == nil {
		t.Fatal("expected error for malformed pin file")
	}
}

func TestResolve_PinRoundTrip(t *testing.T) {
	r, _, projects := newTestResolver(t)
	pins := NewPinStore()

	for _, v := range []string{"1.21.0", "1.22.3", "1.23rc1"} {
		if err := pins.Set(projects, "go", v); err != nil {
			t.Fatal(err)
		}
		assertActive(t, r, "go", projects, v, SourcePin)
	}
}

func TestFindPin(t *testing.T) {
	r, _, projects := newTestResolver(t)
	sub := filepath.Join(projects, "a", "b")
	writeFile(t, filepath.Join(sub, "x.txt"), "")
	if err := NewPinStore().Set(projects, "go", "1.22.3"); err != nil {
		t.Fatal(err)
	}

	pin, ok, err := r.FindPin("go", sub)
	if err != nil || !ok {
		t.Fatalf("FindPin() = (%v, %v)", ok, err)
	}
	if pin.Version != "1.22.3" || pin.Path != filepath.Join(projects, PinFileName) {
		t.Errorf("FindPin() = %+v", pin)
	}

	if _, ok, _ := r.FindPin("dlv", sub); ok {
		t.Error("dlv should not be pinned")
	}
}

func assertActive(t *testing.T, r *VersionResolver, tool, dir, version string, source Source) {
	t.Helper()
	av, err := r.Resolve(tool, dir)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if av.Version != version || av.Source != source {
		t.Errorf("Resolve() = (%q, %s), want (%q, %s)", av.Version, av.Source, version, source)
	}
}

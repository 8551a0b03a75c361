package main

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"golta": run,
	}))
}

// fakeGoScript stands in for a go binary. It prints the environment the
// dispatcher set up, and exits 3 when asked to fail.
const fakeGoScript = `#!/bin/sh
if [ "$1" = "fail" ]; then
  echo "failing on purpose" >&2
  exit 3
fi
echo "go version go%s fake"
echo "GOROOT=$GOROOT"
echo "GOTOOLCHAIN=$GOTOOLCHAIN"
echo "args=$*"
`

const fakeToolScript = `#!/bin/sh
echo "%s %s"
echo "args=$*"
`

const testCatalog = `[
	{"version": "go1.23rc1", "stable": false, "files": []},
	{"version": "go1.22.3", "stable": true, "files": []},
	{"version": "go1.22.2", "stable": true, "files": []},
	{"version": "go1.21.9", "stable": true, "files": []}
]`

func TestScript(t *testing.T) {
	srv := newDistServer(t)

	testscript.Run(t, testscript.Params{
		Dir:                 filepath.Join("testdata", "script"),
		RequireExplicitExec: true,
		Setup: func(e *testscript.Env) error {
			// Keep ~/.golta and the network inside the test sandbox.
			e.Vars = append(e.Vars,
				"HOME="+e.WorkDir,
				"GOLTA_HOME="+filepath.Join(e.WorkDir, ".golta"),
				"GOLTA_CATALOG_URL="+srv.URL+"/dl/?mode=json&include=all",
				"GOLTA_DOWNLOAD_URL="+srv.URL+"/dl",
				"GOLTA_PROXY_URL="+srv.URL+"/proxy",
				"CI=1",
			)
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			// file-contains asserts that a file contains (or doesn't contain) a substring.
			// Usage: [!] file-contains <path> <substring>
			"file-contains": cmdFileContains,

			// dir-not-exists asserts that a directory does not exist.
			// Usage: [!] dir-not-exists <path>
			"dir-not-exists": cmdDirNotExists,

			// fake-install lays out an installed tool version under
			// $GOLTA_HOME without touching the network.
			// Usage: fake-install <tool>@<version>
			"fake-install": cmdFakeInstall,
		},
	})
}

// newDistServer serves a Go release catalog, one downloadable release
// (1.22.3) and a module proxy answering for gopls.
func newDistServer(t *testing.T) *httptest.Server {
	t.Helper()
	archive := goArchive(t, "1.22.3")
	archiveName := fmt.Sprintf("/dl/go1.22.3.%s-%s.tar.gz", runtime.GOOS, runtime.GOARCH)

	mux := http.NewServeMux()
	mux.HandleFunc("/dl/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/dl/" && r.URL.Query().Get("mode") == "json":
			fmt.Fprint(w, testCatalog)
		case r.URL.Path == archiveName:
			w.Header().Set("Content-Length", strconv.Itoa(len(archive)))
			_, _ = w.Write(archive)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/proxy/golang.org/x/tools/gopls/@v/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "v0.15.3\nv0.16.0\nv0.16.1-pre.1\n")
	})
	mux.HandleFunc("/proxy/golang.org/x/tools/gopls/@latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Version":"v0.16.0","Time":"2024-06-20T00:00:00Z"}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func goArchive(t *testing.T, version string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	files := []struct {
		name string
		body string
		mode int64
	}{
		{"go/VERSION", "go" + version + "\n", 0o644},
		{"go/bin/go", fmt.Sprintf(fakeGoScript, version), 0o755},
	}
	for _, f := range files {
		hdr := &tar.Header{Name: f.name, Typeflag: tar.TypeReg, Mode: f.mode, Size: int64(len(f.body))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(f.body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// cmdFileContains checks if a file contains a substring.
func cmdFileContains(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) < 2 {
		ts.Fatalf("usage: file-contains <path> <substring>")
	}
	path := ts.MkAbs(args[0])
	substr := args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		ts.Fatalf("reading %s: %v", args[0], err)
	}

	contains := strings.Contains(string(data), substr)
	if neg {
		if contains {
			ts.Fatalf("file %s contains %q (expected not to)", args[0], substr)
		}
	} else {
		if !contains {
			ts.Fatalf("file %s does not contain %q\nContent:\n%s", args[0], substr, string(data))
		}
	}
}

// cmdDirNotExists checks that a directory does not exist.
func cmdDirNotExists(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 1 {
		ts.Fatalf("usage: dir-not-exists <path>")
	}
	path := ts.MkAbs(args[0])
	_, err := os.Stat(path)
	doesNotExist := os.IsNotExist(err)

	if neg {
		// ! dir-not-exists == dir exists
		if doesNotExist {
			ts.Fatalf("%s does not exist (expected it to exist)", args[0])
		}
	} else {
		if !doesNotExist {
			ts.Fatalf("%s exists (expected it not to)", args[0])
		}
	}
}

// cmdFakeInstall writes the on-disk layout of an installed version.
func cmdFakeInstall(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("fake-install does not support negation")
	}
	if len(args) != 1 {
		ts.Fatalf("usage: fake-install <tool>@<version>")
	}
	tool, version, ok := strings.Cut(args[0], "@")
	if !ok || tool == "" || version == "" {
		ts.Fatalf("usage: fake-install <tool>@<version>")
	}

	root := ts.Getenv("GOLTA_HOME")
	binName := tool
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}

	var bin, script string
	if tool == "go" {
		bin = filepath.Join(root, "versions", version, "go", "bin", binName)
		script = fmt.Sprintf(fakeGoScript, version)
	} else {
		bin = filepath.Join(root, "versions", tool, version, "bin", binName)
		script = fmt.Sprintf(fakeToolScript, tool, version)
	}
	if err := os.MkdirAll(filepath.Dir(bin), 0o755); err != nil {
		ts.Fatalf("creating %s: %v", filepath.Dir(bin), err)
	}
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		ts.Fatalf("writing %s: %v", bin, err)
	}
}

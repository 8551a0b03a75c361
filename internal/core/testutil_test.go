package core

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeFetcher serves canned documents keyed by URL.
type fakeFetcher struct {
	docs  map[string]string
	err   error
	calls []string
}

func (f *fakeFetcher) Get(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return nil, f.err
	}
	doc, ok := f.docs[url]
	if !ok {
		return nil, &FetchError{URL: url, Err: errors.New("unexpected status 404 Not Found")}
	}
	return []byte(doc), nil
}

func (f *fakeFetcher) Open(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	data, err := f.Get(ctx, url)
	if err != nil {
		return nil, 0, err
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

// installFakeGo lays out a Go install the way the installer leaves it.
func installFakeGo(t *testing.T, paths Paths, version string) string {
	t.Helper()
	bin := filepath.Join(paths.InstallDir(GoToolName, version), "go", "bin", knownTools[GoToolName].Binary())
	writeFile(t, bin, "#!/bin/sh\n")
	return bin
}

// installFakeTool lays out an auxiliary tool install.
func installFakeTool(t *testing.T, paths Paths, tool, version string) string {
	t.Helper()
	bin := filepath.Join(paths.InstallDir(tool, version), "bin", knownTools[tool].Binary())
	writeFile(t, bin, "#!/bin/sh\n")
	return bin
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// goArchive builds a tar.gz that mimics a Go distribution.
func goArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range entries {
		if strings.HasSuffix(name, "/") {
			if err := tw.WriteHeader(&tar.Header{Name: name, Typeflag: tar.TypeDir, Mode: 0o755}); err != nil {
				t.Fatal(err)
			}
			continue
		}
		hdr := &tar.Header{Name: name, Typeflag: tar.TypeReg, Mode: 0o755, Size: int64(len(content))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
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

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tar.gz archives are only used off Windows")
	}
}

package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ProgressReporter receives byte progress for a download.
type ProgressReporter interface {
	Start(label string, total int64)
	Update(current int64)
	Finish()
}

type nopProgress struct{}

func (nopProgress) Start(string, int64) {}
func (nopProgress) Update(int64)        {}
func (nopProgress) Finish()             {}

// progressWriter forwards cumulative byte counts to a ProgressReporter.
type progressWriter struct {
	reporter ProgressReporter
	written  int64
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	w.reporter.Update(w.written)
	return len(p), nil
}

// downloadFile streams url into a temp file under dir and returns its path.
// The caller removes the file.
func downloadFile(ctx context.Context, fetcher Fetcher, url, dir, label string, progress ProgressReporter) (string, error) {
	body, size, err := fetcher.Open(ctx, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	if size <= 0 {
		return "", &FetchError{URL: url, Err: errors.New("server did not report a content length")}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}
	f, err := os.CreateTemp(dir, "download-*.part")
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	path := f.Name()

	progress.Start(label, size)
	pw := &progressWriter{reporter: progress}
	n, copyErr := io.Copy(f, io.TeeReader(body, pw))
	closeErr := f.Close()
	progress.Finish()

	switch {
	case copyErr != nil:
		_ = os.Remove(path)
		return "", &FetchError{URL: url, Err: copyErr}
	case closeErr != nil:
		_ = os.Remove(path)
		return "", fmt.Errorf("writing download: %w", closeErr)
	case n != size:
		_ = os.Remove(path)
		return "", &FetchError{URL: url, Err: fmt.Errorf("download incomplete: got %d of %d bytes", n, size)}
	}
	return path, nil
}

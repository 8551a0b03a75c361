package core

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxMetadataSize caps catalog and proxy responses.
const maxMetadataSize = 32 << 20

// Fetcher performs the HTTP requests golta needs. Tests substitute it.
type Fetcher interface {
	// Get returns the body of a small metadata document.
	Get(ctx context.Context, url string) ([]byte, error)
	// Open starts a streamed download and returns the body and its
	// declared length (-1 when the server sends none).
	Open(ctx context.Context, url string) (io.ReadCloser, int64, error)
}

// HTTPFetcher is the net/http implementation of Fetcher.
type HTTPFetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// NewHTTPFetcher creates a fetcher. timeout bounds metadata requests only;
// downloads are bounded by ctx.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{},
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// Get implements Fetcher.
func (f *HTTPFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	body, _, err := f.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxMetadataSize))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return data, nil
}

// Open implements Fetcher.
func (f *HTTPFetcher) Open(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, &FetchError{URL: url, Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, &FetchError{URL: url, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, 0, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return resp.Body, resp.ContentLength, nil
}

// Package source reads the static inputs of a report: the line-level CSV
// export and the projects JSON. Inputs are read once, either from the local
// filesystem or over HTTP(S). There are no retries.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds a single HTTP read.
const DefaultTimeout = 30 * time.Second

// MaxBodySize caps how much of a remote response is read.
const MaxBodySize = 64 << 20

var (
	// ErrHTTPStatus is wrapped by FetchError when the server answers with a non-2xx status.
	ErrHTTPStatus = errors.New("unexpected HTTP status")
	// ErrTooLarge is wrapped by FetchError when a response body exceeds MaxBodySize.
	ErrTooLarge = errors.New("response body too large")
)

// FetchError reports a failure to read an input source.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Options configures Read.
type Options struct {
	Timeout time.Duration
	Client  *http.Client
	// MaxBodySize overrides the remote body limit when positive.
	MaxBodySize int64
}

// IsRemote reports whether src is an http or https URL.
func IsRemote(src string) bool {
	lower := strings.ToLower(src)

	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Read returns the full content of src. Every failure is a *FetchError.
func Read(ctx context.Context, src string, opts Options) ([]byte, error) {
	if IsRemote(src) {
		return readRemote(ctx, src, opts)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, &FetchError{Source: src, Err: err}
	}

	return data, nil
}

func readRemote(ctx context.Context, src string, opts Options) ([]byte, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, src, http.NoBody)
	if err != nil {
		return nil, &FetchError{Source: src, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: src, Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &FetchError{Source: src, Err: fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)}
	}

	limit := opts.MaxBodySize
	if limit <= 0 {
		limit = MaxBodySize
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &FetchError{Source: src, Err: fmt.Errorf("read body: %w", err)}
	}

	if int64(len(data)) > limit {
		return nil, &FetchError{Source: src, Err: fmt.Errorf("%w: over %d bytes", ErrTooLarge, limit)}
	}

	return data, nil
}

// Package client fetches raw metrics text from node endpoints.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds each request. Polling runs every second for an
// interactive display, so a slow node is reported as down rather than waited
// on.
const DefaultTimeout = 2 * time.Second

// metricsPath is the fixed sub-path queried on every endpoint.
const metricsPath = "/metrics"

// ErrorKind classifies a fetch failure so callers can branch on kind instead
// of matching message substrings.
type ErrorKind int

const (
	// ErrNetwork covers transport-level failures: refused connections,
	// DNS errors, timeouts.
	ErrNetwork ErrorKind = iota
	// ErrHTTPStatus means the node answered with a non-2xx status.
	ErrHTTPStatus
	// ErrReadBody means the response body could not be read fully.
	ErrReadBody
)

// FetchError is a classified per-endpoint failure. Its Error string is what
// the status column displays.
type FetchError struct {
	Kind   ErrorKind
	Status int // HTTP status code, set for ErrHTTPStatus
	Cause  error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case ErrHTTPStatus:
		return fmt.Sprintf("HTTP error: status %d", e.Status)
	case ErrReadBody:
		return fmt.Sprintf("Read body error: %v", e.Cause)
	default:
		return fmt.Sprintf("Network error: %v", e.Cause)
	}
}

func (e *FetchError) Unwrap() error { return e.Cause }

// Result is the outcome of fetching one endpoint. Exactly one of Body or Err
// is meaningful.
type Result struct {
	URL  string
	Body string
	Err  *FetchError
}

// Fetcher issues concurrent short-timeout GETs against node metrics
// endpoints.
type Fetcher struct {
	http *http.Client
}

// NewFetcher constructs a Fetcher. A non-positive timeout falls back to
// DefaultTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		http: &http.Client{Timeout: timeout},
	}
}

// FetchAll queries {url}/metrics for every URL concurrently and returns one
// Result per input URL, in input order. Failures never abort the batch; each
// URL resolves to a body or a classified error. There are no retries — the
// next poll tick is the retry.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	for i, url := range urls {
		g.Go(func() error {
			results[i] = f.fetchOne(gctx, url)
			return nil
		})
	}
	// All goroutines return nil; Wait is only a join point.
	_ = g.Wait()

	return results
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) Result {
	target := strings.TrimRight(url, "/") + metricsPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Result{URL: url, Err: &FetchError{Kind: ErrNetwork, Cause: err}}
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return Result{URL: url, Err: &FetchError{Kind: ErrNetwork, Cause: err}}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{URL: url, Err: &FetchError{Kind: ErrHTTPStatus, Status: resp.StatusCode}}
	}

	const maxResponseBytes = 4 * 1024 * 1024 // far above any real exposition
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{URL: url, Err: &FetchError{Kind: ErrReadBody, Cause: err}}
	}

	return Result{URL: url, Body: string(body)}
}

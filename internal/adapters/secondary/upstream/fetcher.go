// Package upstream pulls source artifacts from distribution points, either
// over HTTP or straight from the local filesystem.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"source-registry-service/internal/core/domain"
)

const (
	defaultUserAgent = "source-registry-service"
	defaultTimeout   = 30 * time.Second
)

type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher builds an HTTP fetcher. Downloads can take as long as the
// context allows; the timeout only bounds waiting for response headers.
func NewFetcher(userAgent string, timeout time.Duration) *Fetcher {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: timeout,
			},
		},
		userAgent: userAgent,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %s", domain.ErrFetchFailed, url, resp.Status)
	}
	return resp.Body, nil
}

// Open treats the location as a URL when it carries an http scheme and as a
// local file path otherwise.
func (f *Fetcher) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return f.Fetch(ctx, location)
	}
	file, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", location, err)
	}
	return file, nil
}

package ports

import (
	"context"
	"io"
)

// Fetcher downloads artifacts from upstream distribution points.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

package player

import "context"

// Fetcher downloads the bytes of a source URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

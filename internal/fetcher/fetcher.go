// Package fetcher resolves article URLs to their raw markup.
package fetcher

import (
	"context"
	"errors"
)

var (
	// ErrEmptyBody is returned when a request succeeds but carries no content
	ErrEmptyBody = errors.New("empty response body")

	// ErrNotText is returned for responses whose content type is not textual
	ErrNotText = errors.New("response is not text")

	// ErrRetriesExhausted wraps the last failure once the attempt cap is reached
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// Fetcher returns the raw content of a page
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, pageURL string) (string, error)

// Fetch calls f(ctx, pageURL)
func (f FetcherFunc) Fetch(ctx context.Context, pageURL string) (string, error) {
	return f(ctx, pageURL)
}

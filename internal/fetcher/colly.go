package fetcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// CollyFetcher performs one synchronous colly request per Fetch call
type CollyFetcher struct {
	timeout   time.Duration
	userAgent string
}

// NewCollyFetcher creates a fetcher with the given request timeout and user agent
func NewCollyFetcher(timeout time.Duration, userAgent string) *CollyFetcher {
	return &CollyFetcher{
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// newCollector builds a collector bound to ctx so cancellation aborts the request
func (f *CollyFetcher) newCollector(ctx context.Context) *colly.Collector {
	options := []colly.CollectorOption{
		colly.AllowURLRevisit(), // retries hit the same URL
		colly.StdlibContext(ctx),
	}
	if f.userAgent != "" {
		options = append(options, colly.UserAgent(f.userAgent))
	}

	c := colly.NewCollector(options...)
	c.SetRequestTimeout(f.timeout)
	return c
}

// Fetch downloads pageURL and returns its body.
// Transport failures, non-2xx statuses and non-text responses are errors;
// an empty body yields ErrEmptyBody.
func (f *CollyFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := f.newCollector(ctx)

	var (
		body       []byte
		status     int
		contentErr error
	)

	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		if r.Headers != nil {
			if ct := r.Headers.Get("Content-Type"); !isText(ct) {
				contentErr = fmt.Errorf("%w: %s", ErrNotText, ct)
				return
			}
		}
		body = r.Body
	})

	start := time.Now()
	if err := c.Visit(pageURL); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	if contentErr != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, contentErr)
	}

	logrus.Debugf("Fetched %s (status=%d, %d bytes, %v)", pageURL, status, len(body), time.Since(start))

	if len(body) == 0 {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, ErrEmptyBody)
	}
	return string(body), nil
}

// isText accepts missing content types, text/* and the markup application types
func isText(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct == "" {
		return true
	}
	return strings.HasPrefix(ct, "text/") ||
		strings.Contains(ct, "html") ||
		strings.Contains(ct, "xml")
}

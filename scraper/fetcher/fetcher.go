// Package fetcher provides the page transports used by the scrapers.
package fetcher

import "context"

// Fetcher retrieves the text of a page. Implementations send the given
// headers with the request and return the raw body.
type Fetcher interface {
	Fetch(ctx context.Context, url string, headers map[string]string) (string, error)
}

// FetchFunc adapts a plain function to the Fetcher interface.
type FetchFunc func(ctx context.Context, url string, headers map[string]string) (string, error)

func (f FetchFunc) Fetch(ctx context.Context, url string, headers map[string]string) (string, error) {
	return f(ctx, url, headers)
}

package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"

	"rental-comps/utils"
)

// HTTPFetcher fetches pages with a plain HTTP client through colly.
type HTTPFetcher struct {
	collector *colly.Collector
	logger    *utils.Logger
}

// NewHTTPFetcher builds a fetcher with one parent collector; every Fetch
// clones it so concurrent calls keep their own callbacks.
func NewHTTPFetcher(timeout time.Duration, logger *utils.Logger) *HTTPFetcher {
	c := colly.NewCollector(colly.AllowURLRevisit())
	if timeout > 0 {
		c.SetRequestTimeout(timeout)
	}

	return &HTTPFetcher{collector: c, logger: logger}
}

// Fetch issues a single GET. Non-2xx responses are returned as errors, and
// cancelling ctx aborts a request in flight.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, headers map[string]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := f.collector.Clone()
	c.Context = ctx

	var body string
	var fetchErr error

	c.OnRequest(func(r *colly.Request) {
		for k, v := range headers {
			r.Headers.Set(k, v)
		}
		f.logger.Debug("[fetcher] GET %s", r.URL.String())
	})

	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("fetcher: request to %s failed with status %d: %w", url, r.StatusCode, err)
	})

	if err := c.Visit(url); err != nil {
		return "", fmt.Errorf("fetcher: visit %s: %w", url, err)
	}
	c.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}
	return body, nil
}

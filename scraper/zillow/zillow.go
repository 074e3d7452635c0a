// Package zillow searches Zillow rentals: it resolves a location to a search
// URL, extracts listings from the results page and enriches the first few
// from their detail pages.
package zillow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rental-comps/models"
	"rental-comps/scraper/fetcher"
	"rental-comps/utils"
)

// ErrLocationRequired is returned by Search when the criteria carry no location text.
var ErrLocationRequired = errors.New("location is required")

// SearchHeaders are sent with the search results request.
var SearchHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
}

// DetailHeaders are sent with listing detail page requests.
var DetailHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
	"Accept":     "text/html",
}

// Scraper runs one search: resolve, fetch, extract, enrich.
type Scraper struct {
	fetcher   fetcher.Fetcher
	resolver  *Resolver
	extractor *Extractor
	enricher  *Enricher
	logger    *utils.Logger
}

// New creates a Scraper. A nil enricher disables detail page enrichment.
func New(f fetcher.Fetcher, resolver *Resolver, enricher *Enricher, logger *utils.Logger) *Scraper {
	return &Scraper{
		fetcher:   f,
		resolver:  resolver,
		extractor: NewExtractor(logger),
		enricher:  enricher,
		logger:    logger,
	}
}

// Search fetches a single results page for criteria and returns its listings.
// An empty result is not an error.
func (s *Scraper) Search(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResult, error) {
	if strings.TrimSpace(criteria.Location) == "" {
		return nil, ErrLocationRequired
	}

	res := s.resolver.Resolve(criteria)
	s.logger.Info("[zillow] Searching %q as %s", criteria.Location, res.PathSegment)
	s.logger.Debug("[zillow] URL: %s", res.URL)

	page, err := s.fetcher.Fetch(ctx, res.URL, SearchHeaders)
	if err != nil {
		return nil, fmt.Errorf("fetch search page %s: %w", res.PathSegment, err)
	}

	listings := s.extractor.Extract(page)
	s.logger.Info("[zillow] %s: extracted %d listings", res.PathSegment, len(listings))

	if s.enricher != nil && len(listings) > 0 {
		s.enricher.Enrich(ctx, listings)
	}

	return &models.SearchResult{
		Listings:    listings,
		URL:         res.URL,
		PathSegment: res.PathSegment,
	}, nil
}

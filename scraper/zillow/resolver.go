package zillow

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"rental-comps/models"
)

const siteOrigin = "https://www.zillow.com"

var (
	zipTokenRegexp  = regexp.MustCompile(`\b(\d{5})\b`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	slugStripRegexp = regexp.MustCompile(`[^a-z0-9-]`)
)

// Resolution is the outcome of resolving a search: where to search and with which filters.
type Resolution struct {
	PathSegment string
	Filter      FilterState
	URL         string
}

// Resolver turns free-text locations into Zillow path segments.
type Resolver struct {
	table  map[string]string
	region Region
}

// NewResolver creates a Resolver over a known-area table. Table keys must be
// lowercase and trimmed.
func NewResolver(table map[string]string, region Region) *Resolver {
	if table == nil {
		table = map[string]string{}
	}
	return &Resolver{table: table, region: region}
}

// Slug resolves location text to a path segment. The first matching rule wins:
// known-area table, a standalone 5-digit zip, then a slugified fallback.
func (r *Resolver) Slug(locationText string) string {
	loc := strings.ToLower(strings.TrimSpace(locationText))

	if slug, ok := r.table[loc]; ok {
		return slug
	}

	if m := zipTokenRegexp.FindStringSubmatch(loc); m != nil {
		return r.region.ZipPrefix + "-" + m[1]
	}

	slug := strings.ReplaceAll(loc, ",", "")
	slug = whitespaceRegex.ReplaceAllString(slug, "-")
	slug = slugStripRegexp.ReplaceAllString(slug, "")
	if !strings.Contains(slug, r.region.Suffix) {
		slug += r.region.Suffix
	}
	return slug
}

// Resolve computes the path segment, filter state and search URL for criteria.
func (r *Resolver) Resolve(criteria models.SearchCriteria) Resolution {
	slug := r.Slug(criteria.Location)
	filter := BuildFilterState(criteria)

	return Resolution{
		PathSegment: slug,
		Filter:      filter,
		URL:         searchURL(slug, filter),
	}
}

type searchQueryState struct {
	IsMapVisible bool        `json:"isMapVisible"`
	FilterState  FilterState `json:"filterState"`
}

func searchURL(slug string, filter FilterState) string {
	// FilterState only holds bools and float pointers; Marshal cannot fail.
	state, _ := json.Marshal(searchQueryState{IsMapVisible: true, FilterState: filter})
	return siteOrigin + "/" + slug + "/rentals/?searchQueryState=" + url.QueryEscape(string(state))
}

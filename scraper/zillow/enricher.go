package zillow

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"rental-comps/models"
	"rental-comps/scraper/fetcher"
	"rental-comps/utils"
)

// DefaultEnrichLimit caps how many leading listings get a detail page fetch.
const DefaultEnrichLimit = 5

// maxDescriptionLen bounds the description text that tag rules run against.
const maxDescriptionLen = 2000

var (
	detailImageRegexp = regexp.MustCompile(`"url"\s*:\s*"(https://photos\.zillowstatic\.com/[^"]+)"`)
	// RE2 caps repeat counts at 1000, so the length bound is checked after matching.
	descriptionRegexp = regexp.MustCompile(`"description"\s*:\s*"([^"]*)"`)
)

type tagRule struct {
	pattern *regexp.Regexp
	tag     string
}

var descriptionTagRules = []tagRule{
	{regexp.MustCompile(`pool`), "Pool"},
	{regexp.MustCompile(`garage`), "Garage"},
	{regexp.MustCompile(`renovated|remodel|updated`), "Updated"},
	{regexp.MustCompile(`granite`), "Granite"},
	{regexp.MustCompile(`hardwood`), "Hardwood Floors"},
	{regexp.MustCompile(`stainless`), "Stainless Appliances"},
	{regexp.MustCompile(`mountain view|city view`), "Views"},
	{regexp.MustCompile(`gated`), "Gated"},
	{regexp.MustCompile(`solar`), "Solar"},
	{regexp.MustCompile(`new roof`), "New Roof"},
	{regexp.MustCompile(`new paint|fresh paint`), "Fresh Paint"},
	{regexp.MustCompile(`new floor|new carpet|new tile`), "New Flooring"},
	{regexp.MustCompile(`fireplace`), "Fireplace"},
	{regexp.MustCompile(`rv gate|rv parking`), "RV Parking"},
	{regexp.MustCompile(`corner lot`), "Corner Lot"},
	{regexp.MustCompile(`cul.de.sac`), "Cul-de-sac"},
	{regexp.MustCompile(`no hoa`), "No HOA"},
}

// Enricher fills a listing's missing image and highlights from its detail page.
type Enricher struct {
	fetcher     fetcher.Fetcher
	logger      *utils.Logger
	limit       int
	rateLimitMs int
}

// NewEnricher creates an Enricher that looks at no more than limit listings
// per call. limit can only lower DefaultEnrichLimit, never raise it.
// rateLimitMs spaces the start of detail fetches; zero disables it.
func NewEnricher(f fetcher.Fetcher, logger *utils.Logger, limit, rateLimitMs int) *Enricher {
	if limit <= 0 || limit > DefaultEnrichLimit {
		limit = DefaultEnrichLimit
	}
	return &Enricher{fetcher: f, logger: logger, limit: limit, rateLimitMs: rateLimitMs}
}

// Enrich updates the first listings in place. Only absent fields are filled;
// a failing detail page leaves its listing unchanged.
func (e *Enricher) Enrich(ctx context.Context, listings []models.Listing) {
	n := min(e.limit, len(listings))
	pool := utils.NewWorkerPool(n, e.rateLimitMs)

	for i := 0; i < n; i++ {
		l := &listings[i]
		if l.ImageURL != "" && len(l.Highlights) > 0 {
			continue
		}
		if l.DetailURL == "" {
			continue
		}
		pool.Submit(ctx, func() {
			e.enrichOne(ctx, l)
		})
	}

	pool.Wait()
}

func (e *Enricher) enrichOne(ctx context.Context, l *models.Listing) {
	page, err := e.fetcher.Fetch(ctx, l.DetailURL, DetailHeaders)
	if err != nil {
		e.logger.Warn("[enricher] Detail page failed for %s: %v", l.DetailURL, err)
		return
	}

	if l.ImageURL == "" {
		l.ImageURL = detailImage(page)
	}
	if len(l.Highlights) == 0 {
		for _, tag := range descriptionTags(page) {
			l.AddHighlight(tag)
		}
	}
	e.logger.Debug("[enricher] %s: image=%t, %d highlights", l.DetailURL, l.ImageURL != "", len(l.Highlights))
}

// detailImage returns the first photo CDN URL on a detail page.
func detailImage(page string) string {
	if m := detailImageRegexp.FindStringSubmatch(page); m != nil {
		return m[1]
	}
	return ""
}

// description returns the first embedded description of at most maxDescriptionLen characters.
func description(page string) (string, bool) {
	for _, m := range descriptionRegexp.FindAllStringSubmatch(page, -1) {
		if utf8.RuneCountInString(m[1]) <= maxDescriptionLen {
			return m[1], true
		}
	}
	return "", false
}

// descriptionTags matches the page description against the tag rules in order.
func descriptionTags(page string) []string {
	desc, ok := description(page)
	if !ok {
		return nil
	}
	desc = strings.ToLower(desc)

	var tags []string
	for _, rule := range descriptionTagRules {
		if rule.pattern.MatchString(desc) {
			tags = append(tags, rule.tag)
		}
	}
	return tags
}

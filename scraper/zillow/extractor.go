package zillow

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"rental-comps/models"
	"rental-comps/utils"
)

// Strategy recovers the raw listResults items from one page layout.
// TryExtract reports false when its layout is absent or its JSON is malformed.
type Strategy interface {
	Name() string
	TryExtract(page string) ([]json.RawMessage, bool)
}

// DefaultStrategies returns the extraction strategies in the order they are tried.
func DefaultStrategies() []Strategy {
	return []Strategy{listResultsStrategy{}, categoryStrategy{}, nextDataStrategy{}}
}

// Extractor turns a search results page into normalized listings.
type Extractor struct {
	strategies []Strategy
	logger     *utils.Logger
}

// NewExtractor creates an Extractor. With no strategies given it uses DefaultStrategies.
func NewExtractor(logger *utils.Logger, strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Extractor{strategies: strategies, logger: logger}
}

// Extract runs the strategies in order and returns the listings of the first one
// that yields at least one record. A page no strategy understands gives an empty slice.
func (e *Extractor) Extract(page string) []models.Listing {
	for _, s := range e.strategies {
		items, ok := s.TryExtract(page)
		if !ok {
			e.logger.Debug("[extractor] %s: no results", s.Name())
			continue
		}

		listings := make([]models.Listing, 0, len(items))
		for _, raw := range items {
			if l, ok := normalizeItem(raw); ok {
				listings = append(listings, l)
			}
		}
		if len(listings) > 0 {
			e.logger.Debug("[extractor] %s: %d of %d items usable", s.Name(), len(listings), len(items))
			return listings
		}
		e.logger.Debug("[extractor] %s: %d items, none usable", s.Name(), len(items))
	}
	return []models.Listing{}
}

var (
	listResultsRegexp = regexp.MustCompile(`"listResults"\s*:\s*(\[[\s\S]*?\])\s*,\s*"(?:mapResults|resultsHash)`)
	categoryRegexp    = regexp.MustCompile(`"cat1".*?"searchResults".*?"listResults"\s*:\s*`)
)

// listResultsStrategy reads the listResults array that is directly followed
// by the mapResults or resultsHash key.
type listResultsStrategy struct{}

func (listResultsStrategy) Name() string { return "listResults" }

func (listResultsStrategy) TryExtract(page string) ([]json.RawMessage, bool) {
	m := listResultsRegexp.FindStringSubmatch(page)
	if m == nil {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(m[1]), &items); err != nil {
		return nil, false
	}
	return items, true
}

// categoryStrategy reads listResults nested under cat1.searchResults.
// Decoding stops after one JSON value, so trailing page content is ignored.
type categoryStrategy struct{}

func (categoryStrategy) Name() string { return "cat1" }

func (categoryStrategy) TryExtract(page string) ([]json.RawMessage, bool) {
	loc := categoryRegexp.FindStringIndex(page)
	if loc == nil {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.NewDecoder(strings.NewReader(page[loc[1]:])).Decode(&items); err != nil {
		return nil, false
	}
	return items, true
}

type nextData struct {
	Props struct {
		PageProps struct {
			SearchPageState struct {
				Cat1 struct {
					SearchResults struct {
						ListResults []json.RawMessage `json:"listResults"`
					} `json:"searchResults"`
				} `json:"cat1"`
			} `json:"searchPageState"`
		} `json:"pageProps"`
	} `json:"props"`
}

// nextDataStrategy parses the __NEXT_DATA__ page state script and walks
// props.pageProps.searchPageState.cat1.searchResults.listResults.
type nextDataStrategy struct{}

func (nextDataStrategy) Name() string { return "__NEXT_DATA__" }

func (nextDataStrategy) TryExtract(page string) ([]json.RawMessage, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, false
	}
	script := doc.Find("script#__NEXT_DATA__").First()
	if script.Length() == 0 {
		return nil, false
	}

	var state nextData
	if err := json.Unmarshal([]byte(script.Text()), &state); err != nil {
		return nil, false
	}
	items := state.Props.PageProps.SearchPageState.Cat1.SearchResults.ListResults
	if items == nil {
		return nil, false
	}
	return items, true
}

package models

import "time"

// SourceZillow tags listings extracted from Zillow search pages.
const SourceZillow = "zillow"

// DaysListedNew is used when the source does not say how long a listing has been up.
const DaysListedNew = "New"

// Listing is the normalized record produced by the extractor.
// Optional numeric fields are nil when the source did not supply them.
type Listing struct {
	Address    string   `json:"address"`
	Price      float64  `json:"price"`
	Beds       *float64 `json:"beds,omitempty"`
	Baths      *float64 `json:"baths,omitempty"`
	Sqft       *float64 `json:"sqft,omitempty"`
	ZipCode    string   `json:"zip,omitempty"`
	DetailURL  string   `json:"url"`
	DaysListed string   `json:"daysListed"`
	Latitude   *float64 `json:"lat,omitempty"`
	Longitude  *float64 `json:"lng,omitempty"`
	ImageURL   string   `json:"image,omitempty"`
	Highlights []string `json:"highlights"`
	YearBuilt  *int     `json:"yearBuilt,omitempty"`
	Source     string   `json:"source"`
}

// HasHighlight reports whether tag is already present.
func (l *Listing) HasHighlight(tag string) bool {
	for _, h := range l.Highlights {
		if h == tag {
			return true
		}
	}
	return false
}

// AddHighlight appends tag unless it is already present.
func (l *Listing) AddHighlight(tag string) {
	if tag == "" || l.HasHighlight(tag) {
		return
	}
	l.Highlights = append(l.Highlights, tag)
}

// HasCoordinates reports whether both latitude and longitude are known.
func (l *Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// ScoredListing is a Listing with its derived comparison fields.
// CompScore is recomputed on every run and never treated as stored truth.
type ScoredListing struct {
	Listing
	CompScore    int    `json:"compScore"`
	PricePerSqft string `json:"pricePerSqft,omitempty"`
}

// SearchResult is what a single location search returns.
type SearchResult struct {
	Listings    []Listing `json:"listings"`
	URL         string    `json:"url"`
	PathSegment string    `json:"slug"`
}

// CompReport holds the aggregate statistics over a ranked set of listings.
type CompReport struct {
	GeneratedAt     time.Time
	Profile         PropertyProfile
	Count           int
	AveragePrice    float64
	MedianPrice     float64
	MinPrice        float64
	MaxPrice        float64
	AvgPricePerSqft float64
	SuggestedLow    float64
	SuggestedHigh   float64
	Ranked          []ScoredListing
}

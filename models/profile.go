package models

// PropertyProfile is the reference property that listings are compared against.
// Zero values in the optional fields mean "unknown".
type PropertyProfile struct {
	Beds         int      `yaml:"beds" json:"beds"`
	Baths        float64  `yaml:"baths" json:"baths"`
	Sqft         int      `yaml:"sqft" json:"sqft"`
	LotSqft      int      `yaml:"lot_sqft" json:"lotSqft,omitempty"`
	Stories      int      `yaml:"stories" json:"stories,omitempty"`
	GarageSpaces int      `yaml:"garage_spaces" json:"garageSpaces,omitempty"`
	YearBuilt    int      `yaml:"year_built" json:"yearBuilt,omitempty"`
	ZipCode      string   `yaml:"zip" json:"zip"`
	Area         string   `yaml:"area" json:"area"`
	Features     []string `yaml:"features" json:"features,omitempty"`
}

// Range is an optional numeric interval. A nil bound is unbounded on that side;
// a bound of zero is a real bound.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// IsSet reports whether either bound is present.
func (r Range) IsSet() bool {
	return r.Min != nil || r.Max != nil
}

// Between builds a Range with both bounds present.
func Between(min, max float64) Range {
	return Range{Min: &min, Max: &max}
}

// AtLeast builds a Range with only a lower bound.
func AtLeast(min float64) Range {
	return Range{Min: &min}
}

// AtMost builds a Range with only an upper bound.
func AtMost(max float64) Range {
	return Range{Max: &max}
}

// SearchCriteria describes one rental search.
type SearchCriteria struct {
	Location string
	Beds     Range
	Baths    Range
	Sqft     Range
	Price    Range
}

package zillow

import "rental-comps/models"

type toggle struct {
	Value bool `json:"value"`
}

// Bounds is the JSON form of an optional range filter.
type Bounds struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// FilterState is the searchQueryState.filterState payload. Field order matches
// the order Zillow itself emits.
type FilterState struct {
	ForRent         toggle `json:"fr"`
	ForSaleAgent    toggle `json:"fsba"`
	ForSaleOwner    toggle `json:"fsbo"`
	NewConstruction toggle `json:"nc"`
	ComingSoon      toggle `json:"cmsn"`
	Auction         toggle `json:"auc"`
	Foreclosure     toggle `json:"fore"`
	Townhouse       toggle `json:"tow"`
	MultiFamily     toggle `json:"mf"`
	Condo           toggle `json:"con"`
	Land            toggle `json:"land"`
	Apartment       toggle `json:"apa"`
	Manufactured    toggle `json:"manu"`

	Beds  *Bounds `json:"beds,omitempty"`
	Baths *Bounds `json:"baths,omitempty"`
	Sqft  *Bounds `json:"sqft,omitempty"`
	Price *Bounds `json:"mp,omitempty"`
}

// BuildFilterState builds the rentals-only filter with the criteria's ranges
// overlaid. A range appears only when at least one of its bounds is present.
func BuildFilterState(criteria models.SearchCriteria) FilterState {
	return FilterState{
		ForRent: toggle{Value: true},

		Beds:  boundsOf(criteria.Beds),
		Baths: boundsOf(criteria.Baths),
		Sqft:  boundsOf(criteria.Sqft),
		Price: boundsOf(criteria.Price),
	}
}

func boundsOf(r models.Range) *Bounds {
	if !r.IsSet() {
		return nil
	}
	return &Bounds{Min: r.Min, Max: r.Max}
}

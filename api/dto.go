package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"rental-comps/models"
	"rental-comps/services"
)

// optNumber is an optional request number. Form posts send numbers as
// strings, so numeric strings are accepted and "" or null mean absent.
type optNumber struct {
	value *float64
}

func (n *optNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		n.value = &v
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.value = &v
	return nil
}

// searchRequest is the POST /api/search body.
type searchRequest struct {
	Location string `json:"location"`

	MinBeds  optNumber `json:"minBeds"`
	MaxBeds  optNumber `json:"maxBeds"`
	MinBaths optNumber `json:"minBaths"`
	MaxBaths optNumber `json:"maxBaths"`
	MinSqft  optNumber `json:"minSqft"`
	MaxSqft  optNumber `json:"maxSqft"`
	MinPrice optNumber `json:"minPrice"`
	MaxPrice optNumber `json:"maxPrice"`

	MyBeds  optNumber `json:"myBeds"`
	MyBaths optNumber `json:"myBaths"`
	MySqft  optNumber `json:"mySqft"`
	MyZip   string    `json:"myZip"`
}

func (r searchRequest) criteria() models.SearchCriteria {
	return models.SearchCriteria{
		Location: r.Location,
		Beds:     models.Range{Min: r.MinBeds.value, Max: r.MaxBeds.value},
		Baths:    models.Range{Min: r.MinBaths.value, Max: r.MaxBaths.value},
		Sqft:     models.Range{Min: r.MinSqft.value, Max: r.MaxSqft.value},
		Price:    models.Range{Min: r.MinPrice.value, Max: r.MaxPrice.value},
	}
}

// target returns the ad-hoc scoring target. It reports false unless at least
// one of myBeds, myBaths or mySqft was sent; myZip alone does not trigger scoring.
func (r searchRequest) target() (services.ScoreTarget, bool) {
	t := services.ScoreTarget{
		Beds:    r.MyBeds.value,
		Baths:   r.MyBaths.value,
		Sqft:    r.MySqft.value,
		ZipCode: strings.TrimSpace(r.MyZip),
	}
	return t, t.Beds != nil || t.Baths != nil || t.Sqft != nil
}

// searchResponse carries either plain listings or scored ones, sorted best first.
type searchResponse struct {
	Listings any    `json:"listings"`
	URL      string `json:"url"`
	Slug     string `json:"slug"`
}

type errorResponse struct {
	Error string `json:"error"`
}

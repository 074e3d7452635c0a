package zillow

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"rental-comps/models"
)

const baseFilterJSON = `{"fr":{"value":true},"fsba":{"value":false},"fsbo":{"value":false},` +
	`"nc":{"value":false},"cmsn":{"value":false},"auc":{"value":false},"fore":{"value":false},` +
	`"tow":{"value":false},"mf":{"value":false},"con":{"value":false},"land":{"value":false},` +
	`"apa":{"value":false},"manu":{"value":false}`

func TestResolverSlug(t *testing.T) {
	r := NewResolver(DefaultAreaSlugs, DefaultRegion)

	tests := []struct {
		in   string
		want string
	}{
		{"Moon Valley", "moon-valley-canyon-phoenix-az"},
		{"  MOON VALLEY  ", "moon-valley-canyon-phoenix-az"},
		{"85022", "phoenix-az-85022"},
		{"Phoenix, AZ 85086", "phoenix-az-85086"},
		{"Sunnyslope", "sunnyslope-az"},
		{"Scottsdale, AZ", "scottsdale-az"},
		{"Cave   Creek!", "cave-creek-az"},
	}

	for _, tt := range tests {
		if got := r.Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolverSlugZipFallback(t *testing.T) {
	table := map[string]string{"85022": "north-mountain-phoenix-az"}

	if got := NewResolver(table, DefaultRegion).Slug("85022"); got != "north-mountain-phoenix-az" {
		t.Errorf("table hit: Slug(85022) = %q; want north-mountain-phoenix-az", got)
	}

	// Not in the table: the standalone zip token builds the segment.
	empty := NewResolver(nil, DefaultRegion)
	if got := empty.Slug("85022"); got != "phoenix-az-85022" {
		t.Errorf("zip fallback: Slug(85022) = %q; want phoenix-az-85022", got)
	}
	if got := empty.Slug("85022"); got != empty.Slug("85022") {
		t.Errorf("zip fallback is not deterministic: %q", got)
	}
}

func TestBuildFilterState(t *testing.T) {
	tests := []struct {
		name     string
		criteria models.SearchCriteria
		want     string
	}{
		{
			name:     "base only",
			criteria: models.SearchCriteria{Location: "85022"},
			want:     baseFilterJSON + `}`,
		},
		{
			name: "min and max",
			criteria: models.SearchCriteria{
				Beds:  models.AtLeast(3),
				Baths: models.Between(2, 4),
				Sqft:  models.AtMost(3200),
			},
			want: baseFilterJSON + `,"beds":{"min":3},"baths":{"min":2,"max":4},"sqft":{"max":3200}}`,
		},
		{
			name:     "zero bound is kept",
			criteria: models.SearchCriteria{Price: models.Between(0, 2500)},
			want:     baseFilterJSON + `,"mp":{"min":0,"max":2500}}`,
		},
	}

	for _, tt := range tests {
		got, err := json.Marshal(BuildFilterState(tt.criteria))
		if err != nil {
			t.Fatalf("%s: marshal: %v", tt.name, err)
		}
		if string(got) != tt.want {
			t.Errorf("%s:\n got %s\nwant %s", tt.name, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver(DefaultAreaSlugs, DefaultRegion)
	res := r.Resolve(models.SearchCriteria{Location: "moon valley", Beds: models.AtLeast(3)})

	if res.PathSegment != "moon-valley-canyon-phoenix-az" {
		t.Errorf("PathSegment = %q", res.PathSegment)
	}

	prefix := "https://www.zillow.com/moon-valley-canyon-phoenix-az/rentals/?searchQueryState="
	if !strings.HasPrefix(res.URL, prefix) {
		t.Fatalf("URL = %q; want prefix %q", res.URL, prefix)
	}
	state, err := url.QueryUnescape(strings.TrimPrefix(res.URL, prefix))
	if err != nil {
		t.Fatalf("unescape: %v", err)
	}
	want := `{"isMapVisible":true,"filterState":` + baseFilterJSON + `,"beds":{"min":3}}}`
	if state != want {
		t.Errorf("searchQueryState:\n got %s\nwant %s", state, want)
	}
}

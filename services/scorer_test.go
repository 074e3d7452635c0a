package services

import (
	"testing"

	"rental-comps/models"
)

func TestScoreScenarios(t *testing.T) {
	profile := moonValleyProfile()

	tests := []struct {
		name    string
		listing models.Listing
		want    int
	}{
		{"exact match", models.Listing{Beds: ptr(5), Baths: ptr(3), Sqft: ptr(2400), ZipCode: "85022"}, 100},
		{"two beds short", models.Listing{Beds: ptr(3), Baths: ptr(3), Sqft: ptr(2400), ZipCode: "85023"}, 70},
		{"unknown sqft same zip", models.Listing{Beds: ptr(5), Baths: ptr(3), ZipCode: "85022"}, 100},
		{"unknown sqft other zip", models.Listing{Beds: ptr(5), Baths: ptr(3), ZipCode: "85023"}, 90},
		{"sqft per whole hundred", models.Listing{Beds: ptr(5), Baths: ptr(3), Sqft: ptr(2250), ZipCode: "85023"}, 95},
		{"half bath", models.Listing{Beds: ptr(5), Baths: ptr(2.5), Sqft: ptr(2400), ZipCode: "85023"}, 95},
		{"beds difference of 50", models.Listing{Beds: ptr(55), Baths: ptr(3), Sqft: ptr(2400), ZipCode: "85022"}, 0},
		{"missing beds", models.Listing{Baths: ptr(3), Sqft: ptr(2400), ZipCode: "85022"}, 0},
		{"missing baths", models.Listing{Beds: ptr(5), Sqft: ptr(2400), ZipCode: "85022"}, 0},
	}

	for _, tt := range tests {
		if got := Score(tt.listing, profile); got != tt.want {
			t.Errorf("%s: Score = %d; want %d", tt.name, got, tt.want)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	profile := moonValleyProfile()
	listings := []models.Listing{
		{Beds: ptr(0), Baths: ptr(0), Sqft: ptr(100000)},
		{Beds: ptr(-40), Baths: ptr(90), Sqft: ptr(1)},
		{Beds: ptr(5), Baths: ptr(3), Sqft: ptr(2400), ZipCode: "85022"},
		{},
	}

	for _, l := range listings {
		got := Score(l, profile)
		if got < 0 || got > 100 {
			t.Errorf("Score(%+v) = %d; out of [0,100]", l, got)
		}
		if again := Score(l, profile); again != got {
			t.Errorf("Score not deterministic: %d then %d", got, again)
		}
	}
}

func TestScoreAgainstPartialTarget(t *testing.T) {
	listing := models.Listing{Beds: ptr(4), Baths: ptr(2), ZipCode: "85022"}

	tests := []struct {
		name   string
		target ScoreTarget
		want   int
	}{
		{"empty target", ScoreTarget{}, 100},
		{"beds only", ScoreTarget{Beds: ptr(5)}, 85},
		{"sqft only, listing unknown", ScoreTarget{Sqft: ptr(2400)}, 90},
		{"zip only", ScoreTarget{ZipCode: "85022"}, 100},
		{"beds and zip", ScoreTarget{Beds: ptr(3), ZipCode: "85022"}, 95},
		{"baths match", ScoreTarget{Baths: ptr(2)}, 100},
	}

	for _, tt := range tests {
		if got := ScoreAgainst(listing, tt.target); got != tt.want {
			t.Errorf("%s: ScoreAgainst = %d; want %d", tt.name, got, tt.want)
		}
	}
}

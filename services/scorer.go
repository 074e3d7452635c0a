package services

import (
	"math"

	"rental-comps/models"
)

// ScoreTarget is the property a listing is scored against. A nil dimension
// (or empty ZipCode) is left out of the score entirely.
type ScoreTarget struct {
	Beds    *float64
	Baths   *float64
	Sqft    *float64
	ZipCode string
}

// ProfileTarget scores against every dimension of the reference profile.
func ProfileTarget(p models.PropertyProfile) ScoreTarget {
	beds, baths, sqft := float64(p.Beds), p.Baths, float64(p.Sqft)
	return ScoreTarget{Beds: &beds, Baths: &baths, Sqft: &sqft, ZipCode: p.ZipCode}
}

// Score returns the 0-100 comp score of l against the reference profile.
func Score(l models.Listing, p models.PropertyProfile) int {
	return ScoreAgainst(l, ProfileTarget(p))
}

// ScoreAgainst starts at 100 and subtracts 15 per bed and 10 per bath of
// difference, 5 per whole 100 sqft of difference (10 when the listing's sqft
// is unknown), then adds 10 for a matching zip. The result is clamped to [0,100].
// A listing without beds or baths scores 0 when the target has that dimension.
func ScoreAgainst(l models.Listing, t ScoreTarget) int {
	score := 100.0

	if t.Beds != nil {
		if l.Beds == nil {
			return 0
		}
		score -= 15 * math.Abs(*l.Beds-*t.Beds)
	}
	if t.Baths != nil {
		if l.Baths == nil {
			return 0
		}
		score -= 10 * math.Abs(*l.Baths-*t.Baths)
	}
	if t.Sqft != nil {
		if l.Sqft != nil && *l.Sqft > 0 {
			score -= 5 * math.Floor(math.Abs(*l.Sqft-*t.Sqft)/100)
		} else {
			score -= 10
		}
	}
	if t.ZipCode != "" && l.ZipCode == t.ZipCode {
		score += 10
	}

	return int(math.Max(0, math.Min(100, math.Round(score))))
}

package services

import (
	"fmt"
	"sort"

	"rental-comps/models"
)

// Rank scores listings against the profile and sorts them best first.
func Rank(listings []models.Listing, p models.PropertyProfile) []models.ScoredListing {
	return RankBy(listings, ProfileTarget(p))
}

// RankBy scores listings against t and stable-sorts them by descending score,
// so equal scores keep their input order.
func RankBy(listings []models.Listing, t ScoreTarget) []models.ScoredListing {
	scored := make([]models.ScoredListing, 0, len(listings))
	for _, l := range listings {
		scored = append(scored, models.ScoredListing{
			Listing:      l,
			CompScore:    ScoreAgainst(l, t),
			PricePerSqft: pricePerSqft(l),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CompScore > scored[j].CompScore
	})
	return scored
}

// pricePerSqft is empty when the listing's sqft is unknown.
func pricePerSqft(l models.Listing) string {
	if l.Sqft == nil || *l.Sqft <= 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", l.Price / *l.Sqft)
}

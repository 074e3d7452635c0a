package services

import (
	"strings"
	"unicode"

	"rental-comps/models"
	"rental-comps/utils"
)

// Cleaner merges listings gathered from several searches into one clean set.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Merge concatenates the batches in order, drops listings without a price and
// keeps only the first listing per detail URL. Listings without a URL are
// keyed by their address.
func (c *Cleaner) Merge(batches ...[]models.Listing) []models.Listing {
	seen := utils.NewURLSet()
	total, unpriced := 0, 0
	result := make([]models.Listing, 0)

	for _, batch := range batches {
		for _, l := range batch {
			total++
			l.Address = normaliseText(l.Address)

			if l.Price <= 0 {
				c.logger.Warn("[cleaner] Dropping listing without price: %s", l.Address)
				unpriced++
				continue
			}

			key := strings.TrimSpace(l.DetailURL)
			if key == "" {
				key = "address:" + strings.ToLower(l.Address)
			}
			if !seen.Add(key) {
				c.logger.Debug("[cleaner] Duplicate skipped: %s", key)
				continue
			}

			result = append(result, l)
		}
	}

	c.logger.Info("[cleaner] Merged %d → %d listings (%d without price, %d duplicates)",
		total, len(result), unpriced, total-unpriced-seen.Size())
	return result
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}

package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mmcloughlin/geohash"

	"rental-comps/models"
)

// geohashChars is enough precision (about 150 m) to group comps by block.
const geohashChars = 7

var csvHeader = []string{
	"run_id", "rank", "comp_score", "address", "price", "beds", "baths", "sqft", "price_per_sqft",
	"zip", "days_listed", "highlights", "url", "lat", "lng", "geohash", "scraped_at",
}

// CSVWriter writes ranked comps to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one row per comp, in rank order.
func (c *CSVWriter) Write(run Run, comps []models.ScoredListing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, l := range comps {
		if err := c.writer.Write(csvRow(run, i+1, l)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func csvRow(run Run, rank int, l models.ScoredListing) []string {
	return []string{
		run.ID.String(),
		strconv.Itoa(rank),
		strconv.Itoa(l.CompScore),
		l.Address,
		formatFloat(&l.Price),
		formatFloat(l.Beds),
		formatFloat(l.Baths),
		formatFloat(l.Sqft),
		l.PricePerSqft,
		l.ZipCode,
		l.DaysListed,
		strings.Join(l.Highlights, "; "),
		l.DetailURL,
		formatFloat(l.Latitude),
		formatFloat(l.Longitude),
		listingGeohash(l.Listing),
		run.StartedAt.Format(time.RFC3339),
	}
}

// listingGeohash is empty when the listing has no coordinates.
func listingGeohash(l models.Listing) string {
	if !l.HasCoordinates() {
		return ""
	}
	return geohash.EncodeWithPrecision(*l.Latitude, *l.Longitude, geohashChars)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

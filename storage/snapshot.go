package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"rental-comps/models"
)

// WriteSnapshot saves the unscored listings as indented JSON, replacing any previous file.
func WriteSnapshot(path string, listings []models.Listing) error {
	if listings == nil {
		listings = []models.Listing{}
	}
	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// LoadSnapshot reads listings saved by WriteSnapshot.
func LoadSnapshot(path string) ([]models.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %q: %w", path, err)
	}
	var listings []models.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("snapshot: decode %q: %w", path, err)
	}
	return listings, nil
}

// WriteReport saves the rendered report text.
func WriteReport(path, report string) error {
	return writeFile(path, []byte(report))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("storage: create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("storage: write %q: %w", path, err)
	}
	return nil
}

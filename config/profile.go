package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v2"

	"rental-comps/models"
)

// DefaultProfile is the reference property used when no profile file exists.
func DefaultProfile() models.PropertyProfile {
	return models.PropertyProfile{
		Beds:         5,
		Baths:        3,
		Sqft:         2400,
		LotSqft:      10000,
		Stories:      2,
		GarageSpaces: 2,
		YearBuilt:    1984,
		ZipCode:      "85022",
		Area:         "Moon Valley",
		Features:     []string{"fresh flooring", "fresh paint"},
	}
}

// LoadProfile reads the reference property from a YAML file. A missing file
// yields DefaultProfile; keys absent from the file keep their default values.
func LoadProfile(path string) (models.PropertyProfile, error) {
	profile := DefaultProfile()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return profile, nil
	}
	if err != nil {
		return profile, fmt.Errorf("profile: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("profile: parse %q: %w", path, err)
	}
	if profile.Beds <= 0 || profile.Baths <= 0 || profile.Sqft <= 0 {
		return profile, fmt.Errorf("profile: %q needs positive beds, baths and sqft", path)
	}
	return profile, nil
}

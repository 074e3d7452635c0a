package zillow

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"rental-comps/models"
)

var trailingZipRegexp = regexp.MustCompile(`\b(\d{5})(?:-\d{4})?\s*$`)

// normalizeItem turns one raw listResults entry into a Listing. It reports
// false when the item has no address or no recoverable price.
func normalizeItem(raw json.RawMessage) (models.Listing, bool) {
	var item rawItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return models.Listing{}, false
	}

	address, ok := resolveAddress(item)
	if !ok {
		return models.Listing{}, false
	}
	price, ok := resolvePrice(item)
	if !ok {
		return models.Listing{}, false
	}

	listing := models.Listing{
		Address:    address,
		Price:      price,
		Beds:       item.Beds.ptr(),
		Baths:      item.Baths.ptr(),
		Sqft:       resolveSqft(item),
		ZipCode:    resolveZip(item, address),
		DetailURL:  resolveDetailURL(item.DetailURL.String()),
		DaysListed: models.DaysListedNew,
		ImageURL:   resolveImage(item),
		Highlights: resolveHighlights(item),
		Source:     models.SourceZillow,
	}
	if d := item.TimeOnZillow.String(); d != "" {
		listing.DaysListed = d
	}
	listing.Latitude, listing.Longitude = resolveCoordinates(item)
	if year, ok := item.YearBuilt.positive(); ok {
		y := int(year)
		listing.YearBuilt = &y
	}

	return listing, true
}

// resolveAddress prefers the structured street components and falls back to
// the flat address string.
func resolveAddress(item rawItem) (string, bool) {
	if street := item.AddressStreet.String(); street != "" {
		parts := []string{street}
		if city := item.AddressCity.String(); city != "" {
			parts = append(parts, city)
		}
		stateZip := strings.TrimSpace(item.AddressState.String() + " " + item.AddressZipcode.String())
		if stateZip != "" {
			parts = append(parts, stateZip)
		}
		return strings.Join(parts, ", "), true
	}
	if address := item.Address.String(); address != "" {
		return address, true
	}
	return "", false
}

func resolvePrice(item rawItem) (float64, bool) {
	if v, ok := item.UnformattedPrice.positive(); ok {
		return v, true
	}
	return item.Price.positive()
}

func resolveSqft(item rawItem) *float64 {
	if v, ok := item.Area.positive(); ok {
		return &v
	}
	if v, ok := item.LivingArea.positive(); ok {
		return &v
	}
	return nil
}

func resolveZip(item rawItem, address string) string {
	if zip := item.AddressZipcode.String(); zip != "" {
		return zip
	}
	if m := trailingZipRegexp.FindStringSubmatch(address); m != nil {
		return m[1]
	}
	return ""
}

// resolveDetailURL makes a site-relative detail path absolute.
func resolveDetailURL(raw string) string {
	if raw == "" || strings.HasPrefix(raw, "http") {
		return raw
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return siteOrigin + raw
}

func resolveCoordinates(item rawItem) (lat, lng *float64) {
	return firstNonZero(item.LatLong.Latitude, item.Latitude),
		firstNonZero(item.LatLong.Longitude, item.Longitude)
}

func firstNonZero(values ...flexNumber) *float64 {
	for _, v := range values {
		if v.valid && v.value != 0 {
			return v.ptr()
		}
	}
	return nil
}

type rawPhoto struct {
	URL string `json:"url"`
}

// resolveImage picks the direct image, then the first carousel photo, then the first photo.
func resolveImage(item rawItem) string {
	if src := item.ImgSrc.String(); src != "" {
		return src
	}
	if len(item.CarouselPhotos) > 0 {
		if u := photoURL(item.CarouselPhotos[0]); u != "" {
			return u
		}
	}
	if len(item.Photos) > 0 {
		return photoURL(item.Photos[0])
	}
	return ""
}

// photoURL reads a photo entry that is either a bare URL string or an object with a url.
func photoURL(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return strings.TrimSpace(s)
	}
	var p rawPhoto
	if json.Unmarshal(raw, &p) == nil {
		return strings.TrimSpace(p.URL)
	}
	return ""
}

// resolveHighlights derives tags from item flags in a fixed order.
func resolveHighlights(item rawItem) []string {
	l := models.Listing{Highlights: []string{}}

	if lot := item.LotAreaString.String(); lot != "" {
		l.AddHighlight(lot + " lot")
	}
	if item.HasGarage {
		l.AddHighlight("Garage")
	}
	if item.Has3DModel || item.Has3DTour {
		l.AddHighlight("3D Tour")
	}
	if item.HasPool {
		l.AddHighlight("Pool")
	}
	if item.IsNewConstruction {
		l.AddHighlight("New Build")
	}
	if year, ok := item.YearBuilt.positive(); ok {
		l.AddHighlight("Built " + strconv.Itoa(int(year)))
	}
	l.AddHighlight(item.PropertyTypeDimension.String())
	if item.ListingSubType.IsOpenHouse {
		l.AddHighlight("Open House")
	}

	return l.Highlights
}

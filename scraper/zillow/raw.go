package zillow

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// numberRegexp captures the first numeric value once thousands separators are removed.
var numberRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)

// rawItem is one entry of a listResults array. Every scalar is decoded
// leniently: a value of an unexpected type reads as absent instead of
// failing the whole item.
type rawItem struct {
	AddressStreet  flexString `json:"addressStreet"`
	AddressCity    flexString `json:"addressCity"`
	AddressState   flexString `json:"addressState"`
	AddressZipcode flexString `json:"addressZipcode"`
	Address        flexString `json:"address"`

	UnformattedPrice flexNumber `json:"unformattedPrice"`
	Price            flexNumber `json:"price"`

	Beds       flexNumber `json:"beds"`
	Baths      flexNumber `json:"baths"`
	Area       flexNumber `json:"area"`
	LivingArea flexNumber `json:"livingArea"`

	DetailURL    flexString `json:"detailUrl"`
	TimeOnZillow flexString `json:"timeOnZillow"`

	LatLong   rawLatLong `json:"latLong"`
	Latitude  flexNumber `json:"latitude"`
	Longitude flexNumber `json:"longitude"`

	ImgSrc         flexString `json:"imgSrc"`
	CarouselPhotos flexList   `json:"carouselPhotos"`
	Photos         flexList   `json:"photos"`

	LotAreaString         flexString `json:"lotAreaString"`
	HasGarage             flexBool   `json:"hasGarage"`
	Has3DModel            flexBool   `json:"has3DModel"`
	Has3DTour             flexBool   `json:"has3DTour"`
	HasPool               flexBool   `json:"hasPool"`
	IsNewConstruction     flexBool   `json:"isNewConstruction"`
	YearBuilt             flexNumber `json:"yearBuilt"`
	PropertyTypeDimension flexString `json:"propertyTypeDimension"`
	ListingSubType        rawSubType `json:"listingSubType"`
}

type rawLatLong struct {
	Latitude  flexNumber `json:"latitude"`
	Longitude flexNumber `json:"longitude"`
}

func (l *rawLatLong) UnmarshalJSON(data []byte) error {
	type plain rawLatLong
	var p plain
	if json.Unmarshal(data, &p) == nil {
		*l = rawLatLong(p)
	}
	return nil
}

type rawSubType struct {
	IsOpenHouse flexBool `json:"is_openHouse"`
}

func (s *rawSubType) UnmarshalJSON(data []byte) error {
	type plain rawSubType
	var p plain
	if json.Unmarshal(data, &p) == nil {
		*s = rawSubType(p)
	}
	return nil
}

// flexNumber accepts JSON numbers, numeric strings and formatted amounts such as "$2,400/mo".
type flexNumber struct {
	value float64
	valid bool
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case float64:
		n.value, n.valid = x, true
	case string:
		n.value, n.valid = parseAmount(x)
	}
	return nil
}

// positive returns the value when it is present and greater than zero.
func (n flexNumber) positive() (float64, bool) {
	if !n.valid || n.value <= 0 {
		return 0, false
	}
	return n.value, true
}

func (n flexNumber) ptr() *float64 {
	if !n.valid {
		return nil
	}
	v := n.value
	return &v
}

// parseAmount reads the first number out of a display string.
func parseAmount(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	match := numberRegexp.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// flexString accepts strings and numbers; numbers are rendered without a trailing ".0".
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case string:
		*s = flexString(strings.TrimSpace(x))
	case float64:
		*s = flexString(strconv.FormatFloat(x, 'f', -1, 64))
	}
	return nil
}

func (s flexString) String() string { return string(s) }

// flexBool is true for true, non-zero numbers and non-empty strings other than "false".
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case bool:
		*b = flexBool(x)
	case float64:
		*b = x != 0
	case string:
		*b = flexBool(x != "" && !strings.EqualFold(x, "false"))
	}
	return nil
}

// flexList keeps the elements of a JSON array; anything else reads as empty.
type flexList []json.RawMessage

func (l *flexList) UnmarshalJSON(data []byte) error {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return nil
	}
	var items []json.RawMessage
	if json.Unmarshal(data, &items) == nil {
		*l = items
	}
	return nil
}

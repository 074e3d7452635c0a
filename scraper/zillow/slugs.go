package zillow

// DefaultAreaSlugs maps normalized location text to Zillow search path segments.
var DefaultAreaSlugs = map[string]string{
	"moon valley": "moon-valley-canyon-phoenix-az",
	"85022":       "phoenix-az-85022",
	"85023":       "phoenix-az-85023",
	"85020":       "phoenix-az-85020",
	"85024":       "phoenix-az-85024",
	"85028":       "phoenix-az-85028",
	"85032":       "phoenix-az-85032",
	"85050":       "phoenix-az-85050",
	"85016":       "phoenix-az-85016",
	"85018":       "phoenix-az-85018",
	"85014":       "phoenix-az-85014",
	"85015":       "phoenix-az-85015",
	"85029":       "phoenix-az-85029",
	"85051":       "phoenix-az-85051",
	"85053":       "phoenix-az-85053",
}

// Region holds the templates used when a location is not in the table.
type Region struct {
	// ZipPrefix is joined with a detected zip code: "<ZipPrefix>-<zip>".
	ZipPrefix string
	// Suffix is appended to slugified free text that does not already contain it.
	Suffix string
}

// DefaultRegion is the Phoenix, AZ search region.
var DefaultRegion = Region{ZipPrefix: "phoenix-az", Suffix: "-az"}

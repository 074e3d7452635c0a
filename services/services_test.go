package services

import (
	"io"

	"rental-comps/models"
	"rental-comps/utils"
)

func newTestLogger() *utils.Logger {
	return utils.NewLoggerWithOptions(utils.LoggerOptions{Writer: io.Discard})
}

func ptr(v float64) *float64 { return &v }

func moonValleyProfile() models.PropertyProfile {
	return models.PropertyProfile{Beds: 5, Baths: 3, Sqft: 2400, ZipCode: "85022", Area: "Moon Valley"}
}

package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"rental-comps/models"
	"rental-comps/utils"
)

// DefaultReportTimezone is used for the report timestamp when none is configured.
const DefaultReportTimezone = "America/Phoenix"

// InsightService computes market statistics over ranked comps and renders the text report.
type InsightService struct {
	logger   *utils.Logger
	location *time.Location
	printer  *message.Printer
	now      func() time.Time
}

// NewInsightService creates an InsightService that stamps reports in the
// named IANA timezone. An unknown zone falls back to UTC.
func NewInsightService(logger *utils.Logger, timezone string) *InsightService {
	if timezone == "" {
		timezone = DefaultReportTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("[insights] Unknown timezone %q, using UTC: %v", timezone, err)
		loc = time.UTC
	}
	return &InsightService{
		logger:   logger,
		location: loc,
		printer:  message.NewPrinter(language.AmericanEnglish),
		now:      time.Now,
	}
}

// Generate computes the summary statistics. Ranked keeps the order it is given.
func (s *InsightService) Generate(scored []models.ScoredListing, profile models.PropertyProfile) *models.CompReport {
	report := &models.CompReport{
		GeneratedAt: s.now().In(s.location),
		Profile:     profile,
		Count:       len(scored),
		Ranked:      scored,
	}
	if len(scored) == 0 {
		return report
	}

	prices := make([]float64, 0, len(scored))
	var total, ppsfTotal float64
	var withSqft int
	for _, l := range scored {
		prices = append(prices, l.Price)
		total += l.Price
		if l.Sqft != nil && *l.Sqft > 0 {
			ppsfTotal += l.Price / *l.Sqft
			withSqft++
		}
	}
	sort.Float64s(prices)

	report.AveragePrice = total / float64(len(prices))
	// Even counts take the upper of the two middle values.
	report.MedianPrice = prices[len(prices)/2]
	report.MinPrice = prices[0]
	report.MaxPrice = prices[len(prices)-1]

	if withSqft > 0 {
		report.AvgPricePerSqft = ppsfTotal / float64(withSqft)
		report.SuggestedLow = float64(profile.Sqft) * report.AvgPricePerSqft * 0.95
		report.SuggestedHigh = float64(profile.Sqft) * report.AvgPricePerSqft * 1.05
	}

	s.logger.Debug("[insights] %d comps, avg $%.0f, median $%.0f, %d with sqft",
		report.Count, report.AveragePrice, report.MedianPrice, withSqft)
	return report
}

// Render formats the report as plain text.
func (s *InsightService) Render(r *models.CompReport) string {
	var b strings.Builder
	p := r.Profile

	title := "RENTAL COMP REPORT"
	if p.Area != "" {
		title = cases.Upper(language.English).String(p.Area) + " " + title
	}
	fmt.Fprintf(&b, "\n🏠 %s\n", title)
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.In(s.location).Format("1/2/2006, 3:04:05 PM"))
	fmt.Fprintf(&b, "Your Property: %dbd/%gba, %s sqft\n\n", p.Beds, p.Baths, s.printer.Sprintf("%d", p.Sqft))

	fmt.Fprintf(&b, "📊 MARKET SUMMARY (%d comps found)\n", r.Count)
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 40))
	if r.Count == 0 {
		b.WriteString("  No comps found\n")
		return b.String()
	}
	fmt.Fprintf(&b, "  Average Rent:    %s/mo\n", s.money(math.Round(r.AveragePrice)))
	fmt.Fprintf(&b, "  Median Rent:     %s/mo\n", s.money(r.MedianPrice))
	fmt.Fprintf(&b, "  Range:           %s - %s/mo\n", s.money(r.MinPrice), s.money(r.MaxPrice))
	if r.AvgPricePerSqft > 0 {
		fmt.Fprintf(&b, "  Avg $/sqft:      $%.2f/sqft\n", r.AvgPricePerSqft)
		fmt.Fprintf(&b, "  Suggested Range: %s - %s/mo\n",
			s.money(math.Round(r.SuggestedLow)), s.money(math.Round(r.SuggestedHigh)))
	}

	b.WriteString("\n📋 LISTINGS BY COMP SCORE\n")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 40))

	for _, l := range r.Ranked {
		fmt.Fprintf(&b, "\n  %s\n", l.Address)
		fmt.Fprintf(&b, "  %s/mo | %sbd/%sba | %s", s.money(l.Price), count(l.Beds), count(l.Baths), s.sqft(l.Sqft))
		if l.PricePerSqft != "" {
			fmt.Fprintf(&b, " | $%s/sqft", l.PricePerSqft)
		}
		b.WriteString("\n")

		days := l.DaysListed
		if days == "" {
			days = models.DaysListedNew
		}
		fmt.Fprintf(&b, "  Comp Score: %d/100 | %s | %s\n", l.CompScore, l.ZipCode, days)
		fmt.Fprintf(&b, "  %s\n", l.DetailURL)
	}

	return b.String()
}

// Print writes the rendered report to stdout.
func (s *InsightService) Print(r *models.CompReport) {
	fmt.Print(s.Render(r))
}

// money renders whole amounts with thousands separators and keeps cents otherwise.
func (s *InsightService) money(v float64) string {
	if v == math.Trunc(v) {
		return s.printer.Sprintf("$%d", int64(v))
	}
	return s.printer.Sprintf("$%.2f", v)
}

func (s *InsightService) sqft(v *float64) string {
	if v == nil || *v <= 0 {
		return "sqft N/A"
	}
	return s.printer.Sprintf("%d sqft", int64(*v))
}

func count(v *float64) string {
	if v == nil {
		return "?"
	}
	return fmt.Sprintf("%g", *v)
}

package services

import (
	"bytes"
	"strings"
	"testing"

	"rental-comps/models"
	"rental-comps/utils"
)

func TestCleanerMergeDeduplicatesURL(t *testing.T) {
	c := NewCleaner(newTestLogger())

	moonValley := []models.Listing{
		{Address: "1 A St", Price: 2000, DetailURL: "https://www.zillow.com/homedetails/1/"},
		{Address: "2 B St", Price: 2100, DetailURL: "https://www.zillow.com/homedetails/2/"},
	}
	zip85022 := []models.Listing{
		{Address: "2 B St (dup)", Price: 2150, DetailURL: "https://www.zillow.com/homedetails/2/"},
		{Address: "3 C St", Price: 2200, DetailURL: "https://www.zillow.com/homedetails/3/"},
	}

	merged := c.Merge(moonValley, zip85022)

	want := []string{"1 A St", "2 B St", "3 C St"}
	if len(merged) != len(want) {
		t.Fatalf("merged %d listings; want %d", len(merged), len(want))
	}
	for i, addr := range want {
		if merged[i].Address != addr {
			t.Errorf("merged[%d] = %q; want %q", i, merged[i].Address, addr)
		}
	}
}

func TestCleanerMergeWithoutURL(t *testing.T) {
	c := NewCleaner(newTestLogger())

	merged := c.Merge([]models.Listing{
		{Address: "  9  Elm   St ", Price: 1800},
		{Address: "9 elm st", Price: 1850},
		{Address: "10 Elm St", Price: 0},
	})

	if len(merged) != 1 {
		t.Fatalf("merged %d listings; want 1: %+v", len(merged), merged)
	}
	if merged[0].Address != "9 Elm St" {
		t.Errorf("Address = %q; want normalised %q", merged[0].Address, "9 Elm St")
	}
}

func TestCleanerMergeEmpty(t *testing.T) {
	c := NewCleaner(newTestLogger())
	if got := c.Merge(); got == nil || len(got) != 0 {
		t.Errorf("Merge() = %#v; want empty non-nil", got)
	}
}

func TestCleanerMergeLogsDropCounts(t *testing.T) {
	var buf bytes.Buffer
	c := NewCleaner(utils.NewLoggerWithOptions(utils.LoggerOptions{Writer: &buf}))

	merged := c.Merge(
		[]models.Listing{
			{Address: "1 A St", Price: 2000, DetailURL: "https://www.zillow.com/homedetails/1/"},
			{Address: "4 D St", Price: 0, DetailURL: "https://www.zillow.com/homedetails/4/"},
		},
		[]models.Listing{
			{Address: "1 A St", Price: 2050, DetailURL: "https://www.zillow.com/homedetails/1/"},
			{Address: "5 E St", Price: 2300},
		},
	)

	if len(merged) != 2 {
		t.Fatalf("merged %d listings; want 2", len(merged))
	}
	if out := buf.String(); !strings.Contains(out, "Merged 4 → 2 listings (1 without price, 1 duplicates)") {
		t.Errorf("merge summary missing from log:\n%s", out)
	}
}

package services

import (
	"testing"

	"rental-comps/models"
)

func TestRankSortsByScore(t *testing.T) {
	listings := []models.Listing{
		{Address: "far", Beds: ptr(2), Baths: ptr(1), Sqft: ptr(900), Price: 1200},
		{Address: "exact", Beds: ptr(5), Baths: ptr(3), Sqft: ptr(2400), ZipCode: "85022", Price: 2400},
		{Address: "close", Beds: ptr(4), Baths: ptr(3), Sqft: ptr(2200), Price: 2100},
	}

	ranked := Rank(listings, moonValleyProfile())

	want := []string{"exact", "close", "far"}
	for i, addr := range want {
		if ranked[i].Address != addr {
			t.Errorf("ranked[%d] = %q; want %q", i, ranked[i].Address, addr)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].CompScore < ranked[i].CompScore {
			t.Errorf("not descending at %d: %d < %d", i, ranked[i-1].CompScore, ranked[i].CompScore)
		}
	}
}

func TestRankIsStable(t *testing.T) {
	same := func(addr string) models.Listing {
		return models.Listing{Address: addr, Beds: ptr(4), Baths: ptr(2), Sqft: ptr(2000), Price: 2000}
	}
	listings := []models.Listing{
		same("first"),
		{Address: "best", Beds: ptr(5), Baths: ptr(3), Sqft: ptr(2400), ZipCode: "85022", Price: 2500},
		same("second"),
		same("third"),
	}

	ranked := Rank(listings, moonValleyProfile())

	want := []string{"best", "first", "second", "third"}
	for i, addr := range want {
		if ranked[i].Address != addr {
			t.Errorf("ranked[%d] = %q; want %q", i, ranked[i].Address, addr)
		}
	}
}

func TestRankPricePerSqft(t *testing.T) {
	listings := []models.Listing{
		{Address: "a", Beds: ptr(5), Baths: ptr(3), Sqft: ptr(2400), Price: 2400},
		{Address: "b", Beds: ptr(5), Baths: ptr(3), Price: 2000},
		{Address: "c", Beds: ptr(5), Baths: ptr(3), Sqft: ptr(1500), Price: 2000},
	}

	ranked := Rank(listings, moonValleyProfile())

	got := map[string]string{}
	for _, l := range ranked {
		got[l.Address] = l.PricePerSqft
	}
	want := map[string]string{"a": "1.00", "b": "", "c": "1.33"}
	for addr, w := range want {
		if got[addr] != w {
			t.Errorf("PricePerSqft(%s) = %q; want %q", addr, got[addr], w)
		}
	}
}

func TestRankEmpty(t *testing.T) {
	if got := Rank(nil, moonValleyProfile()); len(got) != 0 {
		t.Errorf("Rank(nil) = %v; want empty", got)
	}
}

package analytics

import (
	"reflect"
	"testing"
)

func TestRoutePopularityRanking(t *testing.T) {
	records := flights(
		flight("SYD", "MEL", "2025-07-07", 300, true),
		flight("SYD", "MEL", "2025-07-07", 340, false),
		flight("SYD", "BNE", "2025-07-08", 200, false),
	)

	got := RoutePopularity(records, 5)
	want := []RouteStat{
		{Route: "SYD-MEL", FlightCount: 2, AveragePrice: 320, DemandScore: 85},
		{Route: "SYD-BNE", FlightCount: 1, AveragePrice: 200, DemandScore: 35},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RoutePopularity = %+v, want %+v", got, want)
	}
}

func TestRoutePopularityTruncatesToLimit(t *testing.T) {
	records := flights(
		flight("SYD", "MEL", "2025-07-07", 300, false),
		flight("SYD", "BNE", "2025-07-07", 200, false),
		flight("MEL", "PER", "2025-07-07", 400, false),
	)
	got := RoutePopularity(records, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(got))
	}
}

func TestRoutePopularityNeverPads(t *testing.T) {
	got := RoutePopularity(flights(flight("SYD", "MEL", "2025-07-07", 300, false)), 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 route, got %d", len(got))
	}
}

func TestRoutePopularityTieBreaks(t *testing.T) {
	// Equal counts: higher average price wins; equal prices fall back to
	// the route string.
	records := flights(
		flight("SYD", "BNE", "2025-07-07", 200, false),
		flight("SYD", "MEL", "2025-07-07", 300, false),
		flight("ADL", "PER", "2025-07-07", 300, false),
	)
	got := RoutePopularity(records, 5)
	wantOrder := []string{"ADL-PER", "SYD-MEL", "SYD-BNE"}
	for i, want := range wantOrder {
		if got[i].Route != want {
			t.Fatalf("position %d = %s, want %s (full: %+v)", i, got[i].Route, want, got)
		}
	}
}

func TestRoutePopularityOrderedPairsAreDistinct(t *testing.T) {
	// SYD-MEL and MEL-SYD are different routes.
	records := flights(
		flight("SYD", "MEL", "2025-07-07", 300, false),
		flight("MEL", "SYD", "2025-07-07", 310, false),
	)
	got := RoutePopularity(records, 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 distinct routes, got %d: %+v", len(got), got)
	}
}

func TestRoutePopularityEmptyWindow(t *testing.T) {
	got := RoutePopularity(nil, 5)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil ranking, got %#v", got)
	}
}

package analytics

import (
	"reflect"
	"testing"
)

func TestDemandHeatmapAxesAndCells(t *testing.T) {
	records := flights(
		flight("SYD", "MEL", "2025-07-07", 300, true),
		flight("SYD", "MEL", "2025-07-07", 340, false),
		flight("BNE", "PER", "2025-07-08", 500, false),
	)

	got := DemandHeatmap(records)

	if !reflect.DeepEqual(got.Origins, []string{"BNE", "SYD"}) {
		t.Fatalf("origins = %v", got.Origins)
	}
	if !reflect.DeepEqual(got.Destinations, []string{"MEL", "PER"}) {
		t.Fatalf("destinations = %v", got.Destinations)
	}
	wantCells := []HeatmapCell{
		{Origin: "BNE", Destination: "PER", DemandScore: 35},
		{Origin: "SYD", Destination: "MEL", DemandScore: 85},
	}
	if !reflect.DeepEqual(got.Cells, wantCells) {
		t.Fatalf("cells = %+v, want %+v", got.Cells, wantCells)
	}
}

func TestDemandHeatmapCellsSubsetOfAxes(t *testing.T) {
	records := flights(
		flight("SYD", "MEL", "2025-07-07", 300, false),
		flight("MEL", "SYD", "2025-07-07", 280, false),
		flight("SYD", "BNE", "2025-07-08", 200, true),
	)
	got := DemandHeatmap(records)

	origins := make(map[string]bool)
	for _, o := range got.Origins {
		origins[o] = true
	}
	dests := make(map[string]bool)
	for _, d := range got.Destinations {
		dests[d] = true
	}
	for _, cell := range got.Cells {
		if !origins[cell.Origin] || !dests[cell.Destination] {
			t.Fatalf("cell %+v outside axes %v x %v", cell, got.Origins, got.Destinations)
		}
	}
}

func TestDemandHeatmapAxesAreIndependent(t *testing.T) {
	// MEL appears only as an origin here; it must not leak into the
	// destination axis, and no MEL-* cell may be fabricated.
	records := flights(
		flight("MEL", "SYD", "2025-07-07", 280, false),
		flight("SYD", "BNE", "2025-07-07", 200, false),
	)
	got := DemandHeatmap(records)
	for _, d := range got.Destinations {
		if d == "MEL" {
			t.Fatalf("MEL must not be a destination: %v", got.Destinations)
		}
	}
	if len(got.Cells) != 2 {
		t.Fatalf("expected exactly 2 cells, got %+v", got.Cells)
	}
}

func TestDemandHeatmapEmptyWindow(t *testing.T) {
	got := DemandHeatmap(nil)
	if len(got.Origins) != 0 || len(got.Destinations) != 0 || len(got.Cells) != 0 {
		t.Fatalf("expected empty matrix, got %+v", got)
	}
	if got.Origins == nil || got.Destinations == nil || got.Cells == nil {
		t.Fatalf("empty matrix fields must be non-nil: %#v", got)
	}
}

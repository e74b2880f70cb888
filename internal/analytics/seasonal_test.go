package analytics

import (
	"testing"
	"time"
)

func TestSeasonOfMapping(t *testing.T) {
	cases := []struct {
		month time.Month
		want  Season
	}{
		{time.December, SeasonSummer},
		{time.January, SeasonSummer},
		{time.February, SeasonSummer},
		{time.March, SeasonAutumn},
		{time.May, SeasonAutumn},
		{time.June, SeasonWinter},
		{time.August, SeasonWinter},
		{time.September, SeasonSpring},
		{time.November, SeasonSpring},
	}
	for _, tc := range cases {
		d := time.Date(2025, tc.month, 15, 0, 0, 0, 0, time.UTC)
		if got := SeasonOf(d); got != tc.want {
			t.Errorf("SeasonOf(%s) = %s, want %s", tc.month, got, tc.want)
		}
	}
}

func TestSeasonalDistributionAlwaysFourBuckets(t *testing.T) {
	got := SeasonalDistribution(nil)
	if len(got) != 4 {
		t.Fatalf("expected 4 buckets for empty window, got %d", len(got))
	}
	for i, want := range Seasons {
		if got[i].Season != want {
			t.Fatalf("bucket %d = %s, want %s", i, got[i].Season, want)
		}
		if got[i].FlightCount != 0 || got[i].AverageDemandScore != 0 {
			t.Fatalf("empty window bucket not zeroed: %+v", got[i])
		}
	}
}

func TestSeasonalDistributionBucketsByDepartureMonth(t *testing.T) {
	records := flights(
		flight("SYD", "MEL", "2025-07-07", 300, true),  // winter
		flight("SYD", "MEL", "2025-07-14", 320, false), // winter
		flight("SYD", "BNE", "2025-12-20", 400, true),  // summer
	)
	got := SeasonalDistribution(records)
	if len(got) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(got))
	}
	byName := make(map[Season]SeasonBucket, 4)
	for _, b := range got {
		byName[b.Season] = b
	}
	if byName[SeasonWinter].FlightCount != 2 {
		t.Fatalf("winter count = %d, want 2", byName[SeasonWinter].FlightCount)
	}
	if byName[SeasonSummer].FlightCount != 1 {
		t.Fatalf("summer count = %d, want 1", byName[SeasonSummer].FlightCount)
	}
	if byName[SeasonAutumn].FlightCount != 0 || byName[SeasonSpring].FlightCount != 0 {
		t.Fatalf("expected empty autumn and spring buckets: %+v", got)
	}
}

func TestSeasonalScoresMatchHeatmap(t *testing.T) {
	// A single-route window: every record carries its route's score, so
	// the seasonal average must equal the heatmap cell score exactly.
	records := flights(
		flight("SYD", "MEL", "2025-07-07", 300, true),
		flight("SYD", "MEL", "2025-07-14", 320, false),
	)
	matrix := DemandHeatmap(records)
	seasonal := SeasonalDistribution(records)

	var winter SeasonBucket
	for _, b := range seasonal {
		if b.Season == SeasonWinter {
			winter = b
		}
	}
	if winter.AverageDemandScore != matrix.Cells[0].DemandScore {
		t.Fatalf("seasonal score %v != heatmap score %v", winter.AverageDemandScore, matrix.Cells[0].DemandScore)
	}
}

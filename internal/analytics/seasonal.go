package analytics

import (
	"github.com/iliyamo/flight-demand-dashboard/internal/model"
)

// SeasonBucket is one season's slice of the seasonal distribution.
type SeasonBucket struct {
	Season             Season  `json:"season"`
	FlightCount        int     `json:"flight_count"`
	AverageDemandScore float64 `json:"average_demand_score"`
}

// SeasonalDistribution buckets records into the four fixed seasons and
// averages the per-record demand scores in each bucket. A record's
// demand score is the score of its route group within the same window,
// so the seasonal view and the heatmap stay consistent. All four
// buckets are always present, in summer/autumn/winter/spring order,
// even for an empty window.
func SeasonalDistribution(records []model.Flight) []SeasonBucket {
	groups, maxCount := groupByRoute(records)

	routeScore := make(map[string]float64, len(groups))
	for key, g := range groups {
		routeScore[key] = Score(g.count, maxCount, g.holidayRatio())
	}

	type bucket struct {
		count    int
		scoreSum float64
	}
	bySeason := make(map[Season]*bucket, len(Seasons))
	for _, s := range Seasons {
		bySeason[s] = &bucket{}
	}
	for _, f := range records {
		b := bySeason[SeasonOf(f.DepartureDate)]
		b.count++
		b.scoreSum += routeScore[f.Route()]
	}

	out := make([]SeasonBucket, 0, len(Seasons))
	for _, s := range Seasons {
		b := bySeason[s]
		sb := SeasonBucket{Season: s, FlightCount: b.count}
		if b.count > 0 {
			sb.AverageDemandScore = round2(b.scoreSum / float64(b.count))
		}
		out = append(out, sb)
	}
	return out
}

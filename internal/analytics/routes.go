package analytics

import (
	"sort"

	"github.com/iliyamo/flight-demand-dashboard/internal/model"
)

// RouteStat is one row of the route-popularity ranking.
type RouteStat struct {
	Route        string  `json:"route"` // "ORIGIN-DEST"
	FlightCount  int     `json:"flight_count"`
	AveragePrice float64 `json:"average_price"`
	DemandScore  float64 `json:"demand_score"`
}

// RoutePopularity ranks routes by observed volume and truncates the
// ranking to limit entries. Ordering is fully deterministic: flight
// count descending, then average price descending, then route string
// ascending. When fewer distinct routes exist than limit, all of them
// are returned; the result is never padded.
func RoutePopularity(records []model.Flight, limit int) []RouteStat {
	groups, maxCount := groupByRoute(records)

	stats := make([]RouteStat, 0, len(groups))
	for key, g := range groups {
		stats = append(stats, RouteStat{
			Route:        key,
			FlightCount:  g.count,
			AveragePrice: round2(g.averagePrice()),
			DemandScore:  Score(g.count, maxCount, g.holidayRatio()),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].FlightCount != stats[j].FlightCount {
			return stats[i].FlightCount > stats[j].FlightCount
		}
		if stats[i].AveragePrice != stats[j].AveragePrice {
			return stats[i].AveragePrice > stats[j].AveragePrice
		}
		return stats[i].Route < stats[j].Route
	})

	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

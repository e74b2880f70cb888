package analytics

import (
	"math"

	"github.com/iliyamo/flight-demand-dashboard/internal/model"
)

// Scoring weights. Volume dominates: a route is "in demand" primarily
// because people fly it a lot, with the holiday share as a secondary
// signal. Price is shown next to scores on the views but is never a
// scoring input, since a high price can mean either hot demand or thin
// availability.
const (
	volumeWeight  = 0.7
	holidayWeight = 0.3
)

// Score computes the demand score for one group of flights on a 0-100
// scale. flightCount is the group's size, maxFlightCount the largest
// group size within the same aggregation batch, and holidayRatio the
// fraction of the group's departures that fall in a holiday period.
// maxFlightCount is always recomputed per invocation so scores are
// relative to the current window, never to a global constant.
func Score(flightCount, maxFlightCount int, holidayRatio float64) float64 {
	if flightCount <= 0 || maxFlightCount <= 0 {
		return 0
	}
	volume := float64(flightCount) / float64(maxFlightCount)
	s := 100 * (volumeWeight*volume + holidayWeight*holidayRatio)
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return round2(s)
}

// routeGroup accumulates the per-route figures every route-keyed view
// is derived from. Sums stay unrounded until output so rounding error
// never compounds.
type routeGroup struct {
	origin       string
	destination  string
	count        int
	priceSum     float64
	holidayCount int
}

func (g *routeGroup) averagePrice() float64 {
	if g.count == 0 {
		return 0
	}
	return g.priceSum / float64(g.count)
}

func (g *routeGroup) holidayRatio() float64 {
	if g.count == 0 {
		return 0
	}
	return float64(g.holidayCount) / float64(g.count)
}

// groupByRoute buckets records by ordered (origin, destination) pair
// and reports the largest group size, the normalization base for Score.
func groupByRoute(records []model.Flight) (map[string]*routeGroup, int) {
	groups := make(map[string]*routeGroup)
	maxCount := 0
	for _, f := range records {
		key := f.Route()
		g, ok := groups[key]
		if !ok {
			g = &routeGroup{origin: f.Origin, destination: f.Destination}
			groups[key] = g
		}
		g.count++
		g.priceSum += f.Price
		if f.IsHolidayPeriod {
			g.holidayCount++
		}
		if g.count > maxCount {
			maxCount = g.count
		}
	}
	return groups, maxCount
}

// round2 rounds to two decimal places for output values.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

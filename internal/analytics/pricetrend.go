package analytics

import (
	"sort"

	"github.com/iliyamo/flight-demand-dashboard/internal/model"
)

// PricePoint is one day on the price-trend chart.
type PricePoint struct {
	Date         string  `json:"date"` // departure date, YYYY-MM-DD
	AveragePrice float64 `json:"average_price"`
	FlightCount  int     `json:"flight_count"`
}

// PriceTrend groups records by departure date and returns one point per
// distinct date, ordered ascending. A single-day window still yields a
// one-point series. Averages accumulate unrounded and are rounded to
// two decimals only on output.
func PriceTrend(records []model.Flight) []PricePoint {
	type daily struct {
		priceSum float64
		count    int
	}
	byDate := make(map[string]*daily)
	for _, f := range records {
		key := f.DepartureDate.Format("2006-01-02")
		d, ok := byDate[key]
		if !ok {
			d = &daily{}
			byDate[key] = d
		}
		d.priceSum += f.Price
		d.count++
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates) // ISO dates sort chronologically as strings

	points := make([]PricePoint, 0, len(dates))
	for _, date := range dates {
		d := byDate[date]
		points = append(points, PricePoint{
			Date:         date,
			AveragePrice: round2(d.priceSum / float64(d.count)),
			FlightCount:  d.count,
		})
	}
	return points
}

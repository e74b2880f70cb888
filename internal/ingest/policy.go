// Package ingest turns raw provider offers into classified, validated
// flight rows and appends them to the record store. Classification
// (domestic/international, holiday period) happens exactly once here;
// the aggregation engine reads the stored flags and never recomputes
// them.
package ingest

import "time"

// DomesticPolicy decides whether a route is a domestic one. It is
// injected rather than hard-coded so a deployment for another market
// only needs a different airport set.
type DomesticPolicy interface {
	IsDomestic(origin, destination string) bool
}

// HolidayPolicy decides whether a departure date falls inside a
// recognized holiday/peak window. The exact calendar is a deployment
// concern, so it is injected as configuration.
type HolidayPolicy interface {
	IsHoliday(date time.Time) bool
}

// AirportSetPolicy classifies a route as domestic when both endpoints
// are in the configured airport set.
type AirportSetPolicy struct {
	airports map[string]struct{}
}

// NewAirportSetPolicy builds a policy from a list of domestic airport
// codes.
func NewAirportSetPolicy(codes []string) *AirportSetPolicy {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return &AirportSetPolicy{airports: set}
}

// IsDomestic reports whether both endpoints are domestic airports.
func (p *AirportSetPolicy) IsDomestic(origin, destination string) bool {
	_, o := p.airports[origin]
	_, d := p.airports[destination]
	return o && d
}

// DateRange is one inclusive holiday window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// RangeHolidayPolicy marks dates inside any configured range as holiday
// departures.
type RangeHolidayPolicy struct {
	ranges []DateRange
}

// NewRangeHolidayPolicy builds a policy from inclusive date ranges.
func NewRangeHolidayPolicy(ranges []DateRange) *RangeHolidayPolicy {
	return &RangeHolidayPolicy{ranges: ranges}
}

// IsHoliday reports whether the date falls within any configured range.
func (p *RangeHolidayPolicy) IsHoliday(date time.Time) bool {
	for _, r := range p.ranges {
		if !date.Before(r.Start) && !date.After(r.End) {
			return true
		}
	}
	return false
}

package model

import (
	"database/sql"
	"time"
)

// Flight represents one observed flight offer.  Rows are append-only:
// the engine only ever reads flights back and derives views from them,
// it never updates a row after insertion.
//
// Fields:
//  ID              – primary key identifier.
//  Origin          – IATA code of the departure airport.
//  Destination     – IATA code of the arrival airport (never equal to Origin).
//  DepartureDate   – calendar date the flight departs; the time axis for
//                    every window filter.
//  ReturnDate      – optional return leg date for round-trip offers.
//  Airline         – optional carrier code reported by the provider.
//  Price           – offer price, always > 0.
//  Currency        – ISO currency code, a single fixed currency per deployment.
//  IsDomestic      – both endpoints are in the configured domestic airport
//                    set; classified once at ingestion.
//  IsHolidayPeriod – departure date falls inside a recognized holiday window;
//                    classified once at ingestion.
//  ObservedAt      – when the offer was recorded, which may differ from the
//                    departure date.
type Flight struct {
	ID              uint64         // flights.id
	Origin          string         // flights.origin
	Destination     string         // flights.destination
	DepartureDate   time.Time      // flights.departure_date
	ReturnDate      sql.NullTime   // flights.return_date
	Airline         sql.NullString // flights.airline
	Price           float64        // flights.price
	Currency        string         // flights.currency
	IsDomestic      bool           // flights.is_domestic
	IsHolidayPeriod bool           // flights.is_holiday_period
	ObservedAt      time.Time      // flights.observed_at
}

// Route returns the ordered origin-destination pair as "ORIGIN-DEST",
// the canonical route key used across all derived views.
func (f Flight) Route() string {
	return f.Origin + "-" + f.Destination
}

// PriceStats holds min/max/average price over a set of flights.
type PriceStats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// FlightSummary is the unfiltered full-table summary used for the
// dashboard's headline statistics cards.  It is independent of any
// look-back window.
type FlightSummary struct {
	TotalFlights         int64      `json:"total_flights"`
	DomesticFlights      int64      `json:"domestic_flights"`
	InternationalFlights int64      `json:"international_flights"`
	PriceStats           PriceStats `json:"price_stats"`
}

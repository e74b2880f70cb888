// Package repository contains data access logic for flight offers and
// insights. Flights are append-only: new observations are inserted in
// batches during ingestion and only ever read back afterwards, so the
// aggregation read path never blocks on the write path beyond normal
// row-level database concurrency.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/flight-demand-dashboard/internal/model"
)

// dateLayout is the DATE column format used for departure dates.
const dateLayout = "2006-01-02"

// FlightRepo encapsulates database operations for the flights table.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo constructs a FlightRepo with the given DB handle.
func NewFlightRepo(db *sql.DB) *FlightRepo {
	return &FlightRepo{db: db}
}

// FlightFilter narrows List results. Zero values mean "no filter".
type FlightFilter struct {
	Origin      string // exact origin code
	Destination string // exact destination code
	Domestic    *bool  // nil means both domestic and international
	Limit       int
	Offset      int
}

// InsertBatch inserts multiple flight observations in one statement.
// Each row carries the classification flags computed at ingestion time.
// IDs are assigned by the database and not populated back; ingestion
// has no use for them.
func (r *FlightRepo) InsertBatch(ctx context.Context, flights []model.Flight) error {
	if len(flights) == 0 {
		return nil
	}
	query := `INSERT INTO flights
		(origin, destination, departure_date, return_date, airline, price, currency, is_domestic, is_holiday_period, observed_at)
		VALUES `
	args := make([]interface{}, 0, len(flights)*10)
	for i, f := range flights {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args,
			f.Origin, f.Destination, f.DepartureDate.Format(dateLayout),
			f.ReturnDate, f.Airline, f.Price, f.Currency,
			f.IsDomestic, f.IsHolidayPeriod, f.ObservedAt.UTC())
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return classify(err)
}

// ListByDepartureRange returns all flights whose departure_date falls in
// the inclusive range [from, to], ordered by departure_date then id so
// repeated reads of the same snapshot come back in the same order.
func (r *FlightRepo) ListByDepartureRange(ctx context.Context, from, to time.Time) ([]model.Flight, error) {
	const q = `SELECT id, origin, destination, departure_date, return_date, airline, price, currency, is_domestic, is_holiday_period, observed_at
		FROM flights
		WHERE departure_date >= ? AND departure_date <= ?
		ORDER BY departure_date, id`
	rows, err := r.db.QueryContext(ctx, q, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	return scanFlights(rows)
}

// List returns flights matching the filter, newest observations first.
// A non-positive limit falls back to 100 so an unbounded table scan can
// never be triggered from the HTTP surface.
func (r *FlightRepo) List(ctx context.Context, f FlightFilter) ([]model.Flight, error) {
	q := `SELECT id, origin, destination, departure_date, return_date, airline, price, currency, is_domestic, is_holiday_period, observed_at
		FROM flights WHERE 1=1`
	args := make([]interface{}, 0, 5)
	if f.Origin != "" {
		q += " AND origin = ?"
		args = append(args, f.Origin)
	}
	if f.Destination != "" {
		q += " AND destination = ?"
		args = append(args, f.Destination)
	}
	if f.Domestic != nil {
		q += " AND is_domestic = ?"
		args = append(args, *f.Domestic)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	q += " ORDER BY observed_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	return scanFlights(rows)
}

// Summary computes the full-table statistics behind the dashboard's
// headline cards: total row count, domestic/international split and
// price min/max/average. COALESCE keeps the scan well-defined on an
// empty table.
func (r *FlightRepo) Summary(ctx context.Context) (model.FlightSummary, error) {
	const q = `SELECT
		COUNT(*),
		COALESCE(SUM(is_domestic), 0),
		COALESCE(MIN(price), 0),
		COALESCE(MAX(price), 0),
		COALESCE(AVG(price), 0)
		FROM flights`
	var s model.FlightSummary
	err := r.db.QueryRowContext(ctx, q).Scan(
		&s.TotalFlights,
		&s.DomesticFlights,
		&s.PriceStats.Min,
		&s.PriceStats.Max,
		&s.PriceStats.Average,
	)
	if err != nil {
		return model.FlightSummary{}, classify(err)
	}
	s.InternationalFlights = s.TotalFlights - s.DomesticFlights
	return s, nil
}

// ListAirports returns the sorted set of distinct airport codes that
// appear as either an origin or a destination.
func (r *FlightRepo) ListAirports(ctx context.Context) ([]string, error) {
	const q = `SELECT origin AS code FROM flights
		UNION SELECT destination FROM flights
		ORDER BY code`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	airports := make([]string, 0, 16)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, classify(err)
		}
		airports = append(airports, code)
	}
	return airports, classify(rows.Err())
}

func scanFlights(rows *sql.Rows) ([]model.Flight, error) {
	flights := make([]model.Flight, 0, 64)
	for rows.Next() {
		var f model.Flight
		if err := rows.Scan(
			&f.ID, &f.Origin, &f.Destination, &f.DepartureDate,
			&f.ReturnDate, &f.Airline, &f.Price, &f.Currency,
			&f.IsDomestic, &f.IsHolidayPeriod, &f.ObservedAt,
		); err != nil {
			return nil, classify(err)
		}
		flights = append(flights, f)
	}
	return flights, classify(rows.Err())
}

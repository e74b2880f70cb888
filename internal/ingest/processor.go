package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/flight-demand-dashboard/internal/amadeus"
	"github.com/iliyamo/flight-demand-dashboard/internal/model"
)

// OfferSource is the slice of the provider client the processor needs.
type OfferSource interface {
	SearchOffers(ctx context.Context, origin, destination, departureDate string) ([]amadeus.Offer, error)
}

// Store is the append-only write contract toward the flight table.
type Store interface {
	InsertBatch(ctx context.Context, flights []model.Flight) error
}

// Processor runs one ingestion pass: query the provider for every
// watched route, clean and classify the offers, and append them to the
// store.
type Processor struct {
	source   OfferSource
	store    Store
	domestic DomesticPolicy
	holiday  HolidayPolicy
	routes   []Route
	now      func() time.Time
}

// Route is one watched origin-destination pair.
type Route struct {
	Origin      string
	Destination string
}

// NewProcessor constructs a Processor over the given collaborators.
func NewProcessor(source OfferSource, store Store, domestic DomesticPolicy, holiday HolidayPolicy, routes []Route) *Processor {
	return &Processor{
		source:   source,
		store:    store,
		domestic: domestic,
		holiday:  holiday,
		routes:   routes,
		now:      time.Now,
	}
}

// Run fetches offers departing daysAhead days from now for every
// watched route and appends the valid ones. Individual bad rows are
// logged and skipped; a provider failure on one route does not abort
// the remaining routes. The number of stored rows is returned.
func (p *Processor) Run(ctx context.Context, daysAhead int) (int, error) {
	if daysAhead < 0 {
		daysAhead = 0
	}
	observed := p.now().UTC()
	departure := observed.AddDate(0, 0, daysAhead).Format("2006-01-02")

	flights := make([]model.Flight, 0, 128)
	var lastErr error
	for _, route := range p.routes {
		offers, err := p.source.SearchOffers(ctx, route.Origin, route.Destination, departure)
		if err != nil {
			log.Printf("ingest: fetch %s-%s failed: %v", route.Origin, route.Destination, err)
			lastErr = err
			continue
		}
		for _, offer := range offers {
			c, err := clean(offer)
			if err != nil {
				log.Printf("ingest: dropping offer %s-%s: %v", offer.Origin, offer.Destination, err)
				continue
			}
			flights = append(flights, p.classify(c, observed))
		}
	}

	if len(flights) == 0 {
		if lastErr != nil {
			return 0, fmt.Errorf("ingest: no offers stored: %w", lastErr)
		}
		return 0, nil
	}
	if err := p.store.InsertBatch(ctx, flights); err != nil {
		return 0, fmt.Errorf("ingest: insert batch: %w", err)
	}
	return len(flights), nil
}

// classify stamps the ingestion-time flags onto a cleaned offer.
func (p *Processor) classify(c cleaned, observed time.Time) model.Flight {
	f := model.Flight{
		Origin:          c.Origin,
		Destination:     c.Destination,
		DepartureDate:   c.DepartureDate,
		Price:           c.Price,
		Currency:        c.Currency,
		IsDomestic:      p.domestic.IsDomestic(c.Origin, c.Destination),
		IsHolidayPeriod: p.holiday.IsHoliday(c.DepartureDate),
		ObservedAt:      observed,
	}
	if c.Airline != "" {
		f.Airline = sql.NullString{String: c.Airline, Valid: true}
	}
	if !c.ReturnDate.IsZero() {
		f.ReturnDate = sql.NullTime{Time: c.ReturnDate, Valid: true}
	}
	return f
}

package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/flight-demand-dashboard/internal/amadeus"
	"github.com/iliyamo/flight-demand-dashboard/internal/model"
)

type stubSource struct {
	offers map[string][]amadeus.Offer // keyed "ORIGIN-DEST"
	err    error
}

func (s *stubSource) SearchOffers(_ context.Context, origin, destination, _ string) ([]amadeus.Offer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.offers[origin+"-"+destination], nil
}

type stubStore struct {
	inserted []model.Flight
	err      error
}

func (s *stubStore) InsertBatch(_ context.Context, flights []model.Flight) error {
	if s.err != nil {
		return s.err
	}
	s.inserted = append(s.inserted, flights...)
	return nil
}

func testPolicies() (DomesticPolicy, HolidayPolicy) {
	domestic := NewAirportSetPolicy([]string{"SYD", "MEL", "BNE"})
	holiday := NewRangeHolidayPolicy([]DateRange{{
		Start: time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}})
	return domestic, holiday
}

func TestProcessorClassifiesAndStores(t *testing.T) {
	source := &stubSource{offers: map[string][]amadeus.Offer{
		"SYD-MEL": {
			{Origin: "SYD", Destination: "MEL", DepartureDate: "2025-12-24", Price: "310.00", Currency: "AUD", Airline: "QF"},
		},
		"SYD-LAX": {
			{Origin: "SYD", Destination: "LAX", DepartureDate: "2025-07-07", Price: "1450.99", Currency: "AUD"},
		},
	}}
	store := &stubStore{}
	domestic, holiday := testPolicies()
	p := NewProcessor(source, store, domestic, holiday, []Route{
		{Origin: "SYD", Destination: "MEL"},
		{Origin: "SYD", Destination: "LAX"},
	})

	n, err := p.Run(context.Background(), 7)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 2 || len(store.inserted) != 2 {
		t.Fatalf("stored %d rows, want 2", len(store.inserted))
	}

	byRoute := make(map[string]model.Flight)
	for _, f := range store.inserted {
		byRoute[f.Route()] = f
	}
	sydMel := byRoute["SYD-MEL"]
	if !sydMel.IsDomestic {
		t.Error("SYD-MEL should classify as domestic")
	}
	if !sydMel.IsHolidayPeriod {
		t.Error("2025-12-24 departure should classify as holiday period")
	}
	if !sydMel.Airline.Valid || sydMel.Airline.String != "QF" {
		t.Errorf("airline = %+v", sydMel.Airline)
	}
	sydLax := byRoute["SYD-LAX"]
	if sydLax.IsDomestic {
		t.Error("SYD-LAX should classify as international")
	}
	if sydLax.IsHolidayPeriod {
		t.Error("2025-07-07 departure is outside all holiday ranges")
	}
	if sydLax.ObservedAt.IsZero() {
		t.Error("observed_at must be stamped at ingestion")
	}
}

func TestProcessorDropsInvalidOffers(t *testing.T) {
	source := &stubSource{offers: map[string][]amadeus.Offer{
		"SYD-MEL": {
			{Origin: "SYD", Destination: "SYD", DepartureDate: "2025-07-07", Price: "300"},  // origin == destination
			{Origin: "SYD", Destination: "MEL", DepartureDate: "2025-07-07", Price: "-10"},  // bad price
			{Origin: "SYD", Destination: "MEL", DepartureDate: "not-a-date", Price: "300"},  // bad date
			{Origin: "SYDX", Destination: "MEL", DepartureDate: "2025-07-07", Price: "300"}, // bad code
			{Origin: "syd", Destination: "mel", DepartureDate: "2025-07-07", Price: "300"},  // valid, needs upcasing
		},
	}}
	store := &stubStore{}
	domestic, holiday := testPolicies()
	p := NewProcessor(source, store, domestic, holiday, []Route{{Origin: "SYD", Destination: "MEL"}})

	n, err := p.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 1 {
		t.Fatalf("stored %d rows, want 1", n)
	}
	f := store.inserted[0]
	if f.Origin != "SYD" || f.Destination != "MEL" {
		t.Fatalf("codes not normalized: %s-%s", f.Origin, f.Destination)
	}
	if f.Currency != "AUD" {
		t.Fatalf("missing currency should default to AUD, got %q", f.Currency)
	}
}

func TestProcessorReportsProviderFailureWhenNothingStored(t *testing.T) {
	wantErr := errors.New("amadeus: token error 401")
	domestic, holiday := testPolicies()
	p := NewProcessor(&stubSource{err: wantErr}, &stubStore{}, domestic, holiday,
		[]Route{{Origin: "SYD", Destination: "MEL"}})

	if _, err := p.Run(context.Background(), 0); !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want wrapped provider error", err)
	}
}

func TestAirportSetPolicy(t *testing.T) {
	p := NewAirportSetPolicy([]string{"SYD", "MEL"})
	if !p.IsDomestic("SYD", "MEL") {
		t.Error("SYD-MEL should be domestic")
	}
	if p.IsDomestic("SYD", "LAX") {
		t.Error("SYD-LAX should be international")
	}
}

func TestRangeHolidayPolicyBoundsAreInclusive(t *testing.T) {
	p := NewRangeHolidayPolicy([]DateRange{{
		Start: time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}})
	for _, d := range []time.Time{
		time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	} {
		if !p.IsHoliday(d) {
			t.Errorf("%s should be inside the holiday range", d.Format("2006-01-02"))
		}
	}
	if p.IsHoliday(time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC)) {
		t.Error("2025-12-19 is outside the range")
	}
}

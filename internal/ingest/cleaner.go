package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/flight-demand-dashboard/internal/amadeus"
)

// defaultCurrency is assumed when the provider omits one.
const defaultCurrency = "AUD"

// cleaned is one validated offer, still unclassified.
type cleaned struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    time.Time // zero when one-way
	Airline       string
	Price         float64
	Currency      string
}

// clean validates a raw offer. It returns a descriptive error for any
// row that must be dropped; the processor logs and skips those rows
// instead of failing the whole batch.
func clean(offer amadeus.Offer) (cleaned, error) {
	origin := strings.ToUpper(strings.TrimSpace(offer.Origin))
	dest := strings.ToUpper(strings.TrimSpace(offer.Destination))
	if len(origin) != 3 || len(dest) != 3 {
		return cleaned{}, fmt.Errorf("invalid airport codes %q-%q", offer.Origin, offer.Destination)
	}
	if origin == dest {
		return cleaned{}, fmt.Errorf("origin equals destination %q", origin)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(offer.Price), 64)
	if err != nil {
		return cleaned{}, fmt.Errorf("unparseable price %q: %w", offer.Price, err)
	}
	if price <= 0 {
		return cleaned{}, fmt.Errorf("non-positive price %v", price)
	}

	departure, err := time.Parse("2006-01-02", offer.DepartureDate)
	if err != nil {
		return cleaned{}, fmt.Errorf("unparseable departure date %q: %w", offer.DepartureDate, err)
	}

	c := cleaned{
		Origin:        origin,
		Destination:   dest,
		DepartureDate: departure,
		Airline:       strings.ToUpper(strings.TrimSpace(offer.Airline)),
		Price:         price,
		Currency:      strings.ToUpper(strings.TrimSpace(offer.Currency)),
	}
	if c.Currency == "" {
		c.Currency = defaultCurrency
	}
	// A bad return date degrades to one-way rather than dropping the row.
	if offer.ReturnDate != "" {
		if ret, err := time.Parse("2006-01-02", offer.ReturnDate); err == nil {
			c.ReturnDate = ret
		}
	}
	return c, nil
}

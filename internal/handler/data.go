// This file defines the data endpoints: the raw flight listing, the
// airport filter list and the trigger that enqueues a background fetch
// from the flight-data provider. Fetching is slow (one provider call
// per watched route), so the trigger only publishes a job and returns
// 202 immediately.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-demand-dashboard/internal/queue"
	"github.com/iliyamo/flight-demand-dashboard/internal/repository"
)

// DataHandler serves flight listing and ingestion-trigger endpoints.
type DataHandler struct {
	Flights   *repository.FlightRepo
	BrokerURL string
	DaysAhead int // default departure horizon for fetch jobs
}

// flightItem is the sanitized flight row exposed over the API.
type flightItem struct {
	ID              uint64  `json:"id"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	DepartureDate   string  `json:"departure_date"`
	ReturnDate      *string `json:"return_date,omitempty"`
	Airline         *string `json:"airline,omitempty"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	IsDomestic      bool    `json:"is_domestic"`
	IsHolidayPeriod bool    `json:"is_holiday_period"`
	ObservedAt      string  `json:"observed_at"`
}

// PostFetch enqueues a background ingestion job and returns 202 with
// the job ID. A broker failure is a 503: the client must not believe a
// job exists when nothing was enqueued.
func (h *DataHandler) PostFetch(c echo.Context) error {
	ev := queue.FetchRequestedEvent{
		JobID:       uuid.NewString(),
		DaysAhead:   h.DaysAhead,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue.Publish(c.Request().Context(), h.BrokerURL, queue.FetchQueueName, ev); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "job queue unavailable"})
	}
	return c.JSON(http.StatusAccepted, echo.Map{"job_id": ev.JobID, "status": "queued"})
}

// GetFlights lists stored flights with optional origin, destination and
// domestic filters plus limit/offset pagination.
func (h *DataHandler) GetFlights(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}
	filter := repository.FlightFilter{
		Origin:      c.QueryParam("origin"),
		Destination: c.QueryParam("destination"),
		Domestic:    parseDomestic(c),
		Limit:       limit,
		Offset:      offset,
	}
	flights, err := h.Flights.List(c.Request().Context(), filter)
	if err != nil {
		return storeError(c, err)
	}

	items := make([]flightItem, 0, len(flights))
	for _, f := range flights {
		item := flightItem{
			ID:              f.ID,
			Origin:          f.Origin,
			Destination:     f.Destination,
			DepartureDate:   f.DepartureDate.Format("2006-01-02"),
			Price:           f.Price,
			Currency:        f.Currency,
			IsDomestic:      f.IsDomestic,
			IsHolidayPeriod: f.IsHolidayPeriod,
			ObservedAt:      f.ObservedAt.UTC().Format(time.RFC3339),
		}
		if f.ReturnDate.Valid {
			v := f.ReturnDate.Time.Format("2006-01-02")
			item.ReturnDate = &v
		}
		if f.Airline.Valid {
			v := f.Airline.String
			item.Airline = &v
		}
		items = append(items, item)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "offset": offset})
}

// GetAirports returns the sorted set of airport codes seen in the
// store, used to populate the dashboard's filter dropdowns.
func (h *DataHandler) GetAirports(c echo.Context) error {
	airports, err := h.Flights.ListAirports(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"airports": airports, "total": len(airports)})
}

func storeError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrUnavailable) {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "data source unavailable"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

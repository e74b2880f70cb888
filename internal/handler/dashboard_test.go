package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-demand-dashboard/internal/analytics"
	"github.com/iliyamo/flight-demand-dashboard/internal/model"
)

// fakeSource serves canned flight records so handlers can be exercised
// without a database.
type fakeSource struct {
	records []model.Flight
	summary model.FlightSummary
	err     error
}

func (f *fakeSource) ListByDepartureRange(_ context.Context, from, to time.Time) ([]model.Flight, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Flight, 0, len(f.records))
	for _, r := range f.records {
		if !r.DepartureDate.Before(from) && !r.DepartureDate.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSource) Summary(context.Context) (model.FlightSummary, error) {
	if f.err != nil {
		return model.FlightSummary{}, f.err
	}
	return f.summary, nil
}

func record(origin, dest, date string, price float64) model.Flight {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.Flight{
		Origin:        origin,
		Destination:   dest,
		DepartureDate: d,
		Price:         price,
		Currency:      "AUD",
		ObservedAt:    d,
	}
}

func newDashboard(src *fakeSource) *DashboardHandler {
	clock := func() time.Time { return time.Date(2025, 7, 10, 9, 30, 0, 0, time.UTC) }
	return &DashboardHandler{Analytics: analytics.NewService(src, analytics.WithClock(clock))}
}

func doRequest(t *testing.T, target string, fn echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	if err := fn(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestGetPriceTrends(t *testing.T) {
	src := &fakeSource{records: []model.Flight{
		record("SYD", "MEL", "2025-07-08", 300),
		record("SYD", "MEL", "2025-07-08", 340),
		record("MEL", "BNE", "2025-07-09", 200),
	}}
	rec := doRequest(t, "/v1/charts/price-trends", newDashboard(src).GetPriceTrends)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Days   int `json:"days"`
		Points []struct {
			Date         string  `json:"date"`
			AveragePrice float64 `json:"average_price"`
			FlightCount  int     `json:"flight_count"`
		} `json:"points"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Days != analytics.DefaultWindowDays {
		t.Fatalf("days = %d, want default %d", body.Days, analytics.DefaultWindowDays)
	}
	if len(body.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(body.Points))
	}
	if body.Points[0].Date != "2025-07-08" || body.Points[0].AveragePrice != 320.00 {
		t.Fatalf("first point = %+v", body.Points[0])
	}
}

func TestGetPriceTrendsBadDays(t *testing.T) {
	rec := doRequest(t, "/v1/charts/price-trends?days=week", newDashboard(&fakeSource{}).GetPriceTrends)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetPriceTrendsNegativeDays(t *testing.T) {
	rec := doRequest(t, "/v1/charts/price-trends?days=-3", newDashboard(&fakeSource{}).GetPriceTrends)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetRoutePopularityZeroLimit(t *testing.T) {
	rec := doRequest(t, "/v1/charts/route-popularity?limit=0", newDashboard(&fakeSource{}).GetRoutePopularity)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestChartSourceDown(t *testing.T) {
	src := &fakeSource{err: errors.New("dial tcp: connection refused")}
	rec := doRequest(t, "/v1/charts/demand-heatmap", newDashboard(src).GetDemandHeatmap)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestGetSeasonalAlwaysFourSeasons(t *testing.T) {
	rec := doRequest(t, "/v1/charts/seasonal", newDashboard(&fakeSource{}).GetSeasonal)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Seasons []struct {
			Season string `json:"season"`
		} `json:"seasons"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Seasons) != 4 {
		t.Fatalf("seasons = %d, want 4", len(body.Seasons))
	}
	if body.Seasons[0].Season != "summer" || body.Seasons[3].Season != "spring" {
		t.Fatalf("season order = %+v", body.Seasons)
	}
}

func TestGetSummary(t *testing.T) {
	src := &fakeSource{summary: model.FlightSummary{
		TotalFlights:         10,
		DomesticFlights:      7,
		InternationalFlights: 3,
		PriceStats:           model.PriceStats{Min: 99, Max: 900, Average: 420.5},
	}}
	rec := doRequest(t, "/v1/dashboard/summary", newDashboard(src).GetSummary)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got model.FlightSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got != src.summary {
		t.Fatalf("summary = %+v, want %+v", got, src.summary)
	}
}

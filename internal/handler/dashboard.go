// Package handler exposes the HTTP surface of the dashboard. This file
// defines the read endpoints over the aggregation facade: the headline
// summary plus the four chart views, each parameterized by a look-back
// window and an optional domestic filter.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-demand-dashboard/internal/analytics"
)

// DashboardHandler serves the read-only chart and summary endpoints.
type DashboardHandler struct {
	Analytics *analytics.Service
}

// GetSummary returns the full-store headline statistics, independent of
// any window.
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	summary, err := h.Analytics.Summary(c.Request().Context())
	if err != nil {
		return chartError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetPriceTrends returns the daily average-price series for the
// requested window.
func (h *DashboardHandler) GetPriceTrends(c echo.Context) error {
	days, ok := parseDays(c)
	if !ok {
		return badParam(c, "days")
	}
	points, err := h.Analytics.PriceTrends(c.Request().Context(), days, parseDomestic(c))
	if err != nil {
		return chartError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"days": days, "points": points})
}

// GetRoutePopularity returns the top routes for the requested window.
func (h *DashboardHandler) GetRoutePopularity(c echo.Context) error {
	days, ok := parseDays(c)
	if !ok {
		return badParam(c, "days")
	}
	limit, ok := parseLimit(c)
	if !ok {
		return badParam(c, "limit")
	}
	routes, err := h.Analytics.RoutePopularity(c.Request().Context(), days, limit, parseDomestic(c))
	if err != nil {
		return chartError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"days": days, "limit": limit, "routes": routes})
}

// GetDemandHeatmap returns the origin x destination demand matrix. An
// absent cell means demand score zero; the client zero-fills the grid.
func (h *DashboardHandler) GetDemandHeatmap(c echo.Context) error {
	days, ok := parseDays(c)
	if !ok {
		return badParam(c, "days")
	}
	matrix, err := h.Analytics.DemandHeatmap(c.Request().Context(), days, parseDomestic(c))
	if err != nil {
		return chartError(c, err)
	}
	return c.JSON(http.StatusOK, matrix)
}

// GetSeasonal returns the four-season demand distribution.
func (h *DashboardHandler) GetSeasonal(c echo.Context) error {
	days, ok := parseDays(c)
	if !ok {
		return badParam(c, "days")
	}
	seasons, err := h.Analytics.SeasonalDistribution(c.Request().Context(), days, parseDomestic(c))
	if err != nil {
		return chartError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"days": days, "seasons": seasons})
}

// parseDays reads the days query parameter. Absent means the default
// window; a present but non-integer value is rejected so "?days=week"
// cannot silently become a 7-day chart.
func parseDays(c echo.Context) (int, bool) {
	raw := c.QueryParam("days")
	if raw == "" {
		return analytics.DefaultWindowDays, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseLimit(c echo.Context) (int, bool) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return analytics.DefaultRouteLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseDomestic reads the tri-state domestic filter: absent means both
// domestic and international flights.
func parseDomestic(c echo.Context) *bool {
	switch c.QueryParam("domestic") {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	default:
		return nil
	}
}

func badParam(c echo.Context, name string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid " + name})
}

// chartError maps facade errors onto HTTP statuses: validation failures
// are the caller's fault, an unreachable store is a 503 so clients can
// tell "no data" (a 200 with empty shapes) from "data source down".
func chartError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, analytics.ErrInvalidWindow), errors.Is(err, analytics.ErrInvalidLimit):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, analytics.ErrSourceUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "data source unavailable"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// This file defines the insight endpoints: listing stored AI-generated
// insights and the trigger that enqueues a background generation job.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-demand-dashboard/internal/analytics"
	"github.com/iliyamo/flight-demand-dashboard/internal/queue"
	"github.com/iliyamo/flight-demand-dashboard/internal/repository"
)

// InsightHandler serves insight listing and generation-trigger endpoints.
type InsightHandler struct {
	Insights  *repository.InsightRepo
	BrokerURL string
}

// insightItem is the insight row exposed over the API.
type insightItem struct {
	ID              uint64  `json:"id"`
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	Category        string  `json:"category"`
	Priority        string  `json:"priority"`
	ConfidenceScore float64 `json:"confidence_score"`
	CreatedAt       string  `json:"created_at"`
}

// GetInsights lists active insights, newest first, optionally filtered
// by category.
func (h *InsightHandler) GetInsights(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	insights, err := h.Insights.ListActive(c.Request().Context(), c.QueryParam("category"), limit)
	if err != nil {
		return storeError(c, err)
	}
	items := make([]insightItem, 0, len(insights))
	for _, in := range insights {
		items = append(items, insightItem{
			ID:              in.ID,
			Title:           in.Title,
			Content:         in.Content,
			Category:        in.Category,
			Priority:        in.Priority,
			ConfidenceScore: in.ConfidenceScore,
			CreatedAt:       in.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": len(items)})
}

// PostGenerate enqueues a background insight-generation job over the
// current metrics snapshot and returns 202 with the job ID.
func (h *InsightHandler) PostGenerate(c echo.Context) error {
	days, ok := parseDays(c)
	if !ok || days <= 0 {
		return badParam(c, "days")
	}
	ev := queue.GenerateRequestedEvent{
		JobID:       uuid.NewString(),
		WindowDays:  days,
		RouteLimit:  analytics.DefaultRouteLimit,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue.Publish(c.Request().Context(), h.BrokerURL, queue.GenerateQueueName, ev); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "job queue unavailable"})
	}
	return c.JSON(http.StatusAccepted, echo.Map{"job_id": ev.JobID, "status": "queued"})
}

package repository // repository for AI-generated insight persistence

import (
	"context"
	"database/sql"

	"github.com/iliyamo/flight-demand-dashboard/internal/model"
)

// InsightRepo encapsulates database operations for the insights table.
// Insights are written once by the narration job and served read-only
// to the dashboard.
type InsightRepo struct {
	db *sql.DB
}

// NewInsightRepo constructs an InsightRepo given a DB handle.
func NewInsightRepo(db *sql.DB) *InsightRepo {
	return &InsightRepo{db: db}
}

// InsertBatch stores all insights produced from one snapshot in a
// single statement. Timestamps default in the DB.
func (r *InsightRepo) InsertBatch(ctx context.Context, insights []model.Insight) error {
	if len(insights) == 0 {
		return nil
	}
	query := `INSERT INTO insights (batch_id, title, content, category, priority, confidence_score, is_active) VALUES `
	args := make([]interface{}, 0, len(insights)*7)
	for i, in := range insights {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?)"
		args = append(args, in.BatchID, in.Title, in.Content, in.Category, in.Priority, in.ConfidenceScore, in.IsActive)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return classify(err)
}

// ListActive returns active insights, newest first, optionally filtered
// by category. A non-positive limit falls back to 10, matching the
// dashboard's default panel size.
func (r *InsightRepo) ListActive(ctx context.Context, category string, limit int) ([]model.Insight, error) {
	if limit <= 0 {
		limit = 10
	}
	q := `SELECT id, batch_id, title, content, category, priority, confidence_score, is_active, created_at
		FROM insights WHERE is_active = TRUE`
	args := make([]interface{}, 0, 2)
	if category != "" {
		q += " AND category = ?"
		args = append(args, category)
	}
	q += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	insights := make([]model.Insight, 0, limit)
	for rows.Next() {
		var in model.Insight
		if err := rows.Scan(
			&in.ID, &in.BatchID, &in.Title, &in.Content, &in.Category,
			&in.Priority, &in.ConfidenceScore, &in.IsActive, &in.CreatedAt,
		); err != nil {
			return nil, classify(err)
		}
		insights = append(insights, in)
	}
	return insights, classify(rows.Err())
}

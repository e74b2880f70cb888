package model

import "time"

// Insight priorities as stored in insights.priority.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Insight is one AI-generated narration of the current market metrics.
// Insights are produced by the narration collaborator from a metrics
// snapshot and are read-only to the aggregation engine.
//
// Fields:
//  ID              – primary key identifier.
//  BatchID         – groups insights generated from the same snapshot.
//  Title           – short headline for the insight.
//  Content         – free-text insight body.
//  Category        – coarse topic (pricing, demand, routes, seasonal, ...).
//  Priority        – one of low/medium/high.
//  ConfidenceScore – 0.0–1.0 confidence assigned at generation time.
//  IsActive        – soft-delete flag; only active insights are served.
//  CreatedAt       – when the insight was generated.
type Insight struct {
	ID              uint64    // insights.id
	BatchID         string    // insights.batch_id
	Title           string    // insights.title
	Content         string    // insights.content
	Category        string    // insights.category
	Priority        string    // insights.priority
	ConfidenceScore float64   // insights.confidence_score
	IsActive        bool      // insights.is_active
	CreatedAt       time.Time // insights.created_at
}

// Package queue defines message payloads exchanged over the message
// broker and the background consumer that executes the long-running
// jobs behind the dashboard's two write-triggering endpoints. Keeping
// ingestion and narration off the request path means a slow provider or
// model never blocks an HTTP worker, and aggregation reads stay
// available while a job is appending rows.
package queue

// Queue names. Both queues are declared durable so pending jobs survive
// a broker restart.
const (
	FetchQueueName    = "flights.fetch"
	GenerateQueueName = "insights.generate"
)

// FetchRequestedEvent asks the background worker to pull fresh offers
// from the flight-data provider and append them to the store.
type FetchRequestedEvent struct {
	JobID       string `json:"job_id"`
	DaysAhead   int    `json:"days_ahead"`
	RequestedAt string `json:"requested_at"`
}

// GenerateRequestedEvent asks the background worker to snapshot the
// current metrics and run the insight narrator over them.
type GenerateRequestedEvent struct {
	JobID       string `json:"job_id"`
	WindowDays  int    `json:"window_days"`
	RouteLimit  int    `json:"route_limit"`
	RequestedAt string `json:"requested_at"`
}

package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/flight-demand-dashboard/internal/analytics"
	"github.com/iliyamo/flight-demand-dashboard/internal/ingest"
	"github.com/iliyamo/flight-demand-dashboard/internal/insight"
	"github.com/iliyamo/flight-demand-dashboard/internal/model"
)

// jobTimeout bounds one background job; the provider sweep across all
// watched routes is the slowest case.
const jobTimeout = 10 * time.Minute

// Worker consumes job events and runs the corresponding long-running
// collaborator: the ingestion processor for fetch jobs, the insight
// narrator for generation jobs.
type Worker struct {
	brokerURL string
	processor *ingest.Processor
	service   *analytics.Service
	narrator  *insight.Narrator
}

// NewWorker constructs a Worker.
func NewWorker(brokerURL string, processor *ingest.Processor, service *analytics.Service, narrator *insight.Narrator) *Worker {
	return &Worker{brokerURL: brokerURL, processor: processor, service: service, narrator: narrator}
}

// Start connects to RabbitMQ, declares both durable job queues and
// consumes them until the process exits. It runs a reconnect loop with
// exponential backoff; processing errors are logged and the offending
// message rejected without requeue so a poison message cannot spin the
// worker.
func (w *Worker) Start() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(w.brokerURL)
		if err != nil {
			log.Printf("job-worker: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := w.consumeLoop(conn); err != nil {
			log.Printf("job-worker: consume loop ended: %v; reconnecting", err)
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func (w *Worker) consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Jobs are heavyweight; take them one at a time.
	if err := ch.Qos(1, 0, false); err != nil {
		log.Printf("job-worker: set QoS failed: %v", err)
	}

	for _, name := range []string{FetchQueueName, GenerateQueueName} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	fetches, err := ch.Consume(FetchQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", FetchQueueName, err)
	}
	generates, err := ch.Consume(GenerateQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", GenerateQueueName, err)
	}

	for {
		select {
		case d, ok := <-fetches:
			if !ok {
				return errors.New("fetch deliveries channel closed")
			}
			w.handle(d, w.handleFetch)
		case d, ok := <-generates:
			if !ok {
				return errors.New("generate deliveries channel closed")
			}
			w.handle(d, w.handleGenerate)
		}
	}
}

func (w *Worker) handle(d amqp.Delivery, fn func(context.Context, []byte) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if err := fn(ctx, d.Body); err != nil {
		log.Printf("job-worker: job failed: %v", err)
		_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
		return
	}
	_ = d.Ack(false)
}

func (w *Worker) handleFetch(ctx context.Context, body []byte) error {
	var ev FetchRequestedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal fetch event: %w", err)
	}
	stored, err := w.processor.Run(ctx, ev.DaysAhead)
	if err != nil {
		return fmt.Errorf("fetch job %s: %w", ev.JobID, err)
	}
	log.Printf("job-worker: fetch job done | job_id=%s | stored=%d", ev.JobID, stored)
	return nil
}

func (w *Worker) handleGenerate(ctx context.Context, body []byte) error {
	var ev GenerateRequestedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal generate event: %w", err)
	}
	days := ev.WindowDays
	if days <= 0 {
		days = analytics.DefaultWindowDays
	}
	limit := ev.RouteLimit
	if limit <= 0 {
		limit = analytics.DefaultRouteLimit
	}
	snap, err := w.service.Snapshot(ctx, days, limit)
	if err != nil {
		return fmt.Errorf("generate job %s: snapshot: %w", ev.JobID, err)
	}
	insights, err := w.narrator.Generate(ctx, snap)
	if err != nil {
		return fmt.Errorf("generate job %s: %w", ev.JobID, err)
	}
	log.Printf("job-worker: generate job done | job_id=%s | insights=%d | priorities=%s",
		ev.JobID, len(insights), priorities(insights))
	return nil
}

func priorities(insights []model.Insight) string {
	counts := map[string]int{}
	for _, in := range insights {
		counts[in.Priority]++
	}
	return fmt.Sprintf("high=%d medium=%d low=%d",
		counts[model.PriorityHigh], counts[model.PriorityMedium], counts[model.PriorityLow])
}

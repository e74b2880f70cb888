// Package insight turns metric snapshots into persisted, AI-narrated
// insight records. It is the narration collaborator on the far side of
// the aggregation facade: it consumes one consistent SnapshotView and
// never re-queries the store on its own.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/flight-demand-dashboard/internal/analytics"
	"github.com/iliyamo/flight-demand-dashboard/internal/llm"
	"github.com/iliyamo/flight-demand-dashboard/internal/model"
)

const systemPrompt = "You are an aviation market analyst. You receive aggregate " +
	"airline booking metrics as JSON and reply with a JSON array of insights. " +
	"Each insight has the fields title, content, category (one of pricing, " +
	"demand, routes, seasonal) and priority (one of low, medium, high). " +
	"Reply with the JSON array only, no surrounding prose."

const defaultModel = "gpt-4o-mini"

// Store is the slice of the insight repository the narrator needs.
type Store interface {
	InsertBatch(ctx context.Context, insights []model.Insight) error
}

// Narrator generates and persists insight records from snapshots.
type Narrator struct {
	chat     llm.ChatClient
	store    Store
	chatName string
}

// NewNarrator constructs a Narrator. An empty model name falls back to
// the default.
func NewNarrator(chat llm.ChatClient, store Store, chatModel string) *Narrator {
	if chatModel == "" {
		chatModel = defaultModel
	}
	return &Narrator{chat: chat, store: store, chatName: chatModel}
}

// rawInsight is the shape the model is asked to reply with.
type rawInsight struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

// Generate asks the model to narrate the snapshot, parses the reply and
// persists the resulting insights as one batch. The stored records are
// returned so the trigger endpoint can report how many were produced.
func (n *Narrator) Generate(ctx context.Context, snap analytics.SnapshotView) ([]model.Insight, error) {
	if snap.Summary.TotalFlights == 0 {
		return nil, fmt.Errorf("insight: no flight data to analyze")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("insight: marshal snapshot: %w", err)
	}

	resp, err := n.chat.ChatCompletion(ctx, llm.ChatRequest{
		Model: n.chatName,
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(data)},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, err
	}

	parsed, err := parseInsights(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	confidence := confidenceFor(snap)
	insights := make([]model.Insight, 0, len(parsed))
	for _, raw := range parsed {
		if strings.TrimSpace(raw.Title) == "" || strings.TrimSpace(raw.Content) == "" {
			continue
		}
		insights = append(insights, model.Insight{
			BatchID:         batchID,
			Title:           raw.Title,
			Content:         raw.Content,
			Category:        normalizeCategory(raw.Category),
			Priority:        normalizePriority(raw.Priority),
			ConfidenceScore: confidence,
			IsActive:        true,
		})
	}
	if len(insights) == 0 {
		return nil, fmt.Errorf("insight: model reply contained no usable insights")
	}

	if err := n.store.InsertBatch(ctx, insights); err != nil {
		return nil, fmt.Errorf("insight: persist batch: %w", err)
	}
	return insights, nil
}

// parseInsights decodes the model reply, tolerating a markdown code
// fence around the JSON array.
func parseInsights(reply string) ([]rawInsight, error) {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = strings.TrimPrefix(reply, "```json")
		reply = strings.TrimPrefix(reply, "```")
		reply = strings.TrimSuffix(strings.TrimSpace(reply), "```")
		reply = strings.TrimSpace(reply)
	}
	var parsed []rawInsight
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil {
		return nil, fmt.Errorf("insight: parse model reply: %w", err)
	}
	return parsed, nil
}

// confidenceFor scales confidence with the amount of data behind the
// snapshot: a handful of rows gives weak grounds, a few hundred rows
// approaches full confidence.
func confidenceFor(snap analytics.SnapshotView) float64 {
	c := 0.3 + float64(snap.Summary.TotalFlights)/500*0.65
	if c > 0.95 {
		c = 0.95
	}
	return c
}

func normalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case model.PriorityLow:
		return model.PriorityLow
	case model.PriorityHigh:
		return model.PriorityHigh
	default:
		return model.PriorityMedium
	}
}

func normalizeCategory(c string) string {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case "pricing", "demand", "routes", "seasonal":
		return strings.ToLower(strings.TrimSpace(c))
	default:
		return "market_analysis"
	}
}

package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/flight-demand-dashboard/internal/model"
)

// Defaults for the dashboard's query parameters.
const (
	DefaultWindowDays = 7
	DefaultRouteLimit = 5
)

// RecordSource is the read contract the engine consumes from the flight
// record store: a departure-date range query plus the unfiltered
// full-table summary. *repository.FlightRepo satisfies it.
type RecordSource interface {
	ListByDepartureRange(ctx context.Context, from, to time.Time) ([]model.Flight, error)
	Summary(ctx context.Context) (model.FlightSummary, error)
}

// Service is the aggregation facade the presentation layer calls. It
// performs the window filter once per request, hands the matched
// records to the pure aggregators and returns the derived view. It
// holds no mutable state and is safe for concurrent use.
type Service struct {
	source RecordSource
	now    func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the wall clock, pinning "today" in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService constructs the facade over the given record source.
func NewService(source RecordSource, opts ...Option) *Service {
	s := &Service{source: source, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// fetch validates the window, reads the matched records once and
// applies the optional domestic filter. Store failures come back
// wrapped in ErrSourceUnavailable so callers can tell "no data in
// window" from "data source down".
func (s *Service) fetch(ctx context.Context, days int, domestic *bool) ([]model.Flight, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days=%d", ErrInvalidWindow, days)
	}
	today := s.today()
	from := today.AddDate(0, 0, -days)
	records, err := s.source.ListByDepartureRange(ctx, from, today)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return filterDomestic(records, domestic), nil
}

// today is the current date at UTC midnight, the inclusive upper bound
// of every window.
func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func filterDomestic(records []model.Flight, domestic *bool) []model.Flight {
	if domestic == nil {
		return records
	}
	filtered := make([]model.Flight, 0, len(records))
	for _, f := range records {
		if f.IsDomestic == *domestic {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// PriceTrends returns the daily average-price series for the window.
func (s *Service) PriceTrends(ctx context.Context, days int, domestic *bool) ([]PricePoint, error) {
	records, err := s.fetch(ctx, days, domestic)
	if err != nil {
		return nil, err
	}
	return PriceTrend(records), nil
}

// RoutePopularity returns the top routes in the window, truncated to
// limit entries.
func (s *Service) RoutePopularity(ctx context.Context, days, limit int, domestic *bool) ([]RouteStat, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit=%d", ErrInvalidLimit, limit)
	}
	records, err := s.fetch(ctx, days, domestic)
	if err != nil {
		return nil, err
	}
	return RoutePopularity(records, limit), nil
}

// DemandHeatmap returns the origin x destination demand matrix for the
// window.
func (s *Service) DemandHeatmap(ctx context.Context, days int, domestic *bool) (HeatmapMatrix, error) {
	records, err := s.fetch(ctx, days, domestic)
	if err != nil {
		return HeatmapMatrix{}, err
	}
	return DemandHeatmap(records), nil
}

// SeasonalDistribution returns the four-season demand distribution for
// the window.
func (s *Service) SeasonalDistribution(ctx context.Context, days int, domestic *bool) ([]SeasonBucket, error) {
	records, err := s.fetch(ctx, days, domestic)
	if err != nil {
		return nil, err
	}
	return SeasonalDistribution(records), nil
}

// Summary returns the headline statistics over the full store,
// independent of any window.
func (s *Service) Summary(ctx context.Context) (model.FlightSummary, error) {
	summary, err := s.source.Summary(ctx)
	if err != nil {
		return model.FlightSummary{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return summary, nil
}

// SnapshotView is the point-in-time picture handed to the narration
// collaborator: the full-store summary plus all four derived views,
// computed from a single read of the record store so the narrator never
// sees views that disagree with each other.
type SnapshotView struct {
	GeneratedAt          time.Time           `json:"generated_at"`
	WindowDays           int                 `json:"window_days"`
	Summary              model.FlightSummary `json:"summary"`
	PriceTrends          []PricePoint        `json:"price_trends"`
	RoutePopularity      []RouteStat         `json:"route_popularity"`
	DemandHeatmap        HeatmapMatrix       `json:"demand_heatmap"`
	SeasonalDistribution []SeasonBucket      `json:"seasonal_distribution"`
}

// Snapshot computes all four views from one window read plus the
// full-store summary.
func (s *Service) Snapshot(ctx context.Context, days, limit int) (SnapshotView, error) {
	if limit <= 0 {
		return SnapshotView{}, fmt.Errorf("%w: limit=%d", ErrInvalidLimit, limit)
	}
	records, err := s.fetch(ctx, days, nil)
	if err != nil {
		return SnapshotView{}, err
	}
	summary, err := s.Summary(ctx)
	if err != nil {
		return SnapshotView{}, err
	}
	return SnapshotView{
		GeneratedAt:          s.now().UTC(),
		WindowDays:           days,
		Summary:              summary,
		PriceTrends:          PriceTrend(records),
		RoutePopularity:      RoutePopularity(records, limit),
		DemandHeatmap:        DemandHeatmap(records),
		SeasonalDistribution: SeasonalDistribution(records),
	}, nil
}

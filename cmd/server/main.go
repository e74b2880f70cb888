package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-demand-dashboard/internal/amadeus"
	"github.com/iliyamo/flight-demand-dashboard/internal/analytics"
	"github.com/iliyamo/flight-demand-dashboard/internal/config"
	"github.com/iliyamo/flight-demand-dashboard/internal/database"
	"github.com/iliyamo/flight-demand-dashboard/internal/handler"
	"github.com/iliyamo/flight-demand-dashboard/internal/ingest"
	"github.com/iliyamo/flight-demand-dashboard/internal/insight"
	"github.com/iliyamo/flight-demand-dashboard/internal/llm"
	"github.com/iliyamo/flight-demand-dashboard/internal/queue"
	"github.com/iliyamo/flight-demand-dashboard/internal/repository"
	"github.com/iliyamo/flight-demand-dashboard/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("main: open database: %v", err)
	}
	defer db.Close()

	flights := repository.NewFlightRepo(db)
	insights := repository.NewInsightRepo(db)

	svc := analytics.NewService(flights)

	// Ingestion pipeline: provider client plus the market-classification
	// policies, swept over the configured route list by queue jobs.
	var providerOpts []func(*amadeus.Client)
	if cfg.AmadeusBaseURL != "" {
		providerOpts = append(providerOpts, amadeus.WithBaseURL(cfg.AmadeusBaseURL))
	}
	provider := amadeus.NewClient(cfg.AmadeusAPIKey, cfg.AmadeusAPISecret, providerOpts...)

	routes := make([]ingest.Route, 0, len(cfg.WatchedRoutes))
	for _, r := range cfg.WatchedRoutes {
		routes = append(routes, ingest.Route{Origin: r.Origin, Destination: r.Destination})
	}
	holidays := make([]ingest.DateRange, 0, len(cfg.HolidayRanges))
	for _, h := range cfg.HolidayRanges {
		holidays = append(holidays, ingest.DateRange{Start: h.Start, End: h.End})
	}
	processor := ingest.NewProcessor(
		provider,
		flights,
		ingest.NewAirportSetPolicy(cfg.DomesticAirports),
		ingest.NewRangeHolidayPolicy(holidays),
		routes,
	)

	var chatOpts []func(*llm.Client)
	if cfg.OpenAIBaseURL != "" {
		chatOpts = append(chatOpts, llm.WithBaseURL(cfg.OpenAIBaseURL))
	}
	narrator := insight.NewNarrator(llm.NewClient(cfg.OpenAIAPIKey, chatOpts...), insights, cfg.OpenAIModel)

	// Background worker: consumes fetch and generate jobs off RabbitMQ
	// and keeps reconnecting if the broker drops.
	worker := queue.NewWorker(cfg.BrokerURL, processor, svc, narrator)
	go worker.Start()

	// Redis is optional: when it is down the client is nil and both the
	// response cache and the rate limiter switch themselves off.
	rdb := config.NewRedisClient()

	e := echo.New()
	router.RegisterRateLimit(e, config.LoadRateLimitConfig(), rdb)
	router.RegisterRoutes(e)
	router.RegisterDashboard(e, &handler.DashboardHandler{Analytics: svc}, config.LoadCacheConfig(), rdb)
	router.RegisterData(e, &handler.DataHandler{Flights: flights, BrokerURL: cfg.BrokerURL, DaysAhead: cfg.FetchDaysAhead})
	router.RegisterInsights(e, &handler.InsightHandler{Insights: insights, BrokerURL: cfg.BrokerURL})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

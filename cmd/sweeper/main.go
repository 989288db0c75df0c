package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/awards"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/config"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/fetchrouter"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/frontier"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/health"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/orchestrate"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/search"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/skeleton"
	pg_store "github.com/troeske/spiritswise-web-crawler-sub003/internal/store/postgres"
)

// sweepInterval is how often the sweeper polls for due sources (§3: "a
// source is due iff active and now >= next_crawl_at"). The production rate
// limits per source are enforced inside each orchestrator's fetch path, not
// by this interval, so a short one just means a cheap extra ListDueSources
// query between real work.
const sweepInterval = 5 * time.Minute

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting spiritswise crawler sweeper")

	cfg := config.Load()

	db, err := sqlx.Connect("postgres", cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("connected to postgres")

	productStore := pg_store.NewProductStore(db)
	sourceStore := pg_store.NewSourceStore(db)
	jobStore := pg_store.NewCrawlJobStore(db)
	errorStore := pg_store.NewCrawlErrorStore(db)
	costStore := pg_store.NewCostRecordStore(db)
	awardStore := pg_store.NewAwardStore(db)
	brandStore := pg_store.NewBrandStore(db)
	queueStore := pg_store.NewQueueStore(db)
	detailStore := pg_store.NewDetailStore(db)
	logger.Info("postgres-backed stores initialized")

	fetcher := fetchrouter.New(cfg.FetchRouter)
	searcher := search.New(cfg.Search.BaseURL, cfg.Search.APIKey, cfg.Search.Timeout, cfg.Search.CostCentsPerCall)

	awardsH := awards.New(awardStore)
	skel := skeleton.New(productStore, brandStore, awardsH)
	skel.Details = detailStore
	fleet := frontier.New(cfg.Frontier.DefaultRateLimitRPM, cfg.Frontier.SeenRetentionDays, queueStore)

	alerts := health.NewHandler(health.NewZapSink(logger))
	fingerprinter := health.NewFingerprinter(alerts)
	selectorChecker := health.NewSelectorChecker(cfg.Health.SelectorMinExpectedMatches, alerts)
	yieldMonitor := health.NewYieldMonitor(cfg.Health.YieldMinExpectedPerPage, cfg.Health.YieldAbortAfterPages, alerts)
	resourceMonitor := health.NewResourceMonitor(alerts, cfg.Health.CPUWarningPercent, cfg.Health.CPUCriticalPercent, cfg.Health.MemWarningPercent, cfg.Health.MemCriticalPercent)

	hubOrch := orchestrate.NewHubOrchestrator()
	hubOrch.Sources = sourceStore
	hubOrch.Jobs = jobStore
	hubOrch.Costs = costStore
	hubOrch.Errors = errorStore
	hubOrch.Fetcher = fetcher
	hubOrch.Searcher = searcher
	hubOrch.PageCap = config.DefaultHubPageCap
	hubOrch.DNSPreflight = orchestrate.NewDNSPreflight()
	hubOrch.Fingerprinter = fingerprinter
	hubOrch.YieldMonitor = yieldMonitor
	hubOrch.Logger = logger

	compOrch := &orchestrate.CompetitionOrchestrator{
		Sources:            sourceStore,
		Jobs:               jobStore,
		Costs:              costStore,
		Errors:             errorStore,
		Fetcher:            fetcher,
		Skeleton:           skel,
		Searcher:           searcher,
		Frontier:           fleet,
		SelectorChecker:    selectorChecker,
		YieldMonitor:       yieldMonitor,
		EnrichmentPriority: config.PriorityEnrichment,
		Logger:             logger,
	}

	sweeper := &orchestrate.Sweeper{
		Sources: sourceStore,
		Hub:     hubOrch,
		Comp:    compOrch,
		Logger:  logger,
	}
	logger.Info("sweeper wired", zap.Duration("interval", sweepInterval))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go resourceMonitor.Run(ctx, cfg.Health.ResourceSampleInterval)
	logger.Info("resource monitor started")

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := sweeper.Sweep(ctx); err != nil {
					logger.Warn("sweep pass failed", zap.Error(err))
				}
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down sweeper")
	cancel()
	<-done
	logger.Info("sweeper exited gracefully")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/api"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/awards"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/config"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/extraction"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/fetchrouter"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/frontier"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/health"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/matcher"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/middleware"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/observability"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/orchestrate"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/scoring"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/search"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/skeleton"
	pg_store "github.com/troeske/spiritswise-web-crawler-sub003/internal/store/postgres"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/verify"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting spiritswise crawler API server")

	cfg := config.Load()
	logger.Info("configuration loaded")

	db, err := sqlx.Connect("postgres", cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("connected to postgres")

	productStore := pg_store.NewProductStore(db)
	sourceStore := pg_store.NewSourceStore(db)
	jobStore := pg_store.NewCrawlJobStore(db)
	provenanceStore := pg_store.NewFieldProvenanceStore(db)
	errorStore := pg_store.NewCrawlErrorStore(db)
	costStore := pg_store.NewCostRecordStore(db)
	awardStore := pg_store.NewAwardStore(db)
	brandStore := pg_store.NewBrandStore(db)
	queueStore := pg_store.NewQueueStore(db)
	detailStore := pg_store.NewDetailStore(db)
	logger.Info("postgres-backed stores initialized")

	fetcher := fetchrouter.New(cfg.FetchRouter)
	extractor := extraction.New(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Timeout, cfg.AI.CostCentsPerCall)
	searcher := search.New(cfg.Search.BaseURL, cfg.Search.APIKey, cfg.Search.Timeout, cfg.Search.CostCentsPerCall)
	logger.Info("fetch/extraction/search clients initialized")

	m := matcher.New(productStore)
	awardsH := awards.New(awardStore)
	skel := skeleton.New(productStore, brandStore, awardsH)
	skel.Details = detailStore
	logger.Info("matcher/awards/skeleton services initialized")

	fleet := frontier.New(cfg.Frontier.DefaultRateLimitRPM, cfg.Frontier.SeenRetentionDays, queueStore)
	logger.Info("frontier initialized")

	alertSink := health.NewZapSink(logger)
	alerts := health.NewHandler(alertSink)
	fingerprinter := health.NewFingerprinter(alerts)
	selectorChecker := health.NewSelectorChecker(cfg.Health.SelectorMinExpectedMatches, alerts)
	yieldMonitor := health.NewYieldMonitor(cfg.Health.YieldMinExpectedPerPage, cfg.Health.YieldAbortAfterPages, alerts)
	resourceMonitor := health.NewResourceMonitor(alerts, cfg.Health.CPUWarningPercent, cfg.Health.CPUCriticalPercent, cfg.Health.MemWarningPercent, cfg.Health.MemCriticalPercent)
	logger.Info("structural health monitor initialized")

	verifyPipeline := verify.New(searcher, fetcher, api.ExtractorAdapter{Inner: extractor}, scoring.Apply, cfg.Verification.TargetSources, cfg.Verification.MinSourcesForVerified)
	logger.Info("verification pipeline initialized")

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
		Sources:         sourceStore,
		Jobs:            jobStore,
		Costs:           costStore,
		Errors:          errorStore,
		Fetcher:         fetcher,
		Skeleton:        skel,
		Searcher:        searcher,
		Frontier:        fleet,
		SelectorChecker: selectorChecker,
		YieldMonitor:    yieldMonitor,
		EnrichmentPriority: config.PriorityEnrichment,
		Logger:          logger,
	}
	logger.Info("hub/competition orchestrators initialized")

	metrics := observability.NewMetricsCollector(prometheus.DefaultRegisterer)

	tracerBackendURL := os.Getenv("TRACING_BACKEND_URL")
	if _, err := observability.InitTracer("spiritswise-crawler", tracerBackendURL); err != nil {
		logger.Warn("tracer init failed, continuing without tracing", zap.Error(err))
	}

	h := api.NewHandler(cfg, logger)
	h.DB = db
	h.ProductStore = productStore
	h.SourceStore = sourceStore
	h.CrawlJobStore = jobStore
	h.ProvenanceStore = provenanceStore
	h.ErrorStore = errorStore
	h.CostStore = costStore
	h.Fetcher = fetcher
	h.Extractor = extractor
	h.Searcher = searcher
	h.Matcher = m
	h.AwardsH = awardsH
	h.Skeleton = skel
	h.Verify = verifyPipeline
	h.Orchestrator = compOrch
	h.Frontier = fleet
	h.Alerts = alerts
	h.Metrics = metrics
	logger.Info("rest handler wired")

	resourceCtx, stopResourceMonitor := context.WithCancel(context.Background())
	defer stopResourceMonitor()
	go resourceMonitor.Run(resourceCtx, cfg.Health.ResourceSampleInterval)
	logger.Info("resource monitor started")

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	api.RegisterRoutes(router, h, middleware.NewRateLimiter())
	logger.Info("routes registered")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("ListenAndServe failed", zap.Error(err))
		}
	}()
	logger.Info("server listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}

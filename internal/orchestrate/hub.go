package orchestrate

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/config"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/health"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/parsers/hub"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

// HubOrchestrator implements the Hub Orchestrator of §4.4: BFS a hub site to
// a page cap, register an external brand link as a producer Source
// directly, or fall back to the Search Client for brands without one.
// Newly discovered producer sources are HEAD-validated before being
// persisted.
type HubOrchestrator struct {
	Sources  store.SourceStore
	Jobs     store.CrawlJobStore
	Costs    store.CostRecordStore
	Errors   store.CrawlErrorStore
	Fetcher  fetcher
	Searcher searcher

	PageCap int

	Validator headChecker
	// DNSPreflight is consulted before Validator.Head when set (§4.4:
	// "optional DNS-resolves-before-HEAD preflight"); left nil it's skipped
	// entirely, which is what every test in this package does.
	DNSPreflight dnsResolver

	// Fingerprinter and YieldMonitor are the Structural Health Monitor
	// (§4.11) hooks for the BFS walk: both optional, nil in every test in
	// this package.
	Fingerprinter *health.Fingerprinter
	YieldMonitor  *health.YieldMonitor

	Logger *zap.Logger
}

// NewHubOrchestrator wires a resty-backed headChecker; callers still need to
// set Sources/Jobs/Fetcher/Searcher before use.
func NewHubOrchestrator() *HubOrchestrator {
	return &HubOrchestrator{Validator: newRestyHeadChecker()}
}

// CrawlHub walks src by BFS up to PageCap pages, registering a producer
// Source for every brand entry it can resolve to a validated external site.
func (o *HubOrchestrator) CrawlHub(ctx context.Context, src *models.Source) error {
	if o.Validator == nil {
		o.Validator = newRestyHeadChecker()
	}
	pageCap := o.PageCap
	if pageCap <= 0 {
		pageCap = config.DefaultHubPageCap
	}

	job := &models.CrawlJob{ID: uuid.New(), SourceID: src.ID, Status: models.CrawlJobRunning}
	job.StartedAt.Time = time.Now()
	job.StartedAt.Valid = true
	if err := o.Jobs.CreateCrawlJob(ctx, nil, job); err != nil {
		return fatal("CrawlHub.CreateCrawlJob", err)
	}
	start := time.Now()

	visited := map[string]bool{src.BaseURL: true}
	queue := []string{src.BaseURL}

	for len(queue) > 0 && job.PagesCrawled < pageCap {
		next := queue[0]
		queue = queue[1:]

		res, costs, crawlErrs := o.Fetcher.Fetch(ctx, next, fetchConfig(src), job.ID)
		o.recordCosts(ctx, costs)
		o.recordCrawlErrors(ctx, crawlErrs)
		if res == nil || !res.Success {
			job.ErrorCount++
			o.logPageError(recoverable("CrawlHub.Fetch", errFetchFailed(next)))
			continue
		}
		job.PagesCrawled++

		if next == src.BaseURL && o.Fingerprinter != nil {
			o.checkFingerprint(ctx, src, res.Content)
		}

		brands, pagination, err := hub.Parse(res.Content, next, hub.Config{})
		if err != nil {
			job.ErrorCount++
			o.logPageError(recoverable("CrawlHub.Parse", err))
			continue
		}

		for _, b := range brands {
			if o.registerBrand(ctx, job.ID, b) {
				job.ProductsNew++
			}
		}

		for _, p := range pagination {
			if !visited[p] {
				visited[p] = true
				queue = append(queue, p)
			}
		}

		if o.YieldMonitor != nil && o.YieldMonitor.RecordPage(job.ID, len(brands)) {
			o.logPageError(recoverable("CrawlHub.YieldAbort", errYieldAborted(next)))
			break
		}
	}
	if o.YieldMonitor != nil {
		o.YieldMonitor.Reset(job.ID)
	}

	job.Status = models.CrawlJobCompleted
	job.CompletedAt.Time = time.Now()
	job.CompletedAt.Valid = true
	job.DurationMS = time.Since(start).Milliseconds()
	return o.Jobs.UpdateCrawlJob(ctx, nil, job)
}

// registerBrand resolves one hub.BrandEntry to a producer Source, via its
// own external link when present, otherwise via the Search Client, and
// registers it after a HEAD validation (§4.4: "validated (HEAD request <
// 500) and registered with discovery_source = hub"). Returns true if a new
// Source row was created.
func (o *HubOrchestrator) registerBrand(ctx context.Context, crawlJobID uuid.UUID, b hub.BrandEntry) bool {
	target := b.ExternalURL
	if target == "" && o.Searcher != nil {
		result, cost, err := o.Searcher.FindBrandOfficialSite(ctx, b.Name, crawlJobID)
		o.recordCosts(ctx, []models.CostRecord{cost})
		if err != nil || result == nil {
			return false
		}
		target = result.URL
	}
	if target == "" {
		return false
	}

	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return false
	}

	if o.DNSPreflight != nil {
		if err := o.DNSPreflight.Resolve(ctx, u.Hostname()); err != nil {
			o.logPageError(recoverable("registerBrand.DNSPreflight", err))
			return false
		}
	}

	status, err := o.Validator.Head(ctx, target)
	if err != nil || status >= 500 {
		return false
	}

	slug := slugifyHost(u.Host)

	if existing, err := o.Sources.GetSourceBySlug(ctx, nil, slug); err == nil && existing != nil {
		return false
	}

	newSrc := &models.Source{
		ID:                  uuid.New(),
		Name:                b.Name,
		Slug:                slug,
		BaseURL:             target,
		Category:            models.SourceCategoryProducer,
		RateLimitRPM:        config.DefaultRateLimitRPM,
		DiscoveryProvenance: models.DiscoveryProvenanceHub,
		Active:              true,
	}
	if err := o.Sources.CreateSource(ctx, nil, newSrc); err != nil {
		if o.Logger != nil {
			o.Logger.Warn("hub.register_source_failed", zap.String("slug", slug), zap.Error(err))
		}
		return false
	}
	return true
}

// logPageError records a recoverable per-page failure; the BFS walk keeps
// going with the next queued page regardless.
func (o *HubOrchestrator) logPageError(err error) {
	if o.Logger != nil {
		o.Logger.Warn("hub.page_error", zap.Error(err))
	}
}

// checkFingerprint compares the hub's seed page structure against the one
// persisted on src, updating the stored fingerprint regardless of outcome
// (§4.11: structural drift is informational, never aborts the crawl).
func (o *HubOrchestrator) checkFingerprint(ctx context.Context, src *models.Source, htmlBody string) {
	old, err := o.Sources.GetSourceStructuralFingerprint(ctx, nil, src.ID)
	if err != nil {
		o.logPageError(recoverable("checkFingerprint.Get", err))
		return
	}
	newFP, _, err := o.Fingerprinter.CheckAndUpdate(src.Slug, old, htmlBody)
	if err != nil {
		o.logPageError(recoverable("checkFingerprint.Compute", err))
		return
	}
	if newFP != old {
		if err := o.Sources.SetSourceStructuralFingerprint(ctx, nil, src.ID, newFP); err != nil {
			o.logPageError(recoverable("checkFingerprint.Set", err))
		}
	}
}

func errFetchFailed(target string) error {
	return &fetchFailedError{target: target}
}

type fetchFailedError struct{ target string }

func (e *fetchFailedError) Error() string { return "fetch failed: " + e.target }

func errYieldAborted(target string) error {
	return &yieldAbortedError{target: target}
}

type yieldAbortedError struct{ target string }

func (e *yieldAbortedError) Error() string { return "yield monitor aborted crawl at: " + e.target }

func slugifyHost(host string) string {
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	return host
}

func (o *HubOrchestrator) recordCosts(ctx context.Context, costs []models.CostRecord) {
	for _, c := range costs {
		c := c
		if o.Costs == nil {
			continue
		}
		if err := o.Costs.InsertCostRecord(ctx, nil, &c); err != nil && o.Logger != nil {
			o.Logger.Warn("hub.cost_record_failed", zap.Error(err))
		}
	}
}

func (o *HubOrchestrator) recordCrawlErrors(ctx context.Context, errs []models.CrawlError) {
	for _, e := range errs {
		e := e
		if o.Errors == nil {
			continue
		}
		if err := o.Errors.InsertCrawlError(ctx, nil, &e); err != nil && o.Logger != nil {
			o.Logger.Warn("hub.crawl_error_record_failed", zap.Error(err))
		}
	}
}

// restyHeadChecker is the production headChecker, a thin wrapper over
// resty.Client.
type restyHeadChecker struct {
	client *resty.Client
}

func newRestyHeadChecker() *restyHeadChecker {
	return &restyHeadChecker{client: resty.New().SetTimeout(10 * time.Second)}
}

func (r *restyHeadChecker) Head(ctx context.Context, url string) (int, error) {
	resp, err := r.client.R().SetContext(ctx).Head(url)
	if err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}

package orchestrate

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/fetchrouter"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/parsers/competition"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/search"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

type fakeSourceStore struct {
	store.SourceStore
	bySlug map[string]*models.Source
}

func (f *fakeSourceStore) GetSourceBySlug(ctx context.Context, exec store.Querier, slug string) (*models.Source, error) {
	src, ok := f.bySlug[slug]
	if !ok {
		return nil, store.ErrNotFound
	}
	return src, nil
}

func (f *fakeSourceStore) CreateSource(ctx context.Context, exec store.Querier, s *models.Source) error {
	if f.bySlug == nil {
		f.bySlug = map[string]*models.Source{}
	}
	f.bySlug[s.Slug] = s
	return nil
}

type fakeCrawlJobStore struct {
	store.CrawlJobStore
	jobs map[uuid.UUID]*models.CrawlJob
}

func (f *fakeCrawlJobStore) CreateCrawlJob(ctx context.Context, exec store.Querier, j *models.CrawlJob) error {
	if f.jobs == nil {
		f.jobs = map[uuid.UUID]*models.CrawlJob{}
	}
	f.jobs[j.ID] = j
	return nil
}

func (f *fakeCrawlJobStore) UpdateCrawlJob(ctx context.Context, exec store.Querier, j *models.CrawlJob) error {
	f.jobs[j.ID] = j
	return nil
}

type fakeFetcher struct {
	result *fetchrouter.Result
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string, src fetchrouter.SourceConfig, crawlJobID uuid.UUID) (*fetchrouter.Result, []models.CostRecord, []models.CrawlError) {
	return f.result, nil, nil
}

type fakeSkeletonCreator struct {
	products map[string]*models.Product
	calls    int
}

func (f *fakeSkeletonCreator) CreateSkeleton(ctx context.Context, key competition.CompetitionKey, rec competition.AwardRecord) (*models.Product, error) {
	f.calls++
	if p, ok := f.products[rec.ProductName]; ok {
		return p, nil
	}
	p := &models.Product{ID: uuid.New(), Name: rec.ProductName}
	if f.products == nil {
		f.products = map[string]*models.Product{}
	}
	f.products[rec.ProductName] = p
	return p, nil
}

type fakeSearcher struct {
	results []search.Result
}

func (f *fakeSearcher) Search(ctx context.Context, query string, num int, crawlJobID uuid.UUID) ([]search.Result, models.CostRecord, error) {
	return f.results, models.CostRecord{}, nil
}

func (f *fakeSearcher) FindBrandOfficialSite(ctx context.Context, brandName string, crawlJobID uuid.UUID) (*search.Result, models.CostRecord, error) {
	if len(f.results) == 0 {
		return nil, models.CostRecord{}, nil
	}
	return &f.results[0], models.CostRecord{}, nil
}

type fakeQueuer struct {
	added []string
}

func (f *fakeQueuer) Add(queueID, rawURL string, priority int, metadata json.RawMessage) bool {
	f.added = append(f.added, rawURL)
	return true
}

func TestTriggerCompetitionCrawlUnknownKey(t *testing.T) {
	o := &CompetitionOrchestrator{Sources: &fakeSourceStore{}, Jobs: &fakeCrawlJobStore{}}
	_, err := o.TriggerCompetitionCrawl(context.Background(), competition.CompetitionKey("made_up"), 2026)
	require.Error(t, err)
	var oerr *Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, ErrorFatal, oerr.Kind)
}

func TestTriggerCompetitionCrawlCreatesJobImmediately(t *testing.T) {
	srcID := uuid.New()
	sources := &fakeSourceStore{bySlug: map[string]*models.Source{
		"iwsc": {ID: srcID, Slug: "iwsc", BaseURL: "https://iwsc.example/results"},
	}}
	jobs := &fakeCrawlJobStore{}
	o := &CompetitionOrchestrator{
		Sources: sources,
		Jobs:    jobs,
		Fetcher: &fakeFetcher{result: &fetchrouter.Result{Success: false}},
	}

	job, err := o.TriggerCompetitionCrawl(context.Background(), competition.IWSC, 2026)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, srcID, job.SourceID)
	assert.Equal(t, models.CrawlJobRunning, job.Status)

	// background run completes asynchronously
	assert.Eventually(t, func() bool {
		j := jobs.jobs[job.ID]
		return j != nil && j.Status == models.CrawlJobFailed
	}, time.Second, 10*time.Millisecond)
}

func TestCompetitionRunCreatesSkeletonsAndEnriches(t *testing.T) {
	srcID := uuid.New()
	src := &models.Source{ID: srcID, Slug: "iwsc", BaseURL: "https://iwsc.example/results"}
	jobs := &fakeCrawlJobStore{}
	job := &models.CrawlJob{ID: uuid.New(), SourceID: srcID, Status: models.CrawlJobRunning}
	jobs.jobs = map[uuid.UUID]*models.CrawlJob{job.ID: job}

	html := `<div class="award-result">
		<div class="result-product">Islay Single Malt 12yo</div>
		<div class="result-medal">Gold</div>
		<div class="result-producer">Test Distillery</div>
		<div class="result-score">95</div>
	</div>`

	searcher := &fakeSearcher{results: []search.Result{
		{URL: "https://producer.example/gold", Domain: "producer.example"},
		{URL: "https://facebook.com/spam", Domain: "facebook.com"},
	}}
	queue := &fakeQueuer{}
	skel := &fakeSkeletonCreator{}

	o := &CompetitionOrchestrator{
		Jobs:     jobs,
		Fetcher:  &fakeFetcher{result: &fetchrouter.Result{Success: true, Content: html}},
		Skeleton: skel,
		Searcher: searcher,
		Frontier: queue,
	}

	o.run(context.Background(), job, src, competition.IWSC, 2026)

	assert.Equal(t, models.CrawlJobCompleted, job.Status)
	assert.Equal(t, 1, skel.calls)
	assert.Equal(t, 1, job.ProductsNew)
	// three query suffixes x one non-excluded result each = 3 enqueued
	assert.Len(t, queue.added, 3)
	for _, u := range queue.added {
		assert.NotContains(t, u, "facebook.com")
	}
}

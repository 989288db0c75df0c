package orchestrate

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/fetchrouter"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/search"
)

type stubHeadChecker struct {
	status int
	err    error
}

func (s *stubHeadChecker) Head(ctx context.Context, url string) (int, error) {
	return s.status, s.err
}

type pagedFetcher struct {
	pages map[string]string
}

func (f *pagedFetcher) Fetch(ctx context.Context, url string, src fetchrouter.SourceConfig, crawlJobID uuid.UUID) (*fetchrouter.Result, []models.CostRecord, []models.CrawlError) {
	content, ok := f.pages[url]
	if !ok {
		return &fetchrouter.Result{Success: false}, nil, nil
	}
	return &fetchrouter.Result{Success: true, Content: content}, nil, nil
}

func TestCrawlHubRegistersProducerSource(t *testing.T) {
	hubURL := "https://hub.example/brands"
	html := `<a href="https://producer-one.example/">Producer One</a>
	<a href="/internal-page">Next</a>`

	sources := &fakeSourceStore{}
	jobs := &fakeCrawlJobStore{}

	o := &HubOrchestrator{
		Sources:   sources,
		Jobs:      jobs,
		Fetcher:   &pagedFetcher{pages: map[string]string{hubURL: html}},
		Validator: &stubHeadChecker{status: 200},
		PageCap:   5,
	}

	src := &models.Source{ID: uuid.New(), BaseURL: hubURL}
	err := o.CrawlHub(context.Background(), src)
	require.NoError(t, err)

	registered, ok := sources.bySlug["producer-one.example"]
	require.True(t, ok)
	assert.Equal(t, models.SourceCategoryProducer, registered.Category)
	assert.Equal(t, models.DiscoveryProvenanceHub, registered.DiscoveryProvenance)
	assert.Equal(t, "https://producer-one.example/", registered.BaseURL)
}

func TestCrawlHubSkipsUnreachableCandidate(t *testing.T) {
	hubURL := "https://hub.example/brands"
	html := `<a href="https://dead-producer.example/">Dead Producer</a>`

	sources := &fakeSourceStore{}
	jobs := &fakeCrawlJobStore{}

	o := &HubOrchestrator{
		Sources:   sources,
		Jobs:      jobs,
		Fetcher:   &pagedFetcher{pages: map[string]string{hubURL: html}},
		Validator: &stubHeadChecker{status: 503},
	}

	src := &models.Source{ID: uuid.New(), BaseURL: hubURL}
	err := o.CrawlHub(context.Background(), src)
	require.NoError(t, err)
	assert.Empty(t, sources.bySlug)
}

func TestCrawlHubFallsBackToSearchForBrandWithoutExternalLink(t *testing.T) {
	hubURL := "https://hub.example/brands"
	html := `<a href="/internal/brand-two">Brand Two</a>`

	sources := &fakeSourceStore{}
	jobs := &fakeCrawlJobStore{}
	searcher := &fakeSearcher{results: []search.Result{
		{URL: "https://brand-two.example/", Domain: "brand-two.example"},
	}}

	o := &HubOrchestrator{
		Sources:   sources,
		Jobs:      jobs,
		Fetcher:   &pagedFetcher{pages: map[string]string{hubURL: html}},
		Searcher:  searcher,
		Validator: &stubHeadChecker{status: 200},
	}

	src := &models.Source{ID: uuid.New(), BaseURL: hubURL}
	err := o.CrawlHub(context.Background(), src)
	require.NoError(t, err)

	_, ok := sources.bySlug["brand-two.example"]
	assert.True(t, ok)
}

func TestSlugifyHostStripsWWW(t *testing.T) {
	assert.Equal(t, "example.com", slugifyHost("WWW.Example.com"))
	assert.Equal(t, "example.com", slugifyHost("example.com"))
}

package orchestrate

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

type dueSourceStore struct {
	fakeSourceStore
	due     []*models.Source
	updated []*models.Source
}

func (d *dueSourceStore) ListDueSources(ctx context.Context, exec store.Querier) ([]*models.Source, error) {
	return d.due, nil
}

func (d *dueSourceStore) UpdateSourceSchedule(ctx context.Context, exec store.Querier, s *models.Source) error {
	d.updated = append(d.updated, s)
	return nil
}

type fakeCompetitionCrawler struct {
	crawled []string
}

func (f *fakeCompetitionCrawler) CrawlDueSource(ctx context.Context, src *models.Source) error {
	f.crawled = append(f.crawled, src.Slug)
	return nil
}

func TestSweepDispatchesByCategory(t *testing.T) {
	retailer := &models.Source{ID: uuid.New(), Slug: "some-hub", Category: models.SourceCategoryRetailer, BaseURL: "https://some-hub.example/"}
	comp := &models.Source{ID: uuid.New(), Slug: "iwsc", Category: models.SourceCategoryCompetition}
	unsupported := &models.Source{ID: uuid.New(), Slug: "some-news", Category: models.SourceCategoryNews}

	sources := &dueSourceStore{due: []*models.Source{retailer, comp, unsupported}}
	jobs := &fakeCrawlJobStore{}
	compCrawler := &fakeCompetitionCrawler{}

	hub := &HubOrchestrator{
		Sources:   sources,
		Jobs:      jobs,
		Fetcher:   &pagedFetcher{pages: map[string]string{}},
		Validator: &stubHeadChecker{status: 200},
	}

	s := &Sweeper{Sources: sources, Hub: hub, Comp: compCrawler}
	err := s.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"iwsc"}, compCrawler.crawled)
	// all three due sources get rescheduled regardless of outcome
	assert.Len(t, sources.updated, 3)
}

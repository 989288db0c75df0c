package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/parsers/competition"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, h, nil)
	return router
}

func TestExtractURLsRejectsOverCap(t *testing.T) {
	h := &Handler{}
	router := newTestRouter(h)

	urls := make([]string, 51)
	for i := range urls {
		urls[i] = "https://example.com/p" + string(rune('a'+i%26))
	}
	body, err := json.Marshal(ExtractURLsRequest{URLs: urls})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/extract_urls", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCrawlAwardsUnknownSourceRejected(t *testing.T) {
	h := &Handler{}
	router := newTestRouter(h)

	body := `{"source":"not_a_real_source"}`
	req := httptest.NewRequest(http.MethodPost, "/crawl_awards", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fakeOrchestrator struct {
	job *models.CrawlJob
	err error
}

func (f *fakeOrchestrator) TriggerCompetitionCrawl(ctx context.Context, key competition.CompetitionKey, year int) (*models.CrawlJob, error) {
	return f.job, f.err
}

func TestCrawlAwardsTriggersOrchestrator(t *testing.T) {
	job := &models.CrawlJob{ID: uuid.New(), Status: models.CrawlJobRunning}
	h := &Handler{Orchestrator: &fakeOrchestrator{job: job}}
	router := newTestRouter(h)

	body := `{"source":"wwa","year":2025}`
	req := httptest.NewRequest(http.MethodPost, "/crawl_awards", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp CrawlAwardsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, job.ID, resp.JobID)
	assert.Equal(t, models.CrawlJobRunning, resp.Status)
}

type fakeCrawlJobStore struct {
	store.CrawlJobStore
	job *models.CrawlJob
	err error
}

func (f *fakeCrawlJobStore) GetCrawlJobByID(ctx context.Context, exec store.Querier, id uuid.UUID) (*models.CrawlJob, error) {
	return f.job, f.err
}

func TestCrawlAwardsStatusNotFound(t *testing.T) {
	h := &Handler{CrawlJobStore: &fakeCrawlJobStore{err: store.ErrNotFound}}
	router := newTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/crawl_awards_status/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCrawlAwardsStatusReturnsCounters(t *testing.T) {
	job := &models.CrawlJob{
		Status: models.CrawlJobCompleted, PagesCrawled: 12, ProductsFound: 9,
		ProductsNew: 4, ProductsUpdated: 5, ErrorCount: 1,
	}
	h := &Handler{CrawlJobStore: &fakeCrawlJobStore{job: job}}
	router := newTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/crawl_awards_status/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp CrawlAwardsStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.CrawlJobCompleted, resp.Status)
	assert.Equal(t, 9, resp.Counters.ProductsFound)
	assert.Equal(t, 1, resp.Errors)
}

type fakeProductStoreForHealth struct {
	store.ProductStore
	counts map[models.ProductStatusEnum]int
}

func (f *fakeProductStoreForHealth) CountProductsByStatus(ctx context.Context, exec store.Querier) (map[models.ProductStatusEnum]int, error) {
	return f.counts, nil
}

func TestHealthNilDBReportsOK(t *testing.T) {
	h := &Handler{ProductStore: &fakeProductStoreForHealth{counts: map[models.ProductStatusEnum]int{
		models.ProductStatusVerified: 8, models.ProductStatusSkeleton: 2,
	}}}
	router := newTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.InDelta(t, 0.8, resp.RecentSuccessRate, 0.001)
}

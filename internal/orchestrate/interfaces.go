package orchestrate

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/fetchrouter"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/parsers/competition"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/search"
)

// fetcher is the subset of internal/fetchrouter.Router both orchestrators
// need, the same narrow-interface seam internal/verify uses for testability.
type fetcher interface {
	Fetch(ctx context.Context, url string, src fetchrouter.SourceConfig, crawlJobID uuid.UUID) (*fetchrouter.Result, []models.CostRecord, []models.CrawlError)
}

// searcher is the subset of internal/search.Client both orchestrators need.
type searcher interface {
	Search(ctx context.Context, query string, num int, crawlJobID uuid.UUID) ([]search.Result, models.CostRecord, error)
	FindBrandOfficialSite(ctx context.Context, brandName string, crawlJobID uuid.UUID) (*search.Result, models.CostRecord, error)
}

// skeletonCreator is the subset of internal/skeleton.Manager the Competition
// Orchestrator needs.
type skeletonCreator interface {
	CreateSkeleton(ctx context.Context, key competition.CompetitionKey, rec competition.AwardRecord) (*models.Product, error)
}

// queuer is the subset of internal/frontier.Frontier the Competition
// Orchestrator's enrichment pass needs.
type queuer interface {
	Add(queueID, rawURL string, priority int, metadata json.RawMessage) bool
}

// headChecker validates a candidate producer URL before the Hub
// Orchestrator registers it as a Source (§4.4: "validated (HEAD request <
// 500)"). The default implementation wraps a resty.Client; tests supply a
// stub.
type headChecker interface {
	Head(ctx context.Context, url string) (status int, err error)
}

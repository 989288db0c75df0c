// Package store defines the persistence-layer contracts for every §3
// entity. internal/store/postgres implements them against PostgreSQL;
// internal/store/cached wraps the product reads with an in-memory TTL
// cache. Querier/Transactor let call sites interchange *sqlx.DB and
// *sqlx.Tx transparently, the same seam the teacher's store package uses
// for its campaign persistence.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

// ErrNotFound is returned by single-row lookups that match zero rows.
var ErrNotFound = errors.New("not found")

// Querier is satisfied by both *sqlx.DB and *sqlx.Tx, letting store methods
// run standalone or as part of a caller-managed transaction.
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Transactor starts a new transaction rooted at the store's pool.
type Transactor interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// ListProductsFilter narrows ListProducts. No REST endpoint calls
// ListProducts.
type ListProductsFilter struct {
	Status      models.ProductStatusEnum
	ProductType models.ProductTypeEnum
	BrandID     string
	Limit       int
	Offset      int
}

// ProductStore is the full persistence surface for models.Product, and is
// the concrete type that satisfies internal/matcher.CandidateStore and
// internal/skeleton.Store (both narrower interfaces defined at their point
// of use, not here).
type ProductStore interface {
	Transactor

	GetProductByID(ctx context.Context, exec Querier, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, exec Querier, p *models.Product) error
	UpdateProduct(ctx context.Context, exec Querier, p *models.Product) error
	ListProducts(ctx context.Context, exec Querier, filter ListProductsFilter) ([]*models.Product, error)
	CountProductsByStatus(ctx context.Context, exec Querier) (map[models.ProductStatusEnum]int, error)

	FindByGTIN(gtin string) (*models.Product, error)
	FindByFingerprint(fingerprint string) (*models.Product, error)
	CandidatesByProductType(pt models.ProductTypeEnum) ([]models.Product, error)

	FindProductBySkeletonFingerprint(ctx context.Context, fingerprint string) (*models.Product, error)
	FindProductByNameSubstring(ctx context.Context, name string) (*models.Product, error)
	CreateSkeletonProduct(ctx context.Context, p *models.Product) error
}

// AwardStore is the persistence surface for models.Award, satisfying
// internal/awards.Store.
type AwardStore interface {
	ListAwardsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Award, error)
	InsertAward(ctx context.Context, a *models.Award) error
	AddDiscoverySource(ctx context.Context, productID uuid.UUID, source string) error
}

// BrandStore is the persistence surface for models.Brand.
type BrandStore interface {
	GetBrandByID(ctx context.Context, exec Querier, id uuid.UUID) (*models.Brand, error)
	GetBrandBySlug(ctx context.Context, exec Querier, slug string) (*models.Brand, error)
	CreateBrand(ctx context.Context, exec Querier, b *models.Brand) error
}

// SourceStore is the persistence surface for models.Source.
type SourceStore interface {
	GetSourceByID(ctx context.Context, exec Querier, id uuid.UUID) (*models.Source, error)
	GetSourceBySlug(ctx context.Context, exec Querier, slug string) (*models.Source, error)
	CreateSource(ctx context.Context, exec Querier, s *models.Source) error
	ListActiveSources(ctx context.Context, exec Querier) ([]*models.Source, error)
	ListDueSources(ctx context.Context, exec Querier) ([]*models.Source, error)
	UpdateSourceSchedule(ctx context.Context, exec Querier, s *models.Source) error
	GetSourceStructuralFingerprint(ctx context.Context, exec Querier, sourceID uuid.UUID) (string, error)
	SetSourceStructuralFingerprint(ctx context.Context, exec Querier, sourceID uuid.UUID, fp string) error
}

// CrawlJobStore is the persistence surface for models.CrawlJob.
type CrawlJobStore interface {
	CreateCrawlJob(ctx context.Context, exec Querier, j *models.CrawlJob) error
	GetCrawlJobByID(ctx context.Context, exec Querier, id uuid.UUID) (*models.CrawlJob, error)
	UpdateCrawlJob(ctx context.Context, exec Querier, j *models.CrawlJob) error
}

// FieldProvenanceStore is the persistence surface for models.FieldProvenance.
type FieldProvenanceStore interface {
	UpsertFieldProvenance(ctx context.Context, exec Querier, fp *models.FieldProvenance) error
	ListFieldProvenanceByProduct(ctx context.Context, exec Querier, productID uuid.UUID) ([]models.FieldProvenance, error)
}

// CrawlErrorStore persists models.CrawlError records (§7).
type CrawlErrorStore interface {
	InsertCrawlError(ctx context.Context, exec Querier, e *models.CrawlError) error
}

// CostRecordStore persists models.CostRecord metering events (§5: "fire and
// forget, must not fail the originating request").
type CostRecordStore interface {
	InsertCostRecord(ctx context.Context, exec Querier, c *models.CostRecord) error
}

// QueueStore is the persistence surface for models.QueueEntry, satisfying
// internal/frontier.SeenStore plus the enqueue/dequeue bookkeeping a
// restart needs to repopulate the in-memory Frontier.
type QueueStore interface {
	LoadSeenFingerprints(retentionDays int) ([]string, error)
	RecordSeenFingerprint(fingerprint, queueID, rawURL string) error
	EnqueueURL(ctx context.Context, exec Querier, e *models.QueueEntry) error
	MarkQueueEntryDone(ctx context.Context, exec Querier, id uuid.UUID) error
}

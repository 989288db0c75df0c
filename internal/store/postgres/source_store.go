package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

const sourceColumns = `
	id, name, slug, base_url, category, product_types,
	priority, crawl_frequency_hours, rate_limit_requests_per_minute,
	requires_js, requires_proxy, requires_managed_proxy,
	age_gate_mechanism, age_gate_cookies, discovery_provenance,
	robots_ok, tos_ok, active, last_crawl_at, next_crawl_at,
	created_at, updated_at`

type SourceStorePostgres struct {
	db *sqlx.DB
}

func NewSourceStore(db *sqlx.DB) *SourceStorePostgres {
	return &SourceStorePostgres{db: db}
}

func (s *SourceStorePostgres) GetSourceByID(ctx context.Context, exec store.Querier, id uuid.UUID) (*models.Source, error) {
	exec = execOrDB(exec, s.db)
	src := &models.Source{}
	query := `SELECT ` + sourceColumns + ` FROM source WHERE id = $1`
	if err := exec.GetContext(ctx, src, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return src, nil
}

// GetSourceBySlug looks up a Source by its unique slug, used by the
// Competition Orchestrator to resolve a CompetitionKey onto its Source row.
func (s *SourceStorePostgres) GetSourceBySlug(ctx context.Context, exec store.Querier, slug string) (*models.Source, error) {
	exec = execOrDB(exec, s.db)
	src := &models.Source{}
	query := `SELECT ` + sourceColumns + ` FROM source WHERE slug = $1`
	if err := exec.GetContext(ctx, src, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return src, nil
}

// CreateSource registers a newly discovered Source (§4.4: Hub Orchestrator
// registering a producer site), defaulting its schedule so it's picked up by
// the next sweep.
func (s *SourceStorePostgres) CreateSource(ctx context.Context, exec store.Querier, src *models.Source) error {
	exec = execOrDB(exec, s.db)
	if src.ID == uuid.Nil {
		src.ID = uuid.New()
	}
	query := `INSERT INTO source (` + sourceColumns + `) VALUES (
		:id, :name, :slug, :base_url, :category, :product_types,
		:priority, :crawl_frequency_hours, :rate_limit_requests_per_minute,
		:requires_js, :requires_proxy, :requires_managed_proxy,
		:age_gate_mechanism, :age_gate_cookies, :discovery_provenance,
		:robots_ok, :tos_ok, :active, :last_crawl_at, :next_crawl_at,
		now(), now())
		ON CONFLICT (slug) DO NOTHING`
	_, err := exec.NamedExecContext(ctx, query, src)
	return err
}

func (s *SourceStorePostgres) ListActiveSources(ctx context.Context, exec store.Querier) ([]*models.Source, error) {
	exec = execOrDB(exec, s.db)
	var sources []*models.Source
	query := `SELECT ` + sourceColumns + ` FROM source WHERE active = true`
	if err := exec.SelectContext(ctx, &sources, query); err != nil {
		return nil, err
	}
	return sources, nil
}

// ListDueSources implements the background sweeper's poll query (§4.2): a
// source is due per models.Source.IsDue, which this mirrors in SQL so the
// sweeper doesn't load every active source to filter in Go.
func (s *SourceStorePostgres) ListDueSources(ctx context.Context, exec store.Querier) ([]*models.Source, error) {
	exec = execOrDB(exec, s.db)
	var sources []*models.Source
	query := `SELECT ` + sourceColumns + ` FROM source
	          WHERE active = true AND (next_crawl_at IS NULL OR next_crawl_at <= now())`
	if err := exec.SelectContext(ctx, &sources, query); err != nil {
		return nil, err
	}
	return sources, nil
}

func (s *SourceStorePostgres) UpdateSourceSchedule(ctx context.Context, exec store.Querier, src *models.Source) error {
	exec = execOrDB(exec, s.db)
	query := `UPDATE source SET last_crawl_at = :last_crawl_at, next_crawl_at = :next_crawl_at,
	          updated_at = :updated_at WHERE id = :id`
	_, err := exec.NamedExecContext(ctx, query, src)
	return err
}

func (s *SourceStorePostgres) GetSourceStructuralFingerprint(ctx context.Context, exec store.Querier, sourceID uuid.UUID) (string, error) {
	exec = execOrDB(exec, s.db)
	var fp sql.NullString
	err := exec.GetContext(ctx, &fp, `SELECT structural_fingerprint FROM source WHERE id = $1`, sourceID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return fp.String, nil
}

func (s *SourceStorePostgres) SetSourceStructuralFingerprint(ctx context.Context, exec store.Querier, sourceID uuid.UUID, fp string) error {
	exec = execOrDB(exec, s.db)
	_, err := exec.ExecContext(ctx, `UPDATE source SET structural_fingerprint = $2 WHERE id = $1`, sourceID, fp)
	return err
}

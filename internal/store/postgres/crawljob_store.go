package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

const crawlJobColumns = `
	id, source_id, status, pages_crawled, products_found, products_new,
	products_updated, error_count, started_at, completed_at, duration_ms,
	result_summary, created_at, updated_at`

type CrawlJobStorePostgres struct {
	db *sqlx.DB
}

func NewCrawlJobStore(db *sqlx.DB) *CrawlJobStorePostgres {
	return &CrawlJobStorePostgres{db: db}
}

func (s *CrawlJobStorePostgres) CreateCrawlJob(ctx context.Context, exec store.Querier, j *models.CrawlJob) error {
	exec = execOrDB(exec, s.db)
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	query := `INSERT INTO crawl_job (` + crawlJobColumns + `) VALUES (
		:id, :source_id, :status, :pages_crawled, :products_found, :products_new,
		:products_updated, :error_count, :started_at, :completed_at, :duration_ms,
		:result_summary, :created_at, :updated_at)`
	_, err := exec.NamedExecContext(ctx, query, j)
	return err
}

func (s *CrawlJobStorePostgres) GetCrawlJobByID(ctx context.Context, exec store.Querier, id uuid.UUID) (*models.CrawlJob, error) {
	exec = execOrDB(exec, s.db)
	j := &models.CrawlJob{}
	query := `SELECT ` + crawlJobColumns + ` FROM crawl_job WHERE id = $1`
	if err := exec.GetContext(ctx, j, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return j, nil
}

func (s *CrawlJobStorePostgres) UpdateCrawlJob(ctx context.Context, exec store.Querier, j *models.CrawlJob) error {
	exec = execOrDB(exec, s.db)
	query := `UPDATE crawl_job SET status = :status, pages_crawled = :pages_crawled,
		products_found = :products_found, products_new = :products_new,
		products_updated = :products_updated, error_count = :error_count,
		started_at = :started_at, completed_at = :completed_at, duration_ms = :duration_ms,
		result_summary = :result_summary, updated_at = :updated_at
		WHERE id = :id`
	_, err := exec.NamedExecContext(ctx, query, j)
	return err
}

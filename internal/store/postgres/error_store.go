package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

type CrawlErrorStorePostgres struct {
	db *sqlx.DB
}

func NewCrawlErrorStore(db *sqlx.DB) *CrawlErrorStorePostgres {
	return &CrawlErrorStorePostgres{db: db}
}

func (s *CrawlErrorStorePostgres) InsertCrawlError(ctx context.Context, exec store.Querier, e *models.CrawlError) error {
	exec = execOrDB(exec, s.db)
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	query := `INSERT INTO crawl_error (id, source_id, url, kind, message, stack_trace, tier,
	          http_status, headers, timestamp, resolved)
	          VALUES (:id, :source_id, :url, :kind, :message, :stack_trace, :tier,
	          :http_status, :headers, :timestamp, :resolved)`
	_, err := exec.NamedExecContext(ctx, query, e)
	return err
}

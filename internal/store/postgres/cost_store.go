package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

type CostRecordStorePostgres struct {
	db *sqlx.DB
}

func NewCostRecordStore(db *sqlx.DB) *CostRecordStorePostgres {
	return &CostRecordStorePostgres{db: db}
}

// InsertCostRecord is called fire-and-forget by callers (§5): a failure here
// must never fail the originating request, so callers log and drop the
// error rather than propagate it up the request path.
func (s *CostRecordStorePostgres) InsertCostRecord(ctx context.Context, exec store.Querier, c *models.CostRecord) error {
	exec = execOrDB(exec, s.db)
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	query := `INSERT INTO cost_record (id, service, cost_cents, request_count, crawl_job_id, timestamp)
	          VALUES (:id, :service, :cost_cents, :request_count, :crawl_job_id, :timestamp)`
	_, err := exec.NamedExecContext(ctx, query, c)
	return err
}

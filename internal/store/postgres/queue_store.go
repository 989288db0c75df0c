package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

// QueueStorePostgres implements internal/frontier.SeenStore plus the
// enqueue/dequeue bookkeeping that repopulates the in-memory Frontier on
// restart (§5: "Frontier seen-set/host-budgets in-memory with persistent
// snapshotting").
type QueueStorePostgres struct {
	db *sqlx.DB
}

func NewQueueStore(db *sqlx.DB) *QueueStorePostgres {
	return &QueueStorePostgres{db: db}
}

func (s *QueueStorePostgres) LoadSeenFingerprints(retentionDays int) ([]string, error) {
	var fingerprints []string
	query := `SELECT DISTINCT fingerprint FROM queue_seen WHERE seen_at >= now() - ($1 || ' days')::interval`
	if err := s.db.SelectContext(context.Background(), &fingerprints, query, retentionDays); err != nil {
		return nil, err
	}
	return fingerprints, nil
}

func (s *QueueStorePostgres) RecordSeenFingerprint(fingerprint, queueID, rawURL string) error {
	query := `INSERT INTO queue_seen (fingerprint, queue_id, url, seen_at)
	          VALUES ($1, $2, $3, now())
	          ON CONFLICT (fingerprint) DO NOTHING`
	_, err := s.db.ExecContext(context.Background(), query, fingerprint, queueID, rawURL)
	return err
}

func (s *QueueStorePostgres) EnqueueURL(ctx context.Context, exec store.Querier, e *models.QueueEntry) error {
	exec = execOrDB(exec, s.db)
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	query := `INSERT INTO queue_entry (id, queue_id, url, priority, metadata, attempts, done, created_at, updated_at)
	          VALUES (:id, :queue_id, :url, :priority, :metadata, :attempts, :done, :created_at, :updated_at)`
	_, err := exec.NamedExecContext(ctx, query, e)
	return err
}

func (s *QueueStorePostgres) MarkQueueEntryDone(ctx context.Context, exec store.Querier, id uuid.UUID) error {
	exec = execOrDB(exec, s.db)
	_, err := exec.ExecContext(ctx, `UPDATE queue_entry SET done = true, updated_at = now() WHERE id = $1`, id)
	return err
}

package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

// FieldProvenanceStorePostgres persists the (product, field_name, source)
// observation log (§3). The unique key lets repeated extraction of the same
// field from the same source collapse into one row.
type FieldProvenanceStorePostgres struct {
	db *sqlx.DB
}

func NewFieldProvenanceStore(db *sqlx.DB) *FieldProvenanceStorePostgres {
	return &FieldProvenanceStorePostgres{db: db}
}

func (s *FieldProvenanceStorePostgres) UpsertFieldProvenance(ctx context.Context, exec store.Querier, fp *models.FieldProvenance) error {
	exec = execOrDB(exec, s.db)
	if fp.ID == uuid.Nil {
		fp.ID = uuid.New()
	}
	query := `INSERT INTO field_provenance (id, product_id, field_name, source, raw_value, confidence, extracted_at)
	          VALUES (:id, :product_id, :field_name, :source, :raw_value, :confidence, :extracted_at)
	          ON CONFLICT (product_id, field_name, source) DO UPDATE SET
	              raw_value = EXCLUDED.raw_value,
	              confidence = EXCLUDED.confidence,
	              extracted_at = EXCLUDED.extracted_at`
	_, err := exec.NamedExecContext(ctx, query, fp)
	return err
}

func (s *FieldProvenanceStorePostgres) ListFieldProvenanceByProduct(ctx context.Context, exec store.Querier, productID uuid.UUID) ([]models.FieldProvenance, error) {
	exec = execOrDB(exec, s.db)
	var rows []models.FieldProvenance
	query := `SELECT id, product_id, field_name, source, raw_value, confidence, extracted_at
	          FROM field_provenance WHERE product_id = $1`
	if err := exec.SelectContext(ctx, &rows, query, productID); err != nil {
		return nil, err
	}
	return rows, nil
}

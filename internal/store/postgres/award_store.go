package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

// AwardStorePostgres implements internal/awards.Store.
type AwardStorePostgres struct {
	db *sqlx.DB
}

func NewAwardStore(db *sqlx.DB) *AwardStorePostgres {
	return &AwardStorePostgres{db: db}
}

func (s *AwardStorePostgres) ListAwardsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Award, error) {
	var awards []models.Award
	query := `SELECT id, product_id, competition, year, medal, score, award_category,
	                  award_image_url, created_at
	           FROM award WHERE product_id = $1`
	if err := s.db.SelectContext(ctx, &awards, query, productID); err != nil {
		return nil, err
	}
	return awards, nil
}

func (s *AwardStorePostgres) InsertAward(ctx context.Context, a *models.Award) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	query := `INSERT INTO award (id, product_id, competition, year, medal, score, award_category, award_image_url)
	          VALUES (:id, :product_id, :competition, :year, :medal, :score, :award_category, :award_image_url)
	          ON CONFLICT (product_id, competition, year, medal) DO NOTHING`
	_, err := s.db.NamedExecContext(ctx, query, a)
	return err
}

func (s *AwardStorePostgres) AddDiscoverySource(ctx context.Context, productID uuid.UUID, source string) error {
	query := `UPDATE product
	          SET discovery_sources = ARRAY(SELECT DISTINCT unnest(discovery_sources || $2::text))
	          WHERE id = $1`
	_, err := s.db.ExecContext(ctx, query, productID, source)
	return err
}

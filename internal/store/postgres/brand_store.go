package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

type BrandStorePostgres struct {
	db *sqlx.DB
}

func NewBrandStore(db *sqlx.DB) *BrandStorePostgres {
	return &BrandStorePostgres{db: db}
}

func (s *BrandStorePostgres) GetBrandByID(ctx context.Context, exec store.Querier, id uuid.UUID) (*models.Brand, error) {
	exec = execOrDB(exec, s.db)
	b := &models.Brand{}
	query := `SELECT id, name, slug, country, region, created_at, updated_at FROM brand WHERE id = $1`
	if err := exec.GetContext(ctx, b, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BrandStorePostgres) GetBrandBySlug(ctx context.Context, exec store.Querier, slug string) (*models.Brand, error) {
	exec = execOrDB(exec, s.db)
	b := &models.Brand{}
	query := `SELECT id, name, slug, country, region, created_at, updated_at FROM brand WHERE slug = $1`
	if err := exec.GetContext(ctx, b, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BrandStorePostgres) CreateBrand(ctx context.Context, exec store.Querier, b *models.Brand) error {
	exec = execOrDB(exec, s.db)
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	query := `INSERT INTO brand (id, name, slug, country, region, created_at, updated_at)
	          VALUES (:id, :name, :slug, :country, :region, :created_at, :updated_at)
	          ON CONFLICT (slug) DO NOTHING`
	_, err := exec.NamedExecContext(ctx, query, b)
	return err
}

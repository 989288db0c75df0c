package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

// DetailStorePostgres implements internal/skeleton's DetailStore: persisting
// the type-specific detail record internal/detailpopulator builds for a
// newly created whiskey or port wine product.
type DetailStorePostgres struct {
	db *sqlx.DB
}

func NewDetailStore(db *sqlx.DB) *DetailStorePostgres {
	return &DetailStorePostgres{db: db}
}

func (s *DetailStorePostgres) UpsertWhiskeyDetails(ctx context.Context, d *models.WhiskeyDetails) error {
	query := `INSERT INTO whiskey_details (product_id, whiskey_type, distillery, mash_bill,
	                  cask_strength, single_cask, peated, natural_color, non_chill_filtered,
	                  peat_level, peat_ppm, vintage_year, bottling_year, batch_number, cask_number)
	          VALUES (:product_id, :whiskey_type, :distillery, :mash_bill,
	                  :cask_strength, :single_cask, :peated, :natural_color, :non_chill_filtered,
	                  :peat_level, :peat_ppm, :vintage_year, :bottling_year, :batch_number, :cask_number)
	          ON CONFLICT (product_id) DO UPDATE SET
	                  whiskey_type = EXCLUDED.whiskey_type, distillery = EXCLUDED.distillery`
	_, err := s.db.NamedExecContext(ctx, query, d)
	return err
}

func (s *DetailStorePostgres) UpsertPortWineDetails(ctx context.Context, d *models.PortWineDetails) error {
	query := `INSERT INTO port_wine_details (product_id, style, indication_age, harvest_year,
	                  bottling_year, producer_house, quinta, douro_subregion, grape_varieties,
	                  decanting_required, drinking_window)
	          VALUES (:product_id, :style, :indication_age, :harvest_year,
	                  :bottling_year, :producer_house, :quinta, :douro_subregion, :grape_varieties,
	                  :decanting_required, :drinking_window)
	          ON CONFLICT (product_id) DO UPDATE SET
	                  style = EXCLUDED.style, producer_house = EXCLUDED.producer_house`
	_, err := s.db.NamedExecContext(ctx, query, d)
	return err
}

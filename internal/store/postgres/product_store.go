package postgres

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

const productColumns = `
	id, name, gtin, brand_id, product_type, abv, volume_ml, age_statement,
	country, region, category, description,
	primary_cask, finishing_cask, wood_type, cask_treatment,
	color_description, color_intensity, clarity, viscosity,
	nose_description, primary_aromas, nose_intensity, secondary_aromas, nose_evolution,
	initial_taste, mid_palate_evolution, palate_description, palate_flavors,
	flavor_intensity, complexity, mouthfeel,
	finish_description, finish_flavors, finish_length, finish_warmth, finish_dryness,
	finish_evolution, finish_final_notes,
	overall_balance, overall_complexity, overall_uniqueness, overall_drinkability,
	price_quality_ratio, experience_level, serving_recommendation, food_pairings,
	best_price, images, ratings, awards,
	completeness_score, status, source_count, verified_fields, extraction_confidence,
	discovery_source, discovery_sources, fingerprint, match_confidence,
	has_conflicts, conflict_details,
	award_count, rating_count, price_count, mention_count,
	source_url, created_at, updated_at`

const productNamedColumns = `
	:id, :name, :gtin, :brand_id, :product_type, :abv, :volume_ml, :age_statement,
	:country, :region, :category, :description,
	:primary_cask, :finishing_cask, :wood_type, :cask_treatment,
	:color_description, :color_intensity, :clarity, :viscosity,
	:nose_description, :primary_aromas, :nose_intensity, :secondary_aromas, :nose_evolution,
	:initial_taste, :mid_palate_evolution, :palate_description, :palate_flavors,
	:flavor_intensity, :complexity, :mouthfeel,
	:finish_description, :finish_flavors, :finish_length, :finish_warmth, :finish_dryness,
	:finish_evolution, :finish_final_notes,
	:overall_balance, :overall_complexity, :overall_uniqueness, :overall_drinkability,
	:price_quality_ratio, :experience_level, :serving_recommendation, :food_pairings,
	:best_price, :images, :ratings, :awards,
	:completeness_score, :status, :source_count, :verified_fields, :extraction_confidence,
	:discovery_source, :discovery_sources, :fingerprint, :match_confidence,
	:has_conflicts, :conflict_details,
	:award_count, :rating_count, :price_count, :mention_count,
	:source_url, :created_at, :updated_at`

// ProductStorePostgres implements store.ProductStore, internal/matcher's
// CandidateStore, and internal/skeleton's Store against the product table.
type ProductStorePostgres struct {
	db *sqlx.DB
}

func NewProductStore(db *sqlx.DB) *ProductStorePostgres {
	return &ProductStorePostgres{db: db}
}

func (s *ProductStorePostgres) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return beginTxx(s.db, ctx, opts)
}

func (s *ProductStorePostgres) GetProductByID(ctx context.Context, exec store.Querier, id uuid.UUID) (*models.Product, error) {
	exec = execOrDB(exec, s.db)
	p := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM product WHERE id = $1`
	if err := exec.GetContext(ctx, p, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductStorePostgres) CreateProduct(ctx context.Context, exec store.Querier, p *models.Product) error {
	exec = execOrDB(exec, s.db)
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	query := `INSERT INTO product (` + productColumns + `) VALUES (` + productNamedColumns + `)`
	_, err := exec.NamedExecContext(ctx, query, p)
	return err
}

func (s *ProductStorePostgres) UpdateProduct(ctx context.Context, exec store.Querier, p *models.Product) error {
	exec = execOrDB(exec, s.db)
	query := `UPDATE product SET
		name = :name, gtin = :gtin, brand_id = :brand_id, product_type = :product_type,
		abv = :abv, volume_ml = :volume_ml, age_statement = :age_statement,
		country = :country, region = :region, category = :category, description = :description,
		primary_cask = :primary_cask, finishing_cask = :finishing_cask,
		wood_type = :wood_type, cask_treatment = :cask_treatment,
		color_description = :color_description, color_intensity = :color_intensity,
		clarity = :clarity, viscosity = :viscosity,
		nose_description = :nose_description, primary_aromas = :primary_aromas,
		nose_intensity = :nose_intensity, secondary_aromas = :secondary_aromas,
		nose_evolution = :nose_evolution,
		initial_taste = :initial_taste, mid_palate_evolution = :mid_palate_evolution,
		palate_description = :palate_description, palate_flavors = :palate_flavors,
		flavor_intensity = :flavor_intensity, complexity = :complexity, mouthfeel = :mouthfeel,
		finish_description = :finish_description, finish_flavors = :finish_flavors,
		finish_length = :finish_length, finish_warmth = :finish_warmth,
		finish_dryness = :finish_dryness, finish_evolution = :finish_evolution,
		finish_final_notes = :finish_final_notes,
		overall_balance = :overall_balance, overall_complexity = :overall_complexity,
		overall_uniqueness = :overall_uniqueness, overall_drinkability = :overall_drinkability,
		price_quality_ratio = :price_quality_ratio, experience_level = :experience_level,
		serving_recommendation = :serving_recommendation, food_pairings = :food_pairings,
		best_price = :best_price, images = :images, ratings = :ratings, awards = :awards,
		completeness_score = :completeness_score, status = :status, source_count = :source_count,
		verified_fields = :verified_fields, extraction_confidence = :extraction_confidence,
		discovery_source = :discovery_source, discovery_sources = :discovery_sources,
		fingerprint = :fingerprint, match_confidence = :match_confidence,
		has_conflicts = :has_conflicts, conflict_details = :conflict_details,
		award_count = :award_count, rating_count = :rating_count,
		price_count = :price_count, mention_count = :mention_count,
		source_url = :source_url, updated_at = :updated_at
		WHERE id = :id`
	_, err := exec.NamedExecContext(ctx, query, p)
	return err
}

func (s *ProductStorePostgres) ListProducts(ctx context.Context, exec store.Querier, filter store.ListProductsFilter) ([]*models.Product, error) {
	exec = execOrDB(exec, s.db)
	query := `SELECT ` + productColumns + ` FROM product WHERE 1=1`
	args := []interface{}{}
	argN := 0
	addArg := func(v interface{}) string {
		argN++
		args = append(args, v)
		return "$" + strconv.Itoa(argN)
	}
	if filter.Status != "" {
		query += " AND status = " + addArg(filter.Status)
	}
	if filter.ProductType != "" {
		query += " AND product_type = " + addArg(filter.ProductType)
	}
	if filter.BrandID != "" {
		query += " AND brand_id = " + addArg(filter.BrandID)
	}
	query += " ORDER BY updated_at DESC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT " + addArg(limit)
	if filter.Offset > 0 {
		query += " OFFSET " + addArg(filter.Offset)
	}

	var products []*models.Product
	if err := exec.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductStorePostgres) CountProductsByStatus(ctx context.Context, exec store.Querier) (map[models.ProductStatusEnum]int, error) {
	exec = execOrDB(exec, s.db)
	var rows []struct {
		Status models.ProductStatusEnum `db:"status"`
		Count  int                      `db:"count"`
	}
	if err := exec.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS count FROM product GROUP BY status`); err != nil {
		return nil, err
	}
	out := make(map[models.ProductStatusEnum]int, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}

// --- internal/matcher.CandidateStore ---

func (s *ProductStorePostgres) FindByGTIN(gtin string) (*models.Product, error) {
	p := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM product WHERE gtin = $1 LIMIT 1`
	err := s.db.GetContext(context.Background(), p, query, gtin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductStorePostgres) FindByFingerprint(fingerprint string) (*models.Product, error) {
	p := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM product WHERE fingerprint = $1 LIMIT 1`
	err := s.db.GetContext(context.Background(), p, query, fingerprint)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CandidatesByProductType feeds the Matcher's fuzzy pass (§4.8 step 3), which
// needs the brand's actual display name (not its FK) for the brand-match
// gate, so this is the one product query that joins brand.
func (s *ProductStorePostgres) CandidatesByProductType(pt models.ProductTypeEnum) ([]models.Product, error) {
	var products []models.Product
	query := `
		SELECT product.*, COALESCE(brand.name, '') AS brand_name
		FROM product
		LEFT JOIN brand ON brand.id::text = product.brand_id
		WHERE product.product_type = $1 AND product.status != 'skeleton'`
	if err := s.db.SelectContext(context.Background(), &products, query, pt); err != nil {
		return nil, err
	}
	return products, nil
}

// --- internal/skeleton.Store ---

func (s *ProductStorePostgres) FindProductBySkeletonFingerprint(ctx context.Context, fingerprint string) (*models.Product, error) {
	p := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM product WHERE fingerprint = $1 LIMIT 1`
	err := s.db.GetContext(ctx, p, query, fingerprint)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductStorePostgres) FindProductByNameSubstring(ctx context.Context, name string) (*models.Product, error) {
	p := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM product WHERE name ILIKE '%' || $1 || '%' ORDER BY created_at ASC LIMIT 1`
	err := s.db.GetContext(ctx, p, query, name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductStorePostgres) CreateSkeletonProduct(ctx context.Context, p *models.Product) error {
	return s.CreateProduct(ctx, s.db, p)
}

// Package skeleton implements the Skeleton Manager (§4.7): turning a bare
// competition AwardRecord into a skeleton Product, or attaching the award
// to an existing product if one already matches.
package skeleton

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/awards"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/detailpopulator"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/matcher"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/parsers/competition"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

// ErrUnsupportedForMVP is returned when an award's name/category doesn't map
// to a known product type (§4.7).
var ErrUnsupportedForMVP = errors.New("unsupported_for_mvp")

// Store is the subset of internal/store the Skeleton Manager needs.
type Store interface {
	FindProductBySkeletonFingerprint(ctx context.Context, fingerprint string) (*models.Product, error)
	FindProductByNameSubstring(ctx context.Context, name string) (*models.Product, error)
	CreateSkeletonProduct(ctx context.Context, p *models.Product) error
}

// BrandStore is the subset of internal/store the Skeleton Manager needs to
// resolve an award's producer name to the shared Brand row a product's
// brand_id references (§3: "Brand — shared name, slug (unique) ... Products
// reference by FK").
type BrandStore interface {
	GetBrandBySlug(ctx context.Context, exec store.Querier, slug string) (*models.Brand, error)
	CreateBrand(ctx context.Context, exec store.Querier, b *models.Brand) error
}

// DetailStore persists the type-specific detail record internal/detailpopulator
// builds when a new skeleton product is created. Optional: a nil Details
// field (the zero value) just skips detail-record creation, the same
// nil-tolerant convention BrandStore follows.
type DetailStore interface {
	UpsertWhiskeyDetails(ctx context.Context, d *models.WhiskeyDetails) error
	UpsertPortWineDetails(ctx context.Context, d *models.PortWineDetails) error
}

// Manager implements create_skeleton (§4.7).
type Manager struct {
	store   Store
	brands  BrandStore
	awardsH *awards.Handler

	// Details is set post-construction, mirroring the orchestrators' field-
	// assignment wiring for optional collaborators.
	Details DetailStore
}

func New(store Store, brands BrandStore, awardsH *awards.Handler) *Manager {
	return &Manager{store: store, brands: brands, awardsH: awardsH}
}

var brandSlugSpaceRe = regexp.MustCompile(`\s+`)

func brandSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = brandSlugSpaceRe.ReplaceAllString(slug, "-")
	return slug
}

// resolveBrand finds or creates the Brand row for producer, returning its
// ID. A missing or failing BrandStore (e.g. in tests that don't wire one)
// leaves the skeleton product's brand_id unset rather than failing the
// whole skeleton creation.
func (m *Manager) resolveBrand(ctx context.Context, producer string) sql.NullString {
	if m.brands == nil || producer == "" {
		return sql.NullString{}
	}
	slug := brandSlug(producer)
	if b, err := m.brands.GetBrandBySlug(ctx, nil, slug); err == nil && b != nil {
		return sql.NullString{String: b.ID.String(), Valid: true}
	}
	b := &models.Brand{ID: uuid.New(), Name: producer, Slug: slug}
	if err := m.brands.CreateBrand(ctx, nil, b); err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: b.ID.String(), Valid: true}
}

var whiskeyKeywords = []string{"whisky", "whiskey", "bourbon", "rye", "scotch", "malt"}
var portKeywords = []string{"port", "porto", "quinta", "vintage port", "tawny", "ruby"}

// classifyProductType matches name+category against a per-type keyword
// table (§4.7 step 1).
func classifyProductType(name, category string) (models.ProductTypeEnum, bool) {
	lc := strings.ToLower(name + " " + category)
	for _, kw := range whiskeyKeywords {
		if strings.Contains(lc, kw) {
			return models.ProductTypeWhiskey, true
		}
	}
	for _, kw := range portKeywords {
		if strings.Contains(lc, kw) {
			return models.ProductTypePortWine, true
		}
	}
	return "", false
}

// Fingerprint computes the skeleton fingerprint: SHA-256 over {normalized
// name, normalized producer, "skeleton"} (§4.7 step 2).
func Fingerprint(name, producer string) string {
	sum := sha256.Sum256([]byte(matcher.NormalizeName(name) + "|" + matcher.NormalizeName(producer) + "|skeleton"))
	return hex.EncodeToString(sum[:])
}

// CreateSkeleton implements create_skeleton(award_data) → Product (§4.7).
// If an existing product matches (by skeleton fingerprint, then by name
// substring, across all statuses), the award is attached to it instead of
// creating a duplicate.
func (m *Manager) CreateSkeleton(ctx context.Context, key competition.CompetitionKey, rec competition.AwardRecord) (*models.Product, error) {
	productType, ok := classifyProductType(rec.ProductName, rec.Category)
	if !ok {
		return nil, ErrUnsupportedForMVP
	}

	fp := Fingerprint(rec.ProductName, rec.Producer)

	if existing, err := m.store.FindProductBySkeletonFingerprint(ctx, fp); err == nil && existing != nil {
		if _, err := m.awardsH.Attach(ctx, existing.ID, key, rec); err != nil {
			return nil, err
		}
		return existing, nil
	}

	if existing, err := m.store.FindProductByNameSubstring(ctx, rec.ProductName); err == nil && existing != nil {
		if _, err := m.awardsH.Attach(ctx, existing.ID, key, rec); err != nil {
			return nil, err
		}
		return existing, nil
	}

	product := &models.Product{
		ID:              uuid.New(),
		Name:            rec.ProductName,
		BrandID:         m.resolveBrand(ctx, rec.Producer),
		ProductType:     productType,
		Status:          models.ProductStatusSkeleton,
		SourceURL:       "",
		DiscoverySource: string(key),
		Fingerprint:     fp,
	}
	if rec.Country != "" {
		product.Country.String = rec.Country
		product.Country.Valid = true
	}
	if rec.Category != "" {
		product.Category.String = rec.Category
		product.Category.Valid = true
	}

	if err := m.store.CreateSkeletonProduct(ctx, product); err != nil {
		return nil, err
	}
	if _, err := m.awardsH.Attach(ctx, product.ID, key, rec); err != nil {
		return nil, err
	}
	m.populateDetails(ctx, product, rec)
	return product, nil
}

// populateDetails builds and persists the whiskey/port detail record for a
// newly created product. Best-effort: a nil Details store, or a failed
// upsert, never fails skeleton creation — the detail record is an
// enrichment, not a requirement of the product existing.
func (m *Manager) populateDetails(ctx context.Context, product *models.Product, rec competition.AwardRecord) {
	if m.Details == nil {
		return
	}
	whiskey, port := detailpopulator.Populate(product.ProductType, product.Name, rec.Category, rec.Producer)
	if whiskey != nil {
		whiskey.ProductID = product.ID
		_ = m.Details.UpsertWhiskeyDetails(ctx, whiskey)
	}
	if port != nil {
		port.ProductID = product.ID
		_ = m.Details.UpsertPortWineDetails(ctx, port)
	}
}

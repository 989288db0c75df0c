package skeleton

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/awards"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/parsers/competition"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

type fakeStore struct {
	byFingerprint map[string]*models.Product
	byName        map[string]*models.Product
	created       []*models.Product
}

func newFakeStore() *fakeStore {
	return &fakeStore{byFingerprint: map[string]*models.Product{}, byName: map[string]*models.Product{}}
}

func (f *fakeStore) FindProductBySkeletonFingerprint(ctx context.Context, fingerprint string) (*models.Product, error) {
	if p, ok := f.byFingerprint[fingerprint]; ok {
		return p, nil
	}
	return nil, nil
}

func (f *fakeStore) FindProductByNameSubstring(ctx context.Context, name string) (*models.Product, error) {
	if p, ok := f.byName[name]; ok {
		return p, nil
	}
	return nil, nil
}

func (f *fakeStore) CreateSkeletonProduct(ctx context.Context, p *models.Product) error {
	f.created = append(f.created, p)
	return nil
}

type fakeBrandStore struct {
	bySlug  map[string]*models.Brand
	created []*models.Brand
}

func newFakeBrandStore() *fakeBrandStore {
	return &fakeBrandStore{bySlug: map[string]*models.Brand{}}
}

func (f *fakeBrandStore) GetBrandBySlug(ctx context.Context, exec store.Querier, slug string) (*models.Brand, error) {
	if b, ok := f.bySlug[slug]; ok {
		return b, nil
	}
	return nil, nil
}

func (f *fakeBrandStore) CreateBrand(ctx context.Context, exec store.Querier, b *models.Brand) error {
	f.created = append(f.created, b)
	f.bySlug[b.Slug] = b
	return nil
}

type fakeAwardsStore struct {
	awards  map[uuid.UUID][]models.Award
	sources map[uuid.UUID][]string
}

func newFakeAwardsStore() *fakeAwardsStore {
	return &fakeAwardsStore{awards: map[uuid.UUID][]models.Award{}, sources: map[uuid.UUID][]string{}}
}

func (f *fakeAwardsStore) ListAwardsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Award, error) {
	return f.awards[productID], nil
}

func (f *fakeAwardsStore) InsertAward(ctx context.Context, a *models.Award) error {
	f.awards[a.ProductID] = append(f.awards[a.ProductID], *a)
	return nil
}

func (f *fakeAwardsStore) AddDiscoverySource(ctx context.Context, productID uuid.UUID, source string) error {
	f.sources[productID] = append(f.sources[productID], source)
	return nil
}

func TestCreateSkeletonResolvesBrandAndAttachesAward(t *testing.T) {
	productStore := newFakeStore()
	brandStore := newFakeBrandStore()
	awardsH := awards.New(newFakeAwardsStore())
	m := New(productStore, brandStore, awardsH)

	rec := competition.AwardRecord{
		ProductName: "Islay Single Malt 12yo",
		Competition: competition.IWSC,
		Year:        2024,
		Medal:       "Gold",
		Producer:    "Bowmore Distillery",
		Category:    "single malt scotch whisky",
	}

	p, err := m.CreateSkeleton(context.Background(), competition.IWSC, rec)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.True(t, p.BrandID.Valid)
	assert.Len(t, brandStore.created, 1)
	assert.Equal(t, "bowmore-distillery", brandStore.created[0].Slug)
	assert.Equal(t, models.ProductStatusSkeleton, p.Status)

	// a second award for the same producer reuses the existing Brand row.
	rec2 := rec
	rec2.ProductName = "Islay Single Malt 15yo"
	_, err = m.CreateSkeleton(context.Background(), competition.IWSC, rec2)
	require.NoError(t, err)
	assert.Len(t, brandStore.created, 1)
}

// S4 — create_skeleton for the same award twice (now from a second
// competition) must yield exactly one product with two awards, both
// competitions recorded in discovery_sources.
func TestCreateSkeletonTwiceSameProductAttachesSecondAward(t *testing.T) {
	productStore := newFakeStore()
	brandStore := newFakeBrandStore()
	awardsStore := newFakeAwardsStore()
	awardsH := awards.New(awardsStore)
	m := New(productStore, brandStore, awardsH)

	rec := competition.AwardRecord{
		ProductName: "Macallan 18",
		Producer:    "The Macallan",
		Category:    "single malt scotch whisky",
		Medal:       "Gold",
		Year:        2024,
	}

	p1, err := m.CreateSkeleton(context.Background(), competition.IWSC, rec)
	require.NoError(t, err)

	// FindProductBySkeletonFingerprint only finds it on a second call because
	// the fake store indexes by fingerprint on creation in a real store; wire
	// it here so the second CreateSkeleton call sees the existing product.
	productStore.byFingerprint[p1.Fingerprint] = p1

	p2, err := m.CreateSkeleton(context.Background(), competition.WorldWhiskiesAwards, rec)
	require.NoError(t, err)

	assert.Equal(t, p1.ID, p2.ID, "second award for the same product must not create a duplicate")
	assert.Len(t, productStore.created, 1)
	assert.Len(t, awardsStore.awards[p1.ID], 2)
	assert.ElementsMatch(t, []string{string(competition.IWSC), string(competition.WorldWhiskiesAwards)}, awardsStore.sources[p1.ID])
	assert.Contains(t, brandStore.bySlug, "the-macallan")
}

func TestCreateSkeletonUnsupportedProductType(t *testing.T) {
	m := New(newFakeStore(), newFakeBrandStore(), awards.New(newFakeAwardsStore()))
	rec := competition.AwardRecord{ProductName: "Mystery Liqueur", Producer: "Unknown Co", Category: "liqueur"}

	_, err := m.CreateSkeleton(context.Background(), competition.IWSC, rec)
	assert.ErrorIs(t, err, ErrUnsupportedForMVP)
}

package awards

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/parsers/competition"
)

type fakeStore struct {
	awards    map[uuid.UUID][]models.Award
	discovery map[uuid.UUID][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{awards: map[uuid.UUID][]models.Award{}, discovery: map[uuid.UUID][]string{}}
}

func (f *fakeStore) ListAwardsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Award, error) {
	return f.awards[productID], nil
}

func (f *fakeStore) InsertAward(ctx context.Context, a *models.Award) error {
	f.awards[a.ProductID] = append(f.awards[a.ProductID], *a)
	return nil
}

func (f *fakeStore) AddDiscoverySource(ctx context.Context, productID uuid.UUID, source string) error {
	f.discovery[productID] = append(f.discovery[productID], source)
	return nil
}

func TestAttachDedupsOnCompetitionYearMedal(t *testing.T) {
	store := newFakeStore()
	h := New(store)
	productID := uuid.New()

	rec := competition.AwardRecord{ProductName: "Macallan 18", Medal: "Gold", Year: 2024}

	attached, err := h.Attach(context.Background(), productID, competition.IWSC, rec)
	require.NoError(t, err)
	assert.True(t, attached)

	attached, err = h.Attach(context.Background(), productID, competition.IWSC, rec)
	require.NoError(t, err)
	assert.False(t, attached, "second attach of the identical award must be a no-op")
	assert.Len(t, store.awards[productID], 1)
}

func TestAttachDedupIsCaseAndWhitespaceInsensitive(t *testing.T) {
	store := newFakeStore()
	h := New(store)
	productID := uuid.New()

	first := competition.AwardRecord{ProductName: "Macallan 18", Medal: "  gold  ", Year: 2024}
	second := competition.AwardRecord{ProductName: "Macallan 18", Medal: "GOLD", Year: 2024}

	_, err := h.Attach(context.Background(), productID, competition.IWSC, first)
	require.NoError(t, err)
	attached, err := h.Attach(context.Background(), productID, competition.IWSC, second)
	require.NoError(t, err)
	assert.False(t, attached)
	assert.Len(t, store.awards[productID], 1)
}

// S4 — a second award from a different competition attaches alongside the
// first rather than deduping against it, and both competitions land in
// discovery_sources.
func TestAttachSecondAwardFromDifferentCompetitionAttaches(t *testing.T) {
	store := newFakeStore()
	h := New(store)
	productID := uuid.New()

	iwscAward := competition.AwardRecord{ProductName: "Macallan 18", Medal: "Gold", Year: 2024}
	wwaAward := competition.AwardRecord{ProductName: "Macallan 18", Medal: "Gold", Year: 2024}

	attached, err := h.Attach(context.Background(), productID, competition.IWSC, iwscAward)
	require.NoError(t, err)
	assert.True(t, attached)

	attached, err = h.Attach(context.Background(), productID, competition.WorldWhiskiesAwards, wwaAward)
	require.NoError(t, err)
	assert.True(t, attached, "same medal/year from a different competition is a distinct award")

	assert.Len(t, store.awards[productID], 2)
	assert.Contains(t, store.discovery[productID], string(competition.IWSC))
	assert.Contains(t, store.discovery[productID], string(competition.WorldWhiskiesAwards))
}

func TestAttachNormalizesMedalBeforeStoring(t *testing.T) {
	store := newFakeStore()
	h := New(store)
	productID := uuid.New()

	_, err := h.Attach(context.Background(), productID, competition.IWSC, competition.AwardRecord{
		ProductName: "Glenfiddich 18", Medal: "double gold medal winner", Year: 2024,
	})
	require.NoError(t, err)
	require.Len(t, store.awards[productID], 1)
	assert.Equal(t, "Double Gold", store.awards[productID][0].Medal)
}

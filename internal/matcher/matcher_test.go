package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

type fakeCandidateStore struct {
	byGTIN        map[string]*models.Product
	byFingerprint map[string]*models.Product
	candidates    []models.Product
}

func (f *fakeCandidateStore) FindByGTIN(gtin string) (*models.Product, error) {
	return f.byGTIN[gtin], nil
}

func (f *fakeCandidateStore) FindByFingerprint(fingerprint string) (*models.Product, error) {
	return f.byFingerprint[fingerprint], nil
}

func (f *fakeCandidateStore) CandidatesByProductType(pt models.ProductTypeEnum) ([]models.Product, error) {
	return f.candidates, nil
}

func TestFingerprintDeterministicAndCaseInsensitive(t *testing.T) {
	a := Fingerprint("Test Whiskey", "Test Brand")
	b := Fingerprint("TEST WHISKEY", "test brand")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, Fingerprint("Test Whiskey", "Other Brand"))
}

func TestFindMatchGTINTakesPriority(t *testing.T) {
	existing := &models.Product{Name: "Glenfiddich 18"}
	store := &fakeCandidateStore{byGTIN: map[string]*models.Product{"5000000000001": existing}}
	m := New(store)

	p, method, confidence := m.FindMatch("5000000000001", "anything", "anything", models.ProductTypeWhiskey)
	require.NotNil(t, p)
	assert.Same(t, existing, p)
	assert.Equal(t, models.MatchMethodGTIN, method)
	assert.Equal(t, 1.0, confidence)
}

// S5 — existing product {name: "Test Whiskey", brand: "Test Brand"}, query
// {name: "TEST WHISKEY", brand: "test brand"} matches via fingerprint,
// method=fingerprint, confidence=0.95.
func TestFindMatchFingerprintTier(t *testing.T) {
	existing := &models.Product{Name: "Test Whiskey"}
	fp := Fingerprint("Test Whiskey", "Test Brand")
	store := &fakeCandidateStore{byFingerprint: map[string]*models.Product{fp: existing}}
	m := New(store)

	p, method, confidence := m.FindMatch("", "TEST WHISKEY", "test brand", models.ProductTypeWhiskey)
	require.NotNil(t, p)
	assert.Same(t, existing, p)
	assert.Equal(t, models.MatchMethodFingerprint, method)
	assert.Equal(t, 0.95, confidence)
}

// S6 — existing {name: "Macallan 18", brand: "The Macallan"}, query
// {name: "Macallan 18", brand: "Glenfiddich"}: no match, brand filter
// rejects the cross-brand collision despite an identical name.
func TestFindMatchFuzzyBrandFilterRejectsCrossBrandCollision(t *testing.T) {
	existing := models.Product{Name: "Macallan 18"}
	existing.BrandName.String = "The Macallan"
	existing.BrandName.Valid = true

	store := &fakeCandidateStore{candidates: []models.Product{existing}}
	m := New(store)

	p, method, confidence := m.FindMatch("", "Macallan 18", "Glenfiddich", models.ProductTypeWhiskey)
	assert.Nil(t, p)
	assert.Equal(t, models.MatchMethodNone, method)
	assert.Equal(t, 0.0, confidence)
}

func TestFindMatchFuzzyMatchesCloseNameWithAgreeingBrand(t *testing.T) {
	existing := models.Product{Name: "Glenfiddich 18 Year Old Single Malt Scotch Whisky"}
	existing.BrandName.String = "Glenfiddich"
	existing.BrandName.Valid = true

	store := &fakeCandidateStore{candidates: []models.Product{existing}}
	m := New(store)

	p, method, confidence := m.FindMatch("", "Glenfiddich 18yo", "Glenfiddich", models.ProductTypeWhiskey)
	require.NotNil(t, p)
	assert.Equal(t, models.MatchMethodFuzzy, method)
	assert.InDelta(t, 0.95, confidence, 0.001)
}

func TestFindMatchFuzzyRejectsDissimilarName(t *testing.T) {
	existing := models.Product{Name: "Highland Park 12 Year Old"}
	existing.BrandName.String = "Highland Park"
	existing.BrandName.Valid = true

	store := &fakeCandidateStore{candidates: []models.Product{existing}}
	m := New(store)

	p, method, _ := m.FindMatch("", "Laphroaig Quarter Cask", "Highland Park", models.ProductTypeWhiskey)
	assert.Nil(t, p)
	assert.Equal(t, models.MatchMethodNone, method)
}

func TestFindMatchNoCandidates(t *testing.T) {
	store := &fakeCandidateStore{}
	m := New(store)
	p, method, confidence := m.FindMatch("", "Anything", "Anyone", models.ProductTypeWhiskey)
	assert.Nil(t, p)
	assert.Equal(t, models.MatchMethodNone, method)
	assert.Equal(t, 0.0, confidence)
}

func TestNormalizeName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Glenfiddich 18 Year Old Single Malt Scotch Whisky", "glenfiddich 18yo"},
		{"The Macallan 12 Years Old", "the macallan 12yo"},
		{"Taylor's 20 Year Old Tawny Port", "taylor's 20yo tawny"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeName(c.in))
	}
}

func TestFirstSignificantWordSkipsArticles(t *testing.T) {
	assert.Equal(t, "macallan", FirstSignificantWord("the macallan 18yo"))
	assert.Equal(t, "glenfiddich", FirstSignificantWord("glenfiddich 18yo"))
	assert.Equal(t, "", FirstSignificantWord(""))
}

func TestBestFuzzyScoreIdenticalIsMax(t *testing.T) {
	assert.Equal(t, 100, BestFuzzyScore("glenfiddich 18yo", "glenfiddich 18yo"))
}

func TestBestFuzzyScoreTokenOrderIndependent(t *testing.T) {
	// token_sort_ratio neutralizes word-order differences that plain ratio
	// would penalize heavily.
	score := BestFuzzyScore("reserve special highland park", "highland park special reserve")
	assert.Equal(t, 100, score)
}

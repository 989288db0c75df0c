package verify

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/fetchrouter"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/search"
)

type fakeSearcher struct {
	resultsByQuery map[string][]search.Result
}

func (f *fakeSearcher) Search(ctx context.Context, query string, num int, crawlJobID uuid.UUID) ([]search.Result, models.CostRecord, error) {
	return f.resultsByQuery[query], models.CostRecord{}, nil
}

type fakeFetcher struct {
	contentByURL map[string]string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string, src fetchrouter.SourceConfig, crawlJobID uuid.UUID) (*fetchrouter.Result, []models.CostRecord, []models.CrawlError) {
	content, ok := f.contentByURL[url]
	if !ok {
		return &fetchrouter.Result{Success: false}, nil, nil
	}
	return &fetchrouter.Result{Success: true, Content: content}, nil, nil
}

type fakeExtractor struct {
	fieldsByURL map[string]map[string]interface{}
}

func (f *fakeExtractor) Extract(ctx context.Context, rawContent, url string, productTypeHint models.ProductTypeEnum) ExtractResult {
	fields, ok := f.fieldsByURL[url]
	if !ok {
		return ExtractResult{Success: false}
	}
	return ExtractResult{Fields: fields, Success: true}
}

func noopRecompute(*models.Product) {}

func TestVerifySkipsEnrichmentWhenAlreadyComplete(t *testing.T) {
	p := &models.Product{
		Name:              "Glenfiddich 18",
		PalateDescription: sql.NullString{String: "rich", Valid: true},
		NoseDescription:   sql.NullString{String: "fruity", Valid: true},
		FinishDescription: sql.NullString{String: "long", Valid: true},
		Country:           sql.NullString{String: "Scotland", Valid: true},
		Region:            sql.NullString{String: "Speyside", Valid: true},
		ABV:               sql.NullFloat64{Float64: 40, Valid: true},
		BestPrice:         sql.NullFloat64{Float64: 50, Valid: true},
		SourceCount:       3,
	}
	searcher := &fakeSearcher{}
	pipeline := New(searcher, &fakeFetcher{}, &fakeExtractor{}, noopRecompute, 3, 2)

	res, err := pipeline.Verify(context.Background(), p, "Glenfiddich", uuid.New())
	require.NoError(t, err)
	assert.Empty(t, res.VerifiedFields)
	assert.Equal(t, 3, res.SourcesUsed)
}

// S1 — a product missing tasting fields gets enriched from a fetched/extracted
// source and its source_count increases.
func TestVerifyEnrichesMissingTastingFieldsAndIncrementsSourceCount(t *testing.T) {
	p := &models.Product{
		Name:        "Glenfiddich 18",
		BestPrice:   sql.NullFloat64{Float64: 50, Valid: true},
		SourceCount: 1,
	}

	searcher := &fakeSearcher{resultsByQuery: map[string][]search.Result{
		"Glenfiddich 18 tasting notes review": {
			{URL: "https://reviewsite.example/gf18", Domain: "reviewsite.example"},
			{URL: "https://facebook.com/spam", Domain: "facebook.com"},
		},
	}}
	fetcher := &fakeFetcher{contentByURL: map[string]string{
		"https://reviewsite.example/gf18": "<html>rich nose and long finish</html>",
	}}
	extractor := &fakeExtractor{fieldsByURL: map[string]map[string]interface{}{
		"https://reviewsite.example/gf18": {
			models.FieldPalateDescription: "Rich and smooth",
			models.FieldNoseDescription:   "Pear and oak",
			models.FieldFinishDescription: "Long and warm",
		},
	}}

	pipeline := New(searcher, fetcher, extractor, noopRecompute, 3, 2)
	res, err := pipeline.Verify(context.Background(), p, "Glenfiddich", uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 2, p.SourceCount)
	assert.Equal(t, 2, res.SourcesUsed)
	assert.Equal(t, "Rich and smooth", p.PalateDescription.String)
	assert.Equal(t, "Pear and oak", p.NoseDescription.String)
	assert.Equal(t, "Long and warm", p.FinishDescription.String)
	assert.Empty(t, res.Conflicts)
}

func TestVerifyExcludesSpamDomainsFromEnrichmentFetch(t *testing.T) {
	p := &models.Product{Name: "Macallan 18", SourceCount: 1}

	searcher := &fakeSearcher{resultsByQuery: map[string][]search.Result{
		"Macallan 18 tasting notes review": {
			{URL: "https://facebook.com/macallan", Domain: "facebook.com"},
		},
	}}
	fetcher := &fakeFetcher{}
	extractor := &fakeExtractor{}

	pipeline := New(searcher, fetcher, extractor, noopRecompute, 3, 2)
	res, err := pipeline.Verify(context.Background(), p, "Macallan", uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 1, p.SourceCount, "an excluded domain must never be fetched or counted")
	assert.Empty(t, res.VerifiedFields)
}

func TestVerifyRecordsConflictOnDisagreeingFieldAndKeepsFirstValue(t *testing.T) {
	p := &models.Product{
		Name:        "Macallan 18",
		ABV:         sql.NullFloat64{Float64: 43.0, Valid: true},
		SourceCount: 1,
	}

	searcher := &fakeSearcher{resultsByQuery: map[string][]search.Result{
		"Macallan 18 tasting notes review": {
			{URL: "https://reviewsite.example/m18", Domain: "reviewsite.example"},
		},
	}}
	fetcher := &fakeFetcher{contentByURL: map[string]string{
		"https://reviewsite.example/m18": "<html>...</html>",
	}}
	extractor := &fakeExtractor{fieldsByURL: map[string]map[string]interface{}{
		"https://reviewsite.example/m18": {
			models.FieldABV:               46.0,
			models.FieldPalateDescription: "Sweet and oaky",
		},
	}}

	pipeline := New(searcher, fetcher, extractor, noopRecompute, 3, 2)
	res, err := pipeline.Verify(context.Background(), p, "The Macallan", uuid.New())
	require.NoError(t, err)

	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, models.FieldABV, res.Conflicts[0].Field)
	assert.Equal(t, 43.0, p.ABV.Float64, "first observation wins per §4.9 step 4")
	assert.True(t, p.HasConflicts)
	assert.Equal(t, "Sweet and oaky", p.PalateDescription.String)
}

func TestMissingCriticalFieldsSkipsAlreadyVerifiedEvenIfEmpty(t *testing.T) {
	p := &models.Product{VerifiedFields: []string{models.FieldCountry}}
	missing := missingCriticalFields(p)
	assert.NotContains(t, missing, models.FieldCountry)
	assert.Contains(t, missing, models.FieldName)
}

func TestTypeAwareEqualNumericStringAndListVariants(t *testing.T) {
	assert.True(t, typeAwareEqual(40.0, "40"))
	assert.True(t, typeAwareEqual("Scotland", "  scotland "))
	assert.False(t, typeAwareEqual("Scotland", "Ireland"))
	assert.True(t, typeAwareEqual([]string{"oak", "vanilla"}, []string{"Vanilla", "Oak"}))
	assert.False(t, typeAwareEqual([]string{"oak"}, []string{"oak", "vanilla"}))
}

func TestDedupeVerifiedFieldsRemovesDuplicatesPreservingOrder(t *testing.T) {
	p := &models.Product{VerifiedFields: []string{models.FieldName, models.FieldABV}}
	dedupeVerifiedFields(p, []string{models.FieldABV, models.FieldCountry})
	assert.Equal(t, []string{models.FieldName, models.FieldABV, models.FieldCountry}, p.VerifiedFields)
}

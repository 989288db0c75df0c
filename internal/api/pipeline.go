package api

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/extraction"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/fetchrouter"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/matcher"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/scoring"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/verify"
)

// ErrFetchFailed and ErrExtractionFailed are returned by ingestURL when the
// page could not be retrieved or nothing meaningful could be extracted from
// it; both are non-events for the caller (§7), not server errors.
var (
	ErrFetchFailed      = errors.New("fetch_failed")
	ErrExtractionFailed = errors.New("extraction_failed")
)

// ingestURL implements one pass of extract_url(url) → Product (§4.2, §4.8,
// §4.9, §4.10): fetch, extract, match-or-create, merge, score, persist, and
// run the Verification & Enrichment Pipeline once before returning.
func (h *Handler) ingestURL(ctx context.Context, rawURL string, hint models.ProductTypeEnum, crawlJobID uuid.UUID) (*models.Product, error) {
	fetchRes, costs, crawlErrs := h.Fetcher.Fetch(ctx, rawURL, fetchrouter.SourceConfig{}, crawlJobID)
	h.recordCosts(ctx, costs)
	h.recordCrawlErrors(ctx, crawlErrs)
	if fetchRes == nil || !fetchRes.Success {
		return nil, ErrFetchFailed
	}

	extracted := h.Extractor.Extract(ctx, fetchRes.Content, rawURL, hint)
	if !extracted.Success {
		return nil, ErrExtractionFailed
	}

	name, _ := extracted.Fields[models.FieldName].(string)
	brand, _ := extracted.Fields[models.FieldBrand].(string)
	gtin, _ := extracted.Fields[models.FieldGTIN].(string)

	product, method, confidence := h.Matcher.FindMatch(gtin, name, brand, hint)
	isNew := product == nil
	if isNew {
		product = &models.Product{
			ID:              uuid.New(),
			ProductType:     hint,
			Fingerprint:     matcher.Fingerprint(name, brand),
			SourceURL:       rawURL,
			DiscoverySource: rawURL,
		}
	} else {
		product.MatchConfidence.Float64 = confidence
		product.MatchConfidence.Valid = method != models.MatchMethodNone
	}

	verify.Seed(product, extracted.Fields)
	product.SourceCount++
	scoring.Apply(product)

	if err := h.saveProduct(ctx, product, isNew); err != nil {
		return nil, err
	}
	h.recordProvenance(ctx, product.ID, rawURL, extracted)

	brandName := brand
	if result, err := h.Verify.Verify(ctx, product, brandName, crawlJobID); err == nil {
		_ = result
	} else {
		h.logError("verify.Verify", err)
	}
	if err := h.saveProduct(ctx, product, false); err != nil {
		return nil, err
	}

	return product, nil
}

func (h *Handler) saveProduct(ctx context.Context, p *models.Product, isNew bool) error {
	if isNew {
		return h.ProductStore.CreateProduct(ctx, nil, p)
	}
	return h.ProductStore.UpdateProduct(ctx, nil, p)
}

func (h *Handler) recordProvenance(ctx context.Context, productID uuid.UUID, sourceURL string, res extraction.Result) {
	for _, row := range extraction.ProvenanceRows(productID, sourceURL, res) {
		row := row
		if err := h.ProvenanceStore.UpsertFieldProvenance(ctx, nil, &row); err != nil {
			h.logError("provenance.Upsert", err)
		}
	}
}

// recordCosts persists CostRecords fire-and-forget (§5): a metering failure
// must never fail the request that triggered it.
func (h *Handler) recordCosts(ctx context.Context, costs []models.CostRecord) {
	for _, c := range costs {
		c := c
		if err := h.CostStore.InsertCostRecord(ctx, nil, &c); err != nil {
			h.logError("cost.Insert", err)
		}
		if h.Metrics != nil {
			h.Metrics.RecordCost(string(c.Service), c.CostCents)
		}
	}
}

func (h *Handler) recordCrawlErrors(ctx context.Context, errs []models.CrawlError) {
	for _, e := range errs {
		e := e
		if err := h.ErrorStore.InsertCrawlError(ctx, nil, &e); err != nil {
			h.logError("crawlerror.Insert", err)
		}
	}
}

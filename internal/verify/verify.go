// Package verify implements the Verification & Enrichment Pipeline (§4.9):
// detect missing critical fields, search for and extract from additional
// sources, and merge the results with type-aware conflict handling.
package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/fetchrouter"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/search"
)

// Extractor is the subset of internal/extraction the pipeline needs.
type Extractor interface {
	Extract(ctx context.Context, rawContent, url string, productTypeHint models.ProductTypeEnum) ExtractResult
}

// ExtractResult mirrors extraction.Result's shape without importing the
// package directly (avoids a verify<->extraction import cycle risk as both
// grow); internal/api wires the concrete extraction.Extractor in.
type ExtractResult struct {
	Fields  map[string]interface{}
	Success bool
}

// Searcher is the subset of internal/search the pipeline needs.
type Searcher interface {
	Search(ctx context.Context, query string, num int, crawlJobID uuid.UUID) ([]search.Result, models.CostRecord, error)
}

// Fetcher is the subset of internal/fetchrouter the pipeline needs.
type Fetcher interface {
	Fetch(ctx context.Context, url string, src fetchrouter.SourceConfig, crawlJobID uuid.UUID) (*fetchrouter.Result, []models.CostRecord, []models.CrawlError)
}

// Conflict records a field where a new observation disagreed with the
// product's current value (§4.9 step 4: "first observation wins").
type Conflict struct {
	Field   string      `json:"field"`
	Current interface{} `json:"current"`
	New     interface{} `json:"new"`
}

// Result is verify_product's return value (§4.9).
type Result struct {
	Product        *models.Product
	SourcesUsed     int
	VerifiedFields  []string
	Conflicts       []Conflict
	CostRecords     []models.CostRecord
}

// enrichmentStrategy names the query-template set used when a product is
// missing a particular kind of field (§4.9 table).
type enrichmentStrategy struct {
	templates []string
}

var tastingNotesStrategy = enrichmentStrategy{templates: []string{
	"{name} tasting notes review",
	"{name} nose palate finish",
	"{brand} {name} whisky review",
}}

var pricingStrategy = enrichmentStrategy{templates: []string{
	"{name} buy price",
	"{name} whisky exchange price",
}}

// Pipeline implements verify_product (§4.9).
type Pipeline struct {
	searcher  Searcher
	fetcher   Fetcher
	extractor Extractor

	// recompute recomputes completeness score and status (§4.10) on the
	// merged product; wired to internal/scoring.Apply by the caller.
	recompute func(*models.Product)

	targetSources         int
	minSourcesForVerified int
}

func New(searcher Searcher, fetcher Fetcher, extractor Extractor, recompute func(*models.Product), targetSources, minSourcesForVerified int) *Pipeline {
	return &Pipeline{
		searcher: searcher, fetcher: fetcher, extractor: extractor, recompute: recompute,
		targetSources: targetSources, minSourcesForVerified: minSourcesForVerified,
	}
}

// missingCriticalFields implements §4.9 step 1: palate/nose/finish plus each
// unverified field among models.CriticalFields.
func missingCriticalFields(p *models.Product) []string {
	var missing []string
	verified := make(map[string]bool, len(p.VerifiedFields))
	for _, f := range p.VerifiedFields {
		verified[f] = true
	}
	for _, f := range models.CriticalFields {
		if verified[f] {
			continue
		}
		if _, ok := get(p, f); !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// buildQueries fills a strategy's templates with the product's name/brand.
func buildQueries(strat enrichmentStrategy, name, brand string) []string {
	queries := make([]string, 0, len(strat.templates))
	for _, tmpl := range strat.templates {
		if strings.Contains(tmpl, "{brand}") && brand == "" {
			continue
		}
		q := strings.ReplaceAll(tmpl, "{name}", name)
		q = strings.ReplaceAll(q, "{brand}", brand)
		queries = append(queries, q)
	}
	return queries
}

// chooseStrategy picks the enrichment strategy table row matching what's
// missing (§4.9 table: tasting fields vs best_price).
func chooseStrategy(missing []string) (enrichmentStrategy, bool) {
	for _, f := range missing {
		switch f {
		case models.FieldPalateDescription, models.FieldNoseDescription, models.FieldFinishDescription:
			return tastingNotesStrategy, true
		}
	}
	return enrichmentStrategy{}, false
}

// Verify runs verify_product(product) (§4.9).
func (p *Pipeline) Verify(ctx context.Context, product *models.Product, brandName string, crawlJobID uuid.UUID) (*Result, error) {
	res := &Result{Product: product, SourcesUsed: product.SourceCount}

	missing := missingCriticalFields(product)
	_, bestPriceSet := get(product, models.FieldBestPrice)
	needsPricing := !bestPriceSet

	if len(missing) == 0 && !needsPricing && product.SourceCount >= p.targetSources {
		p.recompute(product)
		return res, nil
	}

	var strat enrichmentStrategy
	haveStrat := false
	if len(missing) > 0 {
		strat, haveStrat = chooseStrategy(missing)
	}
	if !haveStrat && needsPricing {
		strat, haveStrat = pricingStrategy, true
	}
	if !haveStrat {
		p.recompute(product)
		return res, nil
	}

	queries := buildQueries(strat, product.Name, brandName)
	urlCap := p.targetSources - 1
	if urlCap < 0 {
		urlCap = 0
	}

	seen := map[string]bool{}
	var urls []string
	var errs *multierror.Error

	for _, q := range queries {
		if len(urls) >= urlCap {
			break
		}
		results, cost, err := p.searcher.Search(ctx, q, 10, crawlJobID)
		res.CostRecords = append(res.CostRecords, cost)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("search %q: %w", q, err))
			continue
		}
		for _, r := range results {
			if len(urls) >= urlCap {
				break
			}
			if search.IsExcludedDomain(r.Domain) || seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			urls = append(urls, r.URL)
		}
	}

	for _, u := range urls {
		fetchRes, costs, crawlErrs := p.fetcher.Fetch(ctx, u, fetchrouter.SourceConfig{}, crawlJobID)
		res.CostRecords = append(res.CostRecords, costs...)
		if len(crawlErrs) > 0 && (fetchRes == nil || !fetchRes.Success) {
			errs = multierror.Append(errs, fmt.Errorf("fetch %s: %s", u, crawlErrs[len(crawlErrs)-1].Message))
			continue
		}
		if fetchRes == nil || !fetchRes.Success {
			continue
		}

		extracted := p.extractor.Extract(ctx, fetchRes.Content, u, product.ProductType)
		if !extracted.Success {
			continue
		}

		verifiedNow, conflicts := merge(product, extracted.Fields)
		res.VerifiedFields = append(res.VerifiedFields, verifiedNow...)
		res.Conflicts = append(res.Conflicts, conflicts...)
		product.SourceCount++
		res.SourcesUsed = product.SourceCount
	}

	if len(res.Conflicts) > 0 {
		product.HasConflicts = true
		if b, err := json.Marshal(res.Conflicts); err == nil {
			product.ConflictDetails = b
		}
	}
	dedupeVerifiedFields(product, res.VerifiedFields)

	p.recompute(product)

	if errs.ErrorOrNil() != nil {
		return res, errs
	}
	return res, nil
}

// merge implements §4.9 step 4: fill empty fields, verify equal fields,
// record unequal fields as conflicts (first observation wins).
func merge(p *models.Product, fields map[string]interface{}) (verifiedNow []string, conflicts []Conflict) {
	// deterministic order keeps behavior (and tests) reproducible
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, field := range keys {
		newVal := fields[field]
		if isEmptyValue(newVal) {
			continue
		}

		current, hasCurrent := get(p, field)
		if !hasCurrent {
			set(p, field, newVal)
			continue
		}

		if typeAwareEqual(current, newVal) {
			verifiedNow = append(verifiedNow, field)
			continue
		}

		conflicts = append(conflicts, Conflict{Field: field, Current: current, New: newVal})
	}
	return verifiedNow, conflicts
}

func dedupeVerifiedFields(p *models.Product, newlyVerified []string) {
	seen := make(map[string]bool, len(p.VerifiedFields)+len(newlyVerified))
	merged := make([]string, 0, len(p.VerifiedFields)+len(newlyVerified))
	for _, f := range p.VerifiedFields {
		if !seen[f] {
			seen[f] = true
			merged = append(merged, f)
		}
	}
	for _, f := range newlyVerified {
		if !seen[f] {
			seen[f] = true
			merged = append(merged, f)
		}
	}
	p.VerifiedFields = merged
}

func isEmptyValue(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []string:
		return len(t) == 0
	case []interface{}:
		return len(t) == 0
	}
	return false
}

// typeAwareEqual compares two field values per §4.9 step 4: decimals by
// numeric equality, strings case-fold, lists order-independently.
func typeAwareEqual(a, b interface{}) bool {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
		if bs, bok := b.(string); bok {
			if bf2, err := strconv.ParseFloat(bs, 64); err == nil {
				return af == bf2
			}
		}
		return false
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			return strings.EqualFold(strings.TrimSpace(as), strings.TrimSpace(bs))
		}
		return false
	}
	aSlice, aok := asStringSlice(a)
	bSlice, bok := asStringSlice(b)
	if aok && bok {
		return sameSetCaseFold(aSlice, bSlice)
	}
	return false
}

func sameSetCaseFold(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	norm := func(ss []string) []string {
		out := make([]string, len(ss))
		for i, s := range ss {
			out[i] = strings.ToLower(strings.TrimSpace(s))
		}
		sort.Strings(out)
		return out
	}
	na, nb := norm(a), norm(b)
	for i := range na {
		if na[i] != nb[i] {
			return false
		}
	}
	return true
}

// Package search wraps the external web-search API used by the
// Verification & Enrichment Pipeline (§4.9) and the Competition
// Orchestrator's enrichment pass (§4.7).
package search

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

// Result is one search hit (§4.5).
type Result struct {
	URL      string
	Domain   string
	Title    string
	Snippet  string
	Position int
}

// ExcludedDomains lists the domain substrings whose results are unreliable
// for product data (§10): social networks, general aggregators, auctions,
// forums, and encyclopedias.
var ExcludedDomains = []string{
	"facebook.com", "twitter.com", "x.com", "instagram.com", "linkedin.com",
	"youtube.com", "pinterest.com", "reddit.com", "wikipedia.org",
	"amazon.com", "ebay.com",
}

// IsExcludedDomain reports whether domain matches any entry in
// ExcludedDomains (substring, case-insensitive).
func IsExcludedDomain(domain string) bool {
	lc := strings.ToLower(domain)
	for _, ex := range ExcludedDomains {
		if strings.Contains(lc, ex) {
			return true
		}
	}
	return false
}

// Client wraps the external search API via resty.
type Client struct {
	http      *resty.Client
	costCents int
}

func New(baseURL, apiKey string, timeout time.Duration, costCents int) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(apiKey)
	return &Client{http: c, costCents: costCents}
}

type searchResponse struct {
	Results []struct {
		URL      string `json:"url"`
		Domain   string `json:"domain"`
		Title    string `json:"title"`
		Snippet  string `json:"snippet"`
		Position int    `json:"position"`
	} `json:"results"`
}

// Search implements search(query, num) → [Result] (§4.5). Every call emits a
// CostRecord at the service's per-call cents rate, win or lose.
func (c *Client) Search(ctx context.Context, query string, num int, crawlJobID uuid.UUID) ([]Result, models.CostRecord, error) {
	cost := newCostRecord(c.costCents, crawlJobID)

	var out searchResponse
	_, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"q": query, "num": strconv.Itoa(num)}).
		SetResult(&out).
		Get("/search")
	if err != nil {
		return nil, cost, err
	}

	results := make([]Result, 0, len(out.Results))
	for _, r := range out.Results {
		results = append(results, Result{
			URL: r.URL, Domain: r.Domain, Title: r.Title,
			Snippet: r.Snippet, Position: r.Position,
		})
	}
	return results, cost, nil
}

// FindBrandOfficialSite implements find_brand_official_site(brand_name) →
// Result | none (§4.5): queries, then scores by non-excluded domain, brand
// slug in domain, and "official"/"welcome to" language, falling back to the
// top non-excluded result in position ≤ 3.
func (c *Client) FindBrandOfficialSite(ctx context.Context, brandName string, crawlJobID uuid.UUID) (*Result, models.CostRecord, error) {
	query := brandName + " official site whisky distillery"
	results, cost, err := c.Search(ctx, query, 10, crawlJobID)
	if err != nil {
		return nil, cost, err
	}

	slug := slugify(brandName)

	var best *Result
	bestScore := -1
	for i := range results {
		r := &results[i]
		if IsExcludedDomain(r.Domain) {
			continue
		}
		score := 1
		if strings.Contains(strings.ToLower(r.Domain), slug) {
			score += 2
		}
		combined := strings.ToLower(r.Title + " " + r.Snippet)
		if strings.Contains(combined, "official") || strings.Contains(combined, "welcome to") {
			score += 2
		}
		if score > bestScore {
			bestScore = score
			best = r
		}
	}
	if best != nil {
		return best, cost, nil
	}

	for i := range results {
		r := &results[i]
		if !IsExcludedDomain(r.Domain) && r.Position <= 3 {
			return r, cost, nil
		}
	}
	return nil, cost, nil
}

func slugify(name string) string {
	lc := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(lc, " ", "")
}

func newCostRecord(costCents int, crawlJobID uuid.UUID) models.CostRecord {
	return models.CostRecord{
		ID:           uuid.New(),
		Service:      models.CostServiceSerpAPI,
		CostCents:    costCents,
		RequestCount: 1,
		CrawlJobID:   uuid.NullUUID{UUID: crawlJobID, Valid: crawlJobID != uuid.Nil},
		Timestamp:    time.Now(),
	}
}

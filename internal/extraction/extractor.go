// Package extraction implements the Extractor / Content Processor of §4.2:
// deterministic field derivation from URL/meta tags, delegation to an
// external AI extraction service over resty (the pack's thin-client idiom
// for every third-party REST integration), schema validation, and merge of
// the two sources with the AI value winning ties.
package extraction

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/extraction/schema"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/htmlutil"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

// descriptionFallbackMaxChars caps the plain-text fallback so a product with
// no meta description doesn't end up with an entire page body as its field.
const descriptionFallbackMaxChars = 280

// Result is the Extractor's return contract from §4.2:
// extract(raw_content, url, product_type_hint, source) -> {fields, confidences, success, error}.
type Result struct {
	Fields      map[string]interface{}
	Confidences map[string]float64
	Success     bool
	Error       string
}

// Extractor wraps the AI extraction service client.
type Extractor struct {
	client    *resty.Client
	costCents int
}

// New builds an Extractor against the AI service's base URL/key.
func New(baseURL, apiKey string, timeout time.Duration, costCents int) *Extractor {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(apiKey)
	return &Extractor{client: client, costCents: costCents}
}

type aiExtractionRequest struct {
	URL         string `json:"url"`
	ProductType string `json:"productType"`
	Content     string `json:"content"`
}

type aiFieldValue struct {
	Value      interface{} `json:"value"`
	Confidence float64     `json:"confidence"`
}

type aiExtractionResponse struct {
	Fields map[string]aiFieldValue `json:"fields"`
}

// Extract runs the full §4.2 pipeline for one fetched page.
func (e *Extractor) Extract(ctx context.Context, rawContent, url string, productTypeHint models.ProductTypeEnum) Result {
	if _, err := schema.ForProductType(productTypeHint); err != nil {
		return Result{Error: "unsupported_type"}
	}

	derived, derivedConf := deriveFromPage(rawContent, url)

	var aiResp aiExtractionResponse
	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(aiExtractionRequest{URL: url, ProductType: string(productTypeHint), Content: rawContent}).
		SetResult(&aiResp).
		Post("/extract")
	if err != nil || resp.IsError() {
		if len(derived) == 0 {
			return Result{Error: "ai_extraction_failed"}
		}
		// Deterministic fields alone still make a usable (if thin) result.
		return Result{Fields: derived, Confidences: derivedConf, Success: true}
	}

	fields := make(map[string]interface{}, len(derived)+len(aiResp.Fields))
	confidences := make(map[string]float64, len(derived)+len(aiResp.Fields))
	for k, v := range derived {
		fields[k] = v
		confidences[k] = derivedConf[k]
	}
	// AI values win on tie (§4.2: "merges them in, AI values winning on tie").
	for k, fv := range aiResp.Fields {
		if reason := schema.Validate(productTypeHint, k, fv.Value); reason != "" {
			continue
		}
		fields[k] = fv.Value
		confidences[k] = fv.Confidence
	}

	if err := schema.ValidateDocument(productTypeHint, fields); err != nil {
		return Result{Error: fmt.Sprintf("schema_validation_failed: %v", err)}
	}

	return Result{Fields: fields, Confidences: confidences, Success: true}
}

// ProvenanceRows builds one FieldProvenance per extracted field (§4.2:
// "records one FieldProvenance row per field with the returned confidence
// and the source URL").
func ProvenanceRows(productID uuid.UUID, sourceURL string, res Result) []models.FieldProvenance {
	rows := make([]models.FieldProvenance, 0, len(res.Fields))
	now := time.Now()
	for field, value := range res.Fields {
		rows = append(rows, models.FieldProvenance{
			ID:          uuid.New(),
			ProductID:   productID,
			FieldName:   field,
			Source:      sourceURL,
			RawValue:    fmt.Sprintf("%v", value),
			Confidence:  res.Confidences[field],
			ExtractedAt: now,
		})
	}
	return rows
}

var ageStatementRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:years?|yrs?|yo)\b`)

// deriveFromPage extracts fields deterministically from the URL and page
// meta tags before the AI call (§4.2), using goquery the way the Hub/
// Competition Parsers do for every other HTML-structure read in this repo.
func deriveFromPage(rawContent, pageURL string) (map[string]interface{}, map[string]float64) {
	fields := map[string]interface{}{}
	confidences := map[string]float64{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawContent))
	if err != nil {
		return fields, confidences
	}

	if title, ok := doc.Find("meta[property='og:title']").Attr("content"); ok && title != "" {
		fields[models.FieldName] = strings.TrimSpace(title)
		confidences[models.FieldName] = 0.4
	} else if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		fields[models.FieldName] = title
		confidences[models.FieldName] = 0.3
	}

	if desc, ok := doc.Find("meta[name='description']").Attr("content"); ok && desc != "" {
		fields[models.FieldDescription] = strings.TrimSpace(desc)
		confidences[models.FieldDescription] = 0.35
	} else if text, err := htmlutil.CleanToText(rawContent); err == nil && text != "" {
		fields[models.FieldDescription] = truncate(text, descriptionFallbackMaxChars)
		confidences[models.FieldDescription] = 0.15
	}

	if m := ageStatementRe.FindStringSubmatch(pageURL + " " + doc.Find("h1").First().Text()); m != nil {
		fields[models.FieldAgeStatement] = m[1] + " Year"
		confidences[models.FieldAgeStatement] = 0.5
	}

	return fields, confidences
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max])
}

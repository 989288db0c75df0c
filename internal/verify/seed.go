package verify

import "github.com/troeske/spiritswise-web-crawler-sub003/internal/models"

// Seed fills p's fields from a freshly extracted field map, the same
// field-by-field coercion the enrichment merge uses, but unconditional:
// callers use it once, right after extraction, before a product has any
// prior values to conflict with.
func Seed(p *models.Product, fields map[string]interface{}) {
	for field, value := range fields {
		set(p, field, value)
	}
}

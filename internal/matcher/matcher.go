package matcher

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

const fuzzyMatchThreshold = 85

// CandidateStore is the subset of internal/store the Matcher needs: exact
// GTIN/fingerprint lookups and a same-product-type candidate set for fuzzy
// scoring. Implemented by internal/store/postgres.
type CandidateStore interface {
	FindByGTIN(gtin string) (*models.Product, error)
	FindByFingerprint(fingerprint string) (*models.Product, error)
	CandidatesByProductType(pt models.ProductTypeEnum) ([]models.Product, error)
}

// Fingerprint computes the matching fingerprint from (lower(name),
// lower(brand)) (§4.8 step 2).
func Fingerprint(name, brand string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(brand))))
	return hex.EncodeToString(sum[:])[:32]
}

// Matcher implements find_match (§4.8).
type Matcher struct {
	store CandidateStore
}

func New(store CandidateStore) *Matcher {
	return &Matcher{store: store}
}

// FindMatch implements the four-step resolution cascade of §4.8.
func (m *Matcher) FindMatch(gtin, name, brand string, productType models.ProductTypeEnum) (*models.Product, models.MatchMethodEnum, float64) {
	if gtin != "" {
		if p, err := m.store.FindByGTIN(gtin); err == nil && p != nil {
			return p, models.MatchMethodGTIN, 1.0
		}
	}

	fp := Fingerprint(name, brand)
	if p, err := m.store.FindByFingerprint(fp); err == nil && p != nil {
		return p, models.MatchMethodFingerprint, 0.95
	}

	return m.fuzzyMatch(name, brand, productType)
}

func (m *Matcher) fuzzyMatch(name, brand string, productType models.ProductTypeEnum) (*models.Product, models.MatchMethodEnum, float64) {
	candidates, err := m.store.CandidatesByProductType(productType)
	if err != nil || len(candidates) == 0 {
		return nil, models.MatchMethodNone, 0.0
	}

	normalizedName := NormalizeName(name)
	firstWord := FirstSignificantWord(normalizedName)
	hasBrand := strings.TrimSpace(brand) != ""

	var best *models.Product
	bestScore := 0
	bestBrandMatched := false

	for i := range candidates {
		c := &candidates[i]

		if hasBrand && c.BrandName.Valid && c.BrandName.String != "" {
			if !strings.EqualFold(strings.TrimSpace(brand), strings.TrimSpace(c.BrandName.String)) {
				continue
			}
		}

		candidateNormalized := NormalizeName(c.Name)
		if firstWord != "" && FirstSignificantWord(candidateNormalized) != firstWord {
			continue
		}

		score := BestFuzzyScore(normalizedName, candidateNormalized)
		if score > bestScore {
			bestScore = score
			best = c
			bestBrandMatched = hasBrand && c.BrandName.Valid && c.BrandName.String != ""
		}
	}

	if best == nil || bestScore < fuzzyMatchThreshold {
		return nil, models.MatchMethodNone, 0.0
	}

	confidence := 0.85
	if bestBrandMatched {
		confidence += 0.1
		if confidence > 0.99 {
			confidence = 0.99
		}
	}
	return best, models.MatchMethodFuzzy, confidence
}

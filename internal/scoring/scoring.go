// Package scoring implements the Completeness Scorer and Status Machine
// (§4.10): a deterministic 0-100 score from populated-field buckets, and the
// strict status rule gated on the mandatory-palate rule.
package scoring

import (
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/config"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

// Score computes the completeness score (§4.10), summing per-bucket weights
// for populated fields and clamping to [0, 100].
func Score(p *models.Product) int {
	total := 0

	// Identification (up to 15).
	if p.Name != "" {
		total += config.ScoreWeightName
	}
	if p.BrandID.Valid && p.BrandID.String != "" {
		total += config.ScoreWeightBrand
	}

	// Basic info (up to 15).
	if p.ProductType != "" {
		total += config.ScoreWeightProductType
	}
	if p.ABV.Valid {
		total += config.ScoreWeightABV
	}
	if p.Description.Valid && p.Description.String != "" {
		total += config.ScoreWeightDescription
	}

	// Palate (up to 20).
	if len(p.PalateFlavors) > 0 {
		total += config.ScoreWeightPalateFlavors
	}
	if p.PalateDescription.Valid && p.PalateDescription.String != "" {
		total += config.ScoreWeightPalateDescription
	}
	if p.MidPalateEvolution.Valid && p.MidPalateEvolution.String != "" {
		total += config.ScoreWeightMidPalateEvolution
	}
	if p.Mouthfeel.Valid && p.Mouthfeel.String != "" {
		total += config.ScoreWeightMouthfeel
	}

	// Nose (up to 10).
	if p.NoseDescription.Valid && p.NoseDescription.String != "" {
		total += config.ScoreWeightNoseDescription
	}
	if len(p.PrimaryAromas) > 0 {
		total += config.ScoreWeightPrimaryAromas
	}

	// Finish (up to 10).
	if p.FinishDescription.Valid && p.FinishDescription.String != "" {
		total += config.ScoreWeightFinishDescription
	}
	if len(p.FinishFlavors) > 0 {
		total += config.ScoreWeightFinishFlavors
	}
	if p.FinishLength.Valid && p.FinishLength.String != "" {
		total += config.ScoreWeightFinishLength
	}

	// Enrichment (up to 20).
	if p.BestPrice.Valid {
		total += config.ScoreWeightBestPrice
	}
	if len(p.Images) > 0 {
		total += config.ScoreWeightImages
	}
	if len(p.Ratings) > 0 {
		total += config.ScoreWeightRatings
	}
	if len(p.Awards) > 0 {
		total += config.ScoreWeightAwards
	}

	// Verification (up to 10): ≥2 sources scores 5, ≥3 sources scores the
	// full 10 (the two weights are additive, not exclusive).
	if p.SourceCount >= 2 {
		total += config.ScoreWeightSourceCount2Plus
	}
	if p.SourceCount >= 3 {
		total += config.ScoreWeightSourceCount3Plus
	}

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	return total
}

// Status implements the strict status rule of §4.10. A product manually set
// to rejected or merged keeps that status regardless of score. Otherwise the
// mandatory-palate rule gates every threshold at or above 60: no palate
// means the product is never promoted past partial, no matter how high the
// score climbs.
func Status(p *models.Product, score int) models.ProductStatusEnum {
	if p.Status == models.ProductStatusRejected || p.Status == models.ProductStatusMerged {
		return p.Status
	}

	hasPalate := p.TastingProfile.HasPalate()

	switch {
	case score < config.ScoreThresholdIncomplete:
		return models.ProductStatusIncomplete
	case score < config.ScoreThresholdPartial:
		return models.ProductStatusPartial
	case score < config.ScoreThresholdVerified:
		if hasPalate {
			return models.ProductStatusComplete
		}
		return models.ProductStatusPartial
	default:
		if hasPalate {
			return models.ProductStatusVerified
		}
		return models.ProductStatusPartial
	}
}

// Apply recomputes and writes both CompletenessScore and Status onto p, the
// single entry point callers (Product Saver, Verification Pipeline) use
// after every merge.
func Apply(p *models.Product) {
	score := Score(p)
	p.CompletenessScore = score
	p.Status = Status(p, score)
}

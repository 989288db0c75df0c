// Package awards implements the Awards Handler (§4.7): attaching a parsed
// AwardRecord to a Product with dedup on (normalized_competition, year,
// normalized_medal, product).
package awards

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/parsers/competition"
)

// Store is the subset of internal/store the Awards Handler needs.
type Store interface {
	ListAwardsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Award, error)
	InsertAward(ctx context.Context, a *models.Award) error
	AddDiscoverySource(ctx context.Context, productID uuid.UUID, source string) error
}

// Handler implements attach_award (§4.7).
type Handler struct {
	store Store
}

func New(store Store) *Handler {
	return &Handler{store: store}
}

// normalizedCompetition lower-cases and trims the key so " IWSC" and
// "iwsc" key the same; inner whitespace is left as it is.
func normalizedCompetition(key competition.CompetitionKey) string {
	return strings.ToLower(strings.TrimSpace(string(key)))
}

// dedupKey is the (normalized_competition, year, normalized_medal) triple
// compared against a product's existing awards (§3, §4.7).
type dedupKey struct {
	competition string
	year        int
	medal       string
}

func keyOf(competitionName string, year int, medal string) dedupKey {
	return dedupKey{
		competition: strings.ToLower(strings.TrimSpace(competitionName)),
		year:        year,
		medal:       strings.ToLower(strings.TrimSpace(medal)),
	}
}

// Attach inserts rec as an Award on productID unless an award with the same
// (normalized_competition, year, normalized_medal) already exists on that
// product, and records the competition key in discovery_sources.
func (h *Handler) Attach(ctx context.Context, productID uuid.UUID, key competition.CompetitionKey, rec competition.AwardRecord) (bool, error) {
	existing, err := h.store.ListAwardsByProduct(ctx, productID)
	if err != nil {
		return false, err
	}

	competitionName := normalizedCompetition(key)
	medal := competition.NormalizeMedal(rec.Medal)
	newKey := keyOf(competitionName, rec.Year, medal)

	for _, a := range existing {
		if keyOf(a.Competition, a.Year, a.Medal) == newKey {
			return false, nil
		}
	}

	award := &models.Award{
		ID:          uuid.New(),
		ProductID:   productID,
		Competition: competitionName,
		Year:        rec.Year,
		Medal:       medal,
	}
	if rec.HasScore {
		award.Score.Float64 = rec.Score
		award.Score.Valid = true
	}
	if rec.AwardCategory != "" {
		award.AwardCategory.String = rec.AwardCategory
		award.AwardCategory.Valid = true
	}
	if rec.AwardImageURL != "" {
		award.AwardImageURL.String = rec.AwardImageURL
		award.AwardImageURL.Valid = true
	}

	if err := h.store.InsertAward(ctx, award); err != nil {
		return false, err
	}
	if err := h.store.AddDiscoverySource(ctx, productID, string(key)); err != nil {
		return false, err
	}
	return true, nil
}

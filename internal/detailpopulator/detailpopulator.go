// Package detailpopulator infers and builds the type-specific detail record
// (WhiskeyDetails or PortWineDetails, §3) for a product from whatever name,
// category, and producer/brand strings are known about it at creation time.
package detailpopulator

import (
	"database/sql"
	"strings"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

// Populate builds the detail record matching productType, or returns
// (nil, nil) for a product type with no detail record. Exactly one of the
// two return values is non-nil for whiskey/port_wine.
func Populate(productType models.ProductTypeEnum, name, category, producer string) (*models.WhiskeyDetails, *models.PortWineDetails) {
	switch productType {
	case models.ProductTypeWhiskey:
		return &models.WhiskeyDetails{
			WhiskeyType: InferWhiskeyType(name, category),
			Distillery:  nullableString(producer),
		}, nil
	case models.ProductTypePortWine:
		return nil, &models.PortWineDetails{
			Style:         InferPortStyle(name, category),
			ProducerHouse: nullableString(InferProducerHouse(name, producer)),
		}
	}
	return nil, nil
}

// knownPortHouses are well-known port producer houses checked against a
// product name before falling back to the producer field or the name's
// first word.
var knownPortHouses = []string{
	"Taylor", "Fonseca", "Graham", "Cockburn", "Dow", "Warre",
	"Croft", "Sandeman", "Niepoort", "Quinta do Noval", "Ramos Pinto",
	"Burmester", "Ferreira", "Kopke", "Barros", "Calem", "Offley",
}

// InferWhiskeyType guesses the whiskey sub-category from its category
// string, falling back to name and then an empty (unknown) type.
func InferWhiskeyType(name, category string) models.WhiskeyTypeEnum {
	if t, ok := whiskeyTypeFromText(category); ok {
		return t
	}
	if t, ok := whiskeyTypeFromText(name); ok {
		return t
	}
	return ""
}

func whiskeyTypeFromText(text string) (models.WhiskeyTypeEnum, bool) {
	lc := strings.ToLower(text)
	switch {
	case strings.Contains(lc, "bourbon"):
		return models.WhiskeyTypeBourbon, true
	case strings.Contains(lc, "rye"):
		return models.WhiskeyTypeRye, true
	case strings.Contains(lc, "tennessee"):
		return models.WhiskeyTypeTennessee, true
	case strings.Contains(lc, "japanese"), containsAny(lc, "suntory", "nikka", "yamazaki", "hibiki"):
		return models.WhiskeyTypeJapanese, true
	case strings.Contains(lc, "irish") && strings.Contains(lc, "blend"):
		return models.WhiskeyTypeIrishBlend, true
	case strings.Contains(lc, "pot still"):
		return models.WhiskeyTypeIrishSinglePot, true
	case strings.Contains(lc, "irish"):
		return models.WhiskeyTypeIrishSingleMalt, true
	case strings.Contains(lc, "single malt"), strings.Contains(lc, "scotch"):
		if strings.Contains(lc, "blend") {
			return models.WhiskeyTypeScotchBlend, true
		}
		return models.WhiskeyTypeScotchSingleMalt, true
	case strings.Contains(lc, "blend"):
		return models.WhiskeyTypeScotchBlend, true
	}
	return "", false
}

// InferPortStyle guesses the port style from its category string, falling
// back to name and then the original's ruby default (§3 style default).
func InferPortStyle(name, category string) models.PortStyleEnum {
	if s, ok := portStyleFromText(category); ok {
		return s
	}
	if s, ok := portStyleFromText(name); ok {
		return s
	}
	return models.PortStyleRuby
}

func portStyleFromText(text string) (models.PortStyleEnum, bool) {
	lc := strings.ToLower(text)
	switch {
	case strings.Contains(lc, "vintage"):
		return models.PortStyleVintage, true
	case strings.Contains(lc, "tawny"):
		return models.PortStyleTawny, true
	case strings.Contains(lc, "white"):
		return models.PortStyleWhite, true
	case strings.Contains(lc, "rose"), strings.Contains(lc, "rosé"):
		return models.PortStyleRose, true
	case strings.Contains(lc, "lbv"), strings.Contains(lc, "late bottled"):
		return models.PortStyleLBV, true
	case strings.Contains(lc, "colheita"):
		return models.PortStyleColheita, true
	case strings.Contains(lc, "crusted"):
		return models.PortStyleCrusted, true
	case strings.Contains(lc, "garrafeira"):
		return models.PortStyleGarrafeira, true
	case strings.Contains(lc, "reserve"):
		return models.PortStyleReserve, true
	case strings.Contains(lc, "ruby"):
		return models.PortStyleRuby, true
	}
	return "", false
}

// InferProducerHouse matches a known port house against the product name,
// falls back to the producer string, then the name's first word.
func InferProducerHouse(name, producer string) string {
	lc := strings.ToLower(name)
	for _, house := range knownPortHouses {
		if strings.Contains(lc, strings.ToLower(house)) {
			return house
		}
	}
	if producer != "" {
		return producer
	}
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return "Unknown Producer"
}

func containsAny(text string, substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

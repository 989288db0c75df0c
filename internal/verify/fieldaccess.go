package verify

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

// get reads the current value of a named Product/TastingProfile field,
// reporting whether it's set and non-empty (§4.9 step 1/4: "product's
// current value is empty"). Field names are the models.FieldName* constants.
func get(p *models.Product, field string) (interface{}, bool) {
	switch field {
	case models.FieldName:
		return p.Name, p.Name != ""
	case models.FieldBrand:
		return p.BrandID.String, p.BrandID.Valid && p.BrandID.String != ""
	case models.FieldGTIN:
		return p.GTIN.String, p.GTIN.Valid && p.GTIN.String != ""
	case models.FieldABV:
		return p.ABV.Float64, p.ABV.Valid
	case models.FieldVolumeML:
		return p.VolumeML.Int64, p.VolumeML.Valid
	case models.FieldAgeStatement:
		return p.AgeStatement.String, p.AgeStatement.Valid && p.AgeStatement.String != ""
	case models.FieldCountry:
		return p.Country.String, p.Country.Valid && p.Country.String != ""
	case models.FieldRegion:
		return p.Region.String, p.Region.Valid && p.Region.String != ""
	case models.FieldCategory:
		return p.Category.String, p.Category.Valid && p.Category.String != ""
	case models.FieldDescription:
		return p.Description.String, p.Description.Valid && p.Description.String != ""
	case models.FieldProductType:
		return string(p.ProductType), p.ProductType != ""

	case models.FieldNoseDescription:
		return p.NoseDescription.String, p.NoseDescription.Valid && p.NoseDescription.String != ""
	case models.FieldPrimaryAromas:
		return []string(p.PrimaryAromas), len(p.PrimaryAromas) > 0
	case models.FieldSecondaryAromas:
		return []string(p.SecondaryAromas), len(p.SecondaryAromas) > 0

	case models.FieldInitialTaste:
		return p.InitialTaste.String, p.InitialTaste.Valid && p.InitialTaste.String != ""
	case models.FieldMidPalateEvolution:
		return p.MidPalateEvolution.String, p.MidPalateEvolution.Valid && p.MidPalateEvolution.String != ""
	case models.FieldPalateDescription:
		return p.PalateDescription.String, p.PalateDescription.Valid && p.PalateDescription.String != ""
	case models.FieldPalateFlavors:
		return []string(p.PalateFlavors), len(p.PalateFlavors) > 0
	case models.FieldFlavorIntensity:
		return p.FlavorIntensity.String, p.FlavorIntensity.Valid && p.FlavorIntensity.String != ""
	case models.FieldComplexity:
		return p.Complexity.String, p.Complexity.Valid && p.Complexity.String != ""
	case models.FieldMouthfeel:
		return p.Mouthfeel.String, p.Mouthfeel.Valid && p.Mouthfeel.String != ""

	case models.FieldFinishDescription:
		return p.FinishDescription.String, p.FinishDescription.Valid && p.FinishDescription.String != ""
	case models.FieldFinishFlavors:
		return []string(p.FinishFlavors), len(p.FinishFlavors) > 0
	case models.FieldFinishLength:
		return p.FinishLength.String, p.FinishLength.Valid && p.FinishLength.String != ""

	case models.FieldBestPrice:
		return p.BestPrice.Float64, p.BestPrice.Valid
	case models.FieldImages:
		return string(p.Images), len(p.Images) > 0
	case models.FieldRatings:
		return string(p.Ratings), len(p.Ratings) > 0
	case models.FieldAwards:
		return string(p.Awards), len(p.Awards) > 0
	}
	return nil, false
}

// set fills field on p from an extracted value. The value's concrete type is
// whatever the Extractor produced (string, float64, []string); set coerces
// defensively rather than panicking on an unexpected shape.
func set(p *models.Product, field string, value interface{}) {
	switch field {
	case models.FieldName:
		if s, ok := value.(string); ok {
			p.Name = s
		}
	case models.FieldBrand:
		if s, ok := asString(value); ok {
			p.BrandID = sql.NullString{String: s, Valid: true}
		}
	case models.FieldGTIN:
		if s, ok := asString(value); ok {
			p.GTIN = sql.NullString{String: s, Valid: true}
		}
	case models.FieldABV:
		if f, ok := asFloat(value); ok {
			p.ABV = sql.NullFloat64{Float64: f, Valid: true}
		}
	case models.FieldVolumeML:
		if f, ok := asFloat(value); ok {
			p.VolumeML = sql.NullInt64{Int64: int64(f), Valid: true}
		}
	case models.FieldAgeStatement:
		if s, ok := asString(value); ok {
			p.AgeStatement = sql.NullString{String: s, Valid: true}
		}
	case models.FieldCountry:
		if s, ok := asString(value); ok {
			p.Country = sql.NullString{String: s, Valid: true}
		}
	case models.FieldRegion:
		if s, ok := asString(value); ok {
			p.Region = sql.NullString{String: s, Valid: true}
		}
	case models.FieldCategory:
		if s, ok := asString(value); ok {
			p.Category = sql.NullString{String: s, Valid: true}
		}
	case models.FieldDescription:
		if s, ok := asString(value); ok {
			p.Description = sql.NullString{String: s, Valid: true}
		}
	case models.FieldProductType:
		if s, ok := asString(value); ok {
			p.ProductType = models.ProductTypeEnum(s)
		}

	case models.FieldNoseDescription:
		if s, ok := asString(value); ok {
			p.NoseDescription = sql.NullString{String: s, Valid: true}
		}
	case models.FieldPrimaryAromas:
		if ss, ok := asStringSlice(value); ok {
			p.PrimaryAromas = pq.StringArray(ss)
		}
	case models.FieldSecondaryAromas:
		if ss, ok := asStringSlice(value); ok {
			p.SecondaryAromas = pq.StringArray(ss)
		}

	case models.FieldInitialTaste:
		if s, ok := asString(value); ok {
			p.InitialTaste = sql.NullString{String: s, Valid: true}
		}
	case models.FieldMidPalateEvolution:
		if s, ok := asString(value); ok {
			p.MidPalateEvolution = sql.NullString{String: s, Valid: true}
		}
	case models.FieldPalateDescription:
		if s, ok := asString(value); ok {
			p.PalateDescription = sql.NullString{String: s, Valid: true}
		}
	case models.FieldPalateFlavors:
		if ss, ok := asStringSlice(value); ok {
			p.PalateFlavors = pq.StringArray(ss)
		}
	case models.FieldFlavorIntensity:
		if s, ok := asString(value); ok {
			p.FlavorIntensity = sql.NullString{String: s, Valid: true}
		}
	case models.FieldComplexity:
		if s, ok := asString(value); ok {
			p.Complexity = sql.NullString{String: s, Valid: true}
		}
	case models.FieldMouthfeel:
		if s, ok := asString(value); ok {
			p.Mouthfeel = sql.NullString{String: s, Valid: true}
		}

	case models.FieldFinishDescription:
		if s, ok := asString(value); ok {
			p.FinishDescription = sql.NullString{String: s, Valid: true}
		}
	case models.FieldFinishFlavors:
		if ss, ok := asStringSlice(value); ok {
			p.FinishFlavors = pq.StringArray(ss)
		}
	case models.FieldFinishLength:
		if s, ok := asString(value); ok {
			p.FinishLength = sql.NullString{String: s, Valid: true}
		}

	case models.FieldBestPrice:
		if f, ok := asFloat(value); ok {
			p.BestPrice = sql.NullFloat64{Float64: f, Valid: true}
		}
	}
}

func asString(value interface{}) (string, bool) {
	s, ok := value.(string)
	return s, ok && s != ""
}

func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func asStringSlice(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, len(v) > 0
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out, len(out) > 0
	}
	return nil, false
}

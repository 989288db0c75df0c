package models

// ProductCandidate is the typed, not-yet-persisted output of the Extractor
// (§4.2) before the Matcher/Saver resolve it onto a Product row. Field names
// mirror Product/TastingProfile/WhiskeyDetails/PortWineDetails column names
// so the merge routine (§4.9) can address them generically by string key.
type ProductCandidate struct {
	ProductType ProductTypeEnum
	SourceURL   string

	Name    string
	GTIN    string
	Brand   string

	Fields map[string]interface{}

	// Confidences mirrors Fields' keys with the Extractor's per-field
	// confidence score in [0,1].
	Confidences map[string]float64
}

// FieldNames used across the merge/scoring/matcher routines. Kept as
// constants (not an enum type) since they address arbitrary struct fields by
// name, matching the teacher's `db` tag strings.
const (
	FieldName                 = "name"
	FieldBrand                = "brand"
	FieldGTIN                 = "gtin"
	FieldABV                  = "abv"
	FieldVolumeML             = "volume_ml"
	FieldAgeStatement         = "age_statement"
	FieldCountry              = "country"
	FieldRegion               = "region"
	FieldCategory             = "category"
	FieldDescription          = "description"
	FieldProductType          = "product_type"

	FieldNoseDescription = "nose_description"
	FieldPrimaryAromas   = "primary_aromas"
	FieldSecondaryAromas = "secondary_aromas"

	FieldInitialTaste       = "initial_taste"
	FieldMidPalateEvolution = "mid_palate_evolution"
	FieldPalateDescription  = "palate_description"
	FieldPalateFlavors      = "palate_flavors"
	FieldFlavorIntensity    = "flavor_intensity"
	FieldComplexity         = "complexity"
	FieldMouthfeel          = "mouthfeel"

	FieldFinishDescription = "finish_description"
	FieldFinishFlavors     = "finish_flavors"
	FieldFinishLength      = "finish_length"

	FieldBestPrice = "best_price"
	FieldImages    = "images"
	FieldRatings   = "ratings"
	FieldAwards    = "awards"
)

// CriticalFields are the fields the Verification Pipeline (§4.9 step 1)
// checks for when deciding whether to launch enrichment: palate/nose/finish
// plus each unverified field among name/abv/country/region/palate_description.
var CriticalFields = []string{
	FieldPalateDescription,
	FieldNoseDescription,
	FieldFinishDescription,
	FieldName,
	FieldABV,
	FieldCountry,
	FieldRegion,
}

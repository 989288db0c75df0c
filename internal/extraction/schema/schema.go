// Package schema defines the per-product-type JSON schemas the Extractor
// validates the AI extraction service's response against (§4.2), reusing
// kin-openapi's openapi3.Schema type — the teacher only exercises this
// library for OpenAPI doc generation (api/*/spec.go); here it's repurposed
// for its schema-validation half, the only half this repo needs.
package schema

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

func strProp() *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("", openapi3.NewStringSchema().WithNullable())
}

func strArrayProp() *openapi3.SchemaRef {
	s := openapi3.NewArraySchema()
	s.Items = openapi3.NewSchemaRef("", openapi3.NewStringSchema())
	s.Nullable = true
	return openapi3.NewSchemaRef("", s)
}

func numProp(min, max float64) *openapi3.SchemaRef {
	s := openapi3.NewFloat64Schema().WithMin(min).WithMax(max)
	s.Nullable = true
	return openapi3.NewSchemaRef("", s)
}

// sharedTastingProperties are the tasting-profile fields common to both
// product types (§3 TastingProfile).
func sharedTastingProperties() map[string]*openapi3.SchemaRef {
	return map[string]*openapi3.SchemaRef{
		models.FieldNoseDescription:     strProp(),
		models.FieldPrimaryAromas:       strArrayProp(),
		models.FieldInitialTaste:        strProp(),
		models.FieldMidPalateEvolution:  strProp(),
		models.FieldPalateDescription:   strProp(),
		models.FieldPalateFlavors:       strArrayProp(),
		models.FieldFlavorIntensity:     strProp(),
		models.FieldComplexity:          strProp(),
		models.FieldMouthfeel:           strProp(),
		models.FieldFinishDescription:   strProp(),
		models.FieldFinishFlavors:       strArrayProp(),
		models.FieldFinishLength:        strProp(),
	}
}

func baseProductProperties() map[string]*openapi3.SchemaRef {
	props := map[string]*openapi3.SchemaRef{
		models.FieldName:         openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
		models.FieldBrand:        strProp(),
		models.FieldGTIN:         strProp(),
		models.FieldABV:          numProp(0, 100),
		models.FieldVolumeML:     numProp(0, 20000),
		models.FieldAgeStatement: strProp(),
		models.FieldCountry:      strProp(),
		models.FieldRegion:       strProp(),
		models.FieldCategory:     strProp(),
		models.FieldDescription:  strProp(),
	}
	for k, v := range sharedTastingProperties() {
		props[k] = v
	}
	return props
}

// WhiskeySchema is the extraction schema for whiskey (§4.2: "the schema
// enumerates all tasting-profile fields plus the whiskey-detail fields").
func WhiskeySchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	s.Properties = baseProductProperties()
	s.Properties["whiskey_type"] = strProp()
	s.Properties["distillery"] = strProp()
	s.Properties["mash_bill"] = strProp()
	s.Properties["peat_level"] = strProp()
	s.Properties["peat_ppm"] = numProp(0, 200)
	s.Properties["vintage_year"] = yearProp()
	s.Properties["bottling_year"] = yearProp()
	s.Required = []string{models.FieldName}
	return s
}

// PortSchema is the extraction schema for port wine.
func PortSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	s.Properties = baseProductProperties()
	s.Properties["style"] = strProp()
	s.Properties["indication_age"] = strProp()
	s.Properties["harvest_year"] = yearProp()
	s.Properties["bottling_year"] = yearProp()
	s.Properties["producer_house"] = strProp()
	s.Properties["quinta"] = strProp()
	s.Properties["douro_subregion"] = strProp()
	s.Properties["grape_varieties"] = strArrayProp()
	s.Required = []string{models.FieldName}
	return s
}

func yearProp() *openapi3.SchemaRef {
	// The schema's upper bound is a fixed 2100 type-shape guard; the moving
	// current+1 limit (§4.2) is enforced by the business-rule check in
	// validate.go. The 1800 lower bound is a domain constant.
	return numProp(1800, 2100)
}

// ForProductType returns the schema for a known product type, or an error
// for anything else — the Extractor surfaces this as error="unsupported_type".
func ForProductType(pt models.ProductTypeEnum) (*openapi3.Schema, error) {
	switch pt {
	case models.ProductTypeWhiskey:
		return WhiskeySchema(), nil
	case models.ProductTypePortWine:
		return PortSchema(), nil
	default:
		return nil, fmt.Errorf("unsupported_type")
	}
}

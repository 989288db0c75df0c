package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

// ValidateDocument runs the declared-type half of validation by handing the
// whole extracted field map to kin-openapi's openapi3.Schema.VisitJSON,
// catching wrong-shaped values (a string where the schema expects a number,
// an object where it expects an array) the per-field business rules below
// don't check for.
func ValidateDocument(pt models.ProductTypeEnum, fields map[string]interface{}) error {
	s, err := ForProductType(pt)
	if err != nil {
		return err
	}
	doc := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if _, known := s.Properties[k]; known {
			doc[k] = v
		}
	}
	return s.VisitJSON(doc)
}

// Validate checks a field/value pair against the schema's declared property
// type and the explicit impossible-value rules of §4.2 (ABV outside
// [0,100], volume < 0, year outside 1800..current+1). Returns the error
// reason, or "" if the value is acceptable.
func Validate(pt models.ProductTypeEnum, field string, value interface{}) string {
	switch field {
	case models.FieldABV:
		if v, ok := asFloat(value); ok && (v < 0 || v > 100) {
			return fmt.Sprintf("abv %v out of range [0,100]", v)
		}
	case models.FieldVolumeML:
		if v, ok := asFloat(value); ok && v < 0 {
			return fmt.Sprintf("volume_ml %v is negative", v)
		}
	case "vintage_year", "bottling_year", "harvest_year":
		if v, ok := asFloat(value); ok {
			year := int(v)
			maxYear := time.Now().Year() + 1
			if year < 1800 || year > maxYear {
				return fmt.Sprintf("%s %d outside 1800..%d", field, year, maxYear)
			}
		}
	}
	return ""
}

func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

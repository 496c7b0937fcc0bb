package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ctc-parts/catalog-importer/constants"
)

// BuildPartJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// parts API create payload, as a generic map. It is used locally to catch
// mapping bugs before a payload ever reaches the backend.
func BuildPartJSONSchema() map[string]any {
	props := map[string]any{
		"master_part_no":   map[string]any{"type": "string", "minLength": 1},
		"part_no":          map[string]any{"type": "string", "minLength": 1},
		"brand_name":       map[string]any{"type": "string"},
		"description":      map[string]any{"type": "string"},
		"category_name":    map[string]any{"type": "string"},
		"subcategory_name": map[string]any{"type": "string"},
		"application_name": map[string]any{"type": "string"},
		"origin":           map[string]any{"type": "string"},
		"grade":            map[string]any{"type": "string"},
		"size":             map[string]any{"type": "string"},
		"location":         map[string]any{"type": "string"},
		"cost":             map[string]any{"type": "number", "minimum": 0.0},
		"market_price":     map[string]any{"type": "number", "minimum": 0.0},
		"price_a":          map[string]any{"type": "number", "minimum": 0.0},
		"price_b":          map[string]any{"type": "number", "minimum": 0.0},
		"weight":           map[string]any{"type": "number", "minimum": 0.0},
		"reorder_level":    map[string]any{"type": "integer", "minimum": 0},
		"uom":              map[string]any{"type": "string"},
		"status":           map[string]any{"type": "string", "enum": []string{constants.PartStatusActive, constants.PartStatusInactive}},
		"models": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"name":     map[string]any{"type": "string", "minLength": 1},
					"qty_used": map[string]any{"type": "integer", "minimum": 1},
				},
				"required": []string{"name"},
			},
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"part_no", "uom", "status"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ValidatePayload marshals a built payload and validates it against the
// part schema.
func ValidatePayload(payload map[string]any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return ValidateJSONAgainstSchema(BuildPartJSONSchema(), b)
}

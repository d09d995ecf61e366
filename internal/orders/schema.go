package orders

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"pedidos-tracker/internal/entity"
)

// buildOrderJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// persisted order record shape. Validated locally right before a row is
// appended, so a malformed record never reaches the store.
func buildOrderJSONSchema() map[string]any {
	tsPattern := `^\d{2}/\d{2}/\d{4} \d{2}:\d{2}$`
	props := map[string]any{
		"id":                   map[string]any{"type": "integer", "minimum": 1},
		"shift_id":             map[string]any{"type": "integer", "minimum": 1},
		"accepted_at":          map[string]any{"type": "string", "pattern": tsPattern},
		"delivered_at":         map[string]any{"type": "string", "pattern": tsPattern},
		"vendor_name":          map[string]any{"type": "string", "minLength": 1},
		"vendor_address":       map[string]any{"type": "string"},
		"business_type":        map[string]any{"type": "string"},
		"chain":                map[string]any{"type": "string", "enum": []string{"", "Si", "No"}},
		"vendor_postal_code":   postalProp(),
		"customer_postal_code": postalProp(),
		"tip":                  map[string]any{"type": "number", "minimum": 0.0},
	}
	required := []string{"id", "accepted_at", "delivered_at", "vendor_name"}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func postalProp() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0, "maximum": 9999}
}

func compileOrderSchema() (*jsonschema.Schema, error) {
	raw, err := json.Marshal(buildOrderJSONSchema())
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("order.schema.json", bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return c.Compile("order.schema.json")
}

// validateOrder marshals the record and checks it against the schema.
func validateOrder(schema *jsonschema.Schema, o entity.Order) error {
	raw, err := json.Marshal(o)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("order record failed schema validation: %w", err)
	}
	return nil
}

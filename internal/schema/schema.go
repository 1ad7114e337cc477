// Package schema describes the canonical invoice record as JSON-Schema and
// validates serialized records against it. Used by the CLI's -validate flag
// and by the server's debug response self-check.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildRecordJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. Every scalar field is either a native string/number value or
// the literal "unknown"; item numerics are nullable, never "unknown".
func BuildRecordJSONSchema() map[string]any {
	scalar := map[string]any{"type": []string{"string", "number"}}
	props := map[string]any{
		"order_number":   scalar,
		"buyer_name":     scalar,
		"buyer_address":  scalar,
		"seller_name":    scalar,
		"seller_address": scalar,
		"order_date":     scalar,
		"payment_method": scalar,
		"subtotal":       scalar,
		"total":          scalar,
		"grand_total":    scalar,
		"items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"name":     map[string]any{"type": "string"},
					"qty":      nullableValue(),
					"price":    nullableValue(),
					"subtotal": nullableValue(),
				},
				"required": []string{"name", "qty", "price", "subtotal"},
			},
		},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required": []string{
			"order_number", "buyer_name", "buyer_address",
			"seller_name", "seller_address", "order_date",
			"payment_method", "subtotal", "total", "grand_total", "items",
		},
	}
}

func nullableValue() map[string]any {
	// upstream payloads occasionally carry quantities as strings; they are
	// passed through as-is
	return map[string]any{"type": []string{"number", "string", "null"}}
}

var compileRecordSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(BuildRecordJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("record.json")
})

// ValidateRecordJSON validates a serialized canonical record against the
// record schema.
func ValidateRecordJSON(data []byte) error {
	schema, err := compileRecordSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}

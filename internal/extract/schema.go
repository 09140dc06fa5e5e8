package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildPayloadSchema returns the JSON-Schema (draft 2020-12 subset) for the
// structured receipt payload the vision capability is asked to produce.
// Validation is advisory: a payload that fails is still mapped defensively,
// since the capability is not obliged to honor the requested shape.
func buildPayloadSchema() map[string]any {
	confidenceProp := map[string]any{
		"type":    []string{"number", "null"},
		"minimum": 0.0,
		"maximum": 1.0,
	}
	nullableString := map[string]any{"type": []string{"string", "null"}}
	nullableNumber := map[string]any{"type": []string{"number", "string", "null"}}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"extracted_text": nullableString,
			"merchant": map[string]any{
				"type": []string{"object", "null"},
				"properties": map[string]any{
					"name":    nullableString,
					"address": nullableString,
					"phone":   nullableString,
					"tax_id":  nullableString,
				},
			},
			"transaction": map[string]any{
				"type": []string{"object", "null"},
				"properties": map[string]any{
					"total":          nullableNumber,
					"subtotal":       nullableNumber,
					"tax":            nullableNumber,
					"currency":       nullableString,
					"date":           nullableString,
					"time":           nullableString,
					"invoice_number": nullableString,
				},
			},
			"items":          map[string]any{"type": []string{"array", "null"}},
			"payment_method": nullableString,
			"confidence": map[string]any{
				"type": []string{"object", "null"},
				"properties": map[string]any{
					"overall":  confidenceProp,
					"merchant": confidenceProp,
					"amount":   confidenceProp,
					"date":     confidenceProp,
					"items":    confidenceProp,
				},
			},
		},
	}
}

// ValidatePayload validates a structured payload against the expected shape.
func ValidatePayload(payload map[string]any) error {
	schemaBytes, err := json.Marshal(buildPayloadSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("payload.json", bytes.NewReader(schemaBytes)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("payload.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("payload does not match expected shape: %w", err)
	}
	return nil
}

// Package extract turns vision output into a normalized, confidence-scored
// set of transaction fields. Field-level failures are never fatal: they
// degrade the field to an absent value with zero confidence and processing
// continues.
package extract

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerlens/receipt-engine/constants"
)

// MaxTranscriptLen bounds ExtractedText on a Result.
const MaxTranscriptLen = 10000

// Field pairs an optional extracted value with a confidence in [0,1].
// An absent value always carries confidence 0.
type Field[T any] struct {
	Value      *T      `json:"value"`
	Confidence float64 `json:"confidence"`
}

// None is the absent field.
func None[T any]() Field[T] {
	return Field[T]{}
}

// Some builds a present field, clamping confidence into [0,1].
func Some[T any](v T, confidence float64) Field[T] {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return Field[T]{Value: &v, Confidence: confidence}
}

// Present reports whether the field carries a value.
func (f Field[T]) Present() bool {
	return f.Value != nil
}

// Result is the normalized output contract consumed by the downstream
// transaction-creation workflow. Built once per request; immutable after
// construction.
type Result struct {
	Amount   Field[decimal.Decimal]    `json:"amount"`
	Date     Field[string]             `json:"date"` // ISO calendar date
	Vendor   Field[string]             `json:"vendor"`
	Category Field[constants.Category] `json:"category"`

	OverallConfidence float64 `json:"overall_confidence"`
	ExtractedText     string  `json:"extracted_text"`

	// StructuredExtras carries line items, tax, invoice number and similar
	// metadata; present only when the structured path was used.
	StructuredExtras map[string]any `json:"structured_extras,omitempty"`

	TransactionType string `json:"transaction_type"`
	Classification  string `json:"classification"`
}

// BoundTranscript truncates a transcript to MaxTranscriptLen bytes.
func BoundTranscript(s string) string {
	if len(s) <= MaxTranscriptLen {
		return s
	}
	return s[:MaxTranscriptLen]
}

package extract

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Default per-field confidences when the capability omits its own.
const (
	defaultAmountConfidence = 0.8
	defaultDateConfidence   = 0.7
	defaultVendorConfidence = 0.8
)

// StructuredFields is the outcome of mapping a structured payload onto the
// normalized field set. Overall is 0 when the payload did not supply a
// usable top-level confidence; the caller then falls back to Fuse.
type StructuredFields struct {
	Amount        Field[decimal.Decimal]
	Date          Field[string]
	Vendor        Field[string]
	Overall       float64
	ExtractedText string
	Extras        map[string]any
}

// MapStructured maps a structured payload's known fields onto the normalized
// field set. Conversion failures degrade the field and are logged, never
// raised: partial results still flow downstream.
func MapStructured(payload map[string]any, defaultCurrency string, logger *slog.Logger) StructuredFields {
	if logger == nil {
		logger = slog.Default()
	}

	if err := ValidatePayload(payload); err != nil {
		logger.Warn("extract.structured.unexpected_shape", "error", err)
	}

	transaction := subObject(payload, "transaction")
	merchant := subObject(payload, "merchant")
	confidence := subObject(payload, "confidence")

	out := StructuredFields{
		ExtractedText: stringValue(payload, "extracted_text"),
		Extras: map[string]any{
			"merchant":       payload["merchant"],
			"items":          payload["items"],
			"payment_method": payload["payment_method"],
			"invoice_number": transaction["invoice_number"],
			"subtotal":       transaction["subtotal"],
			"tax":            transaction["tax"],
			"currency":       currencyOrDefault(transaction, defaultCurrency),
		},
	}

	// Amount: total with subtotal fallback, through a decimal-preserving
	// conversion (string or json.Number, never a float round trip).
	rawAmount := transaction["total"]
	if rawAmount == nil {
		rawAmount = transaction["subtotal"]
	}
	if rawAmount != nil {
		if amt, err := toDecimal(rawAmount); err == nil {
			out.Amount = Some(amt, confidenceOrDefault(confidence, "amount", defaultAmountConfidence))
			logger.Debug("extract.structured.amount",
				"raw", rawAmount, "processed", amt.String(),
				"confidence", out.Amount.Confidence)
		} else {
			logger.Error("extract.structured.amount_conversion_failed",
				"raw", rawAmount, "error", err)
		}
	}

	if date := stringValue(transaction, "date"); date != "" {
		out.Date = Some(date, confidenceOrDefault(confidence, "date", defaultDateConfidence))
	}

	if name := stringValue(merchant, "name"); name != "" {
		out.Vendor = Some(name, confidenceOrDefault(confidence, "merchant", defaultVendorConfidence))
	}

	// A top-level overall of exactly zero means "not provided"; the caller
	// recomputes via the weighted formula in that case.
	out.Overall = floatValue(confidence, "overall")
	if out.Overall < 0 {
		out.Overall = 0
	}
	if out.Overall > 1 {
		out.Overall = 1
	}

	return out
}

// toDecimal converts a payload value to decimal without going through a
// binary float when the source preserved the digits (json.Number, string).
func toDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case json.Number:
		return decimal.NewFromString(t.String())
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		return decimal.NewFromString(s)
	case float64:
		// Only reachable for payloads decoded without UseNumber; formatting
		// with -1 precision keeps every digit the float actually carries.
		return decimal.NewFromString(strconv.FormatFloat(t, 'f', -1, 64))
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported amount type %T", v)
	}
}

func subObject(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}

func stringValue(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func floatValue(m map[string]any, key string) float64 {
	switch t := m[key].(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case float64:
		return t
	default:
		return 0
	}
}

func confidenceOrDefault(confidence map[string]any, key string, def float64) float64 {
	if v, ok := confidence[key]; !ok || v == nil {
		return def
	}
	return floatValue(confidence, key)
}

func currencyOrDefault(transaction map[string]any, def string) string {
	if c := stringValue(transaction, "currency"); c != "" {
		return c
	}
	return def
}

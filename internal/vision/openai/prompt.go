package openai

import (
	"strings"

	"github.com/ledgerlens/receipt-engine/internal/vision"
)

// buildReceiptPrompt asks the model for a structured receipt JSON document.
// The engine tolerates replies that ignore the requested shape, so this is a
// request, not a contract.
func buildReceiptPrompt(req vision.Request) string {
	currency := req.DefaultCurrency
	if currency == "" {
		currency = "COP"
	}

	parts := []string{
		"Analyze this photographed receipt or invoice and extract the transaction information.",
		"Return ONLY a JSON object with these keys:",
		`{
  "extracted_text": "full transcribed text",
  "merchant": {"name": "", "address": "", "phone": "", "tax_id": ""},
  "transaction": {"total": 0, "subtotal": 0, "tax": 0, "currency": "` + currency + `", "date": "YYYY-MM-DD", "time": "HH:MM", "invoice_number": ""},
  "items": [{"description": "", "quantity": 1, "unit_price": 0, "total": 0}],
  "payment_method": "",
  "confidence": {"overall": 0.0, "merchant": 0.0, "amount": 0.0, "date": 0.0, "items": 0.0}
}`,
		"Use ISO-8601 dates (YYYY-MM-DD).",
		"If a field is not visible, use null. If multiple amounts appear, prioritize the total.",
	}
	if req.TransactionType != "" {
		parts = append(parts, "The expected transaction type is "+req.TransactionType+".")
	}
	if req.Classification != "" {
		parts = append(parts, "The expected classification is "+req.Classification+".")
	}
	parts = append(parts, "Respond ONLY with the JSON, no additional text.")
	return strings.Join(parts, "\n")
}

package extract

import (
	"encoding/json"
	"strings"

	"github.com/ledgerlens/receipt-engine/internal/vision"
)

// RoutingDecision names the extraction path for one vision output. Exactly
// one of Structured or Transcript is meaningful: a non-nil Structured wins.
type RoutingDecision struct {
	Structured map[string]any
	Transcript string
}

// Interpret routes vision output to an extraction path. Structured data is
// always preferred: a payload that arrived typed is used as-is, and a plain
// transcript that itself parses as a JSON object (models often wrap one in
// markdown fences) is promoted to the structured path.
func Interpret(out vision.Output) RoutingDecision {
	if out.IsStructured() {
		return RoutingDecision{Structured: out.Structured}
	}
	if fields, ok := decodeEmbeddedJSON(out.Text); ok {
		return RoutingDecision{Structured: fields}
	}
	return RoutingDecision{Transcript: out.Text}
}

// decodeEmbeddedJSON pulls a JSON object out of a text reply: strips
// markdown code fences, then brace-scans for the outermost object. Numbers
// are preserved as json.Number.
func decodeEmbeddedJSON(text string) (map[string]any, bool) {
	t := strings.TrimSpace(text)
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimSuffix(t, "```")
	t = strings.TrimSpace(t)

	// Only replies that *are* a JSON object count; an object buried inside
	// prose stays on the free-text path.
	if !strings.HasPrefix(t, "{") {
		return nil, false
	}
	if end := strings.LastIndex(t, "}"); end >= 0 {
		t = t[:end+1]
	}

	dec := json.NewDecoder(strings.NewReader(t))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, false
	}
	return m, true
}

package constants

import (
	"strings"
)

// Category identifies an entry in the fixed expense taxonomy.
type Category string

const (
	Food          Category = "food"
	Transport     Category = "transport"
	Shopping      Category = "shopping"
	Health        Category = "health"
	Entertainment Category = "entertainment"
	Utilities     Category = "utilities"
	Education     Category = "education"
)

// allCategories fixes the scoring order; ties go to the earlier entry.
var allCategories = []Category{
	Food,
	Transport,
	Shopping,
	Health,
	Entertainment,
	Utilities,
	Education,
}

// categoryKeywords maps each category to its lowercase keyword set.
// Read-only process-wide configuration; safe for concurrent reads.
var categoryKeywords = map[Category][]string{
	Food:          {"restaurante", "café", "comida", "alimentos", "restaurant", "cafe"},
	Transport:     {"taxi", "uber", "transporte", "gasolina", "parking"},
	Shopping:      {"tienda", "compra", "mall", "ropa", "zapatos"},
	Health:        {"farmacia", "médico", "salud", "medicinas"},
	Entertainment: {"cine", "teatro", "concierto", "entretenimiento"},
	Utilities:     {"servicios", "luz", "agua", "gas", "teléfono"},
	Education:     {"libros", "curso", "educación", "colegio"},
}

// AllCategories returns the taxonomy in its canonical scoring order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// KeywordsFor returns the keyword set for a category, nil if unknown.
func KeywordsFor(c Category) []string {
	return categoryKeywords[c]
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps free-form labels onto the taxonomy.
func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return "", false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	for _, cat := range allCategories {
		if normalized == string(cat) {
			return cat, true
		}
	}

	return "", false
}

package extract

import (
	"strings"

	"github.com/ledgerlens/receipt-engine/constants"
)

// Per-keyword scores; a vendor hit is worth more than a transcript hit.
const (
	transcriptKeywordScore = 0.3
	vendorKeywordScore     = 0.5

	// No heuristic category suggestion is ever reported as near-certain.
	maxCategoryConfidence = 0.9
)

// SuggestCategory scores the fixed taxonomy against transcript and vendor.
// It is shared by the structured and free-text paths so category behavior is
// identical regardless of which route produced the other fields. Scanning
// follows taxonomy order, so ties resolve deterministically to the earlier
// category.
// transactionType is accepted for contract parity but does not influence
// scoring for the current taxonomy, which is expense-only.
func SuggestCategory(transcript, vendor, transactionType string) Field[constants.Category] {
	textLower := strings.ToLower(transcript)
	vendorLower := strings.ToLower(vendor)

	var best constants.Category
	bestScore := 0.0

	for _, cat := range constants.AllCategories() {
		score := 0.0
		for _, kw := range constants.KeywordsFor(cat) {
			if strings.Contains(textLower, kw) {
				score += transcriptKeywordScore
			}
			if vendorLower != "" && strings.Contains(vendorLower, kw) {
				score += vendorKeywordScore
			}
		}
		if score > bestScore {
			bestScore = score
			best = cat
		}
	}

	if bestScore <= 0 {
		return None[constants.Category]()
	}
	return Some(best, min(bestScore, maxCategoryConfidence))
}

package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Labeled (Total/Valor/Importe) candidates yield 0.8, bare numerals 0.6.
const (
	labeledAmountConfidence   = 0.8
	unlabeledAmountConfidence = 0.6
)

// Amounts outside this range are discarded as extraction noise.
var (
	minPlausibleAmount = decimal.NewFromInt(100)
	maxPlausibleAmount = decimal.NewFromInt(10_000_000)
)

// amountPatterns are tried in order; the capture group is the numeral run.
var amountPatterns = []struct {
	re      *regexp.Regexp
	labeled bool
}{
	{regexp.MustCompile(`(?i)total[:\s]*\$?\s*(\d[\d.,]*\d|\d)`), true},
	{regexp.MustCompile(`(?i)valor[:\s]*\$?\s*(\d[\d.,]*\d|\d)`), true},
	{regexp.MustCompile(`(?i)importe[:\s]*\$?\s*(\d[\d.,]*\d|\d)`), true},
	{regexp.MustCompile(`\$\s*(\d[\d.,]*\d|\d)`), false},
	{regexp.MustCompile(`(?m)(\d[\d.,]*\d|\d)\s*\$?\s*$`), false},
}

var (
	reDotDecimalTail   = regexp.MustCompile(`\.\d{1,2}$`)
	reCommaDecimalTail = regexp.MustCompile(`,\d{1,2}$`)
)

// ExtractAmount scans a transcript for a plausible transaction amount.
// The largest labeled candidate wins; bare numerals are only used when no
// labeled candidate survives the range filter.
func ExtractAmount(text string) Field[decimal.Decimal] {
	var bestLabeled, bestUnlabeled *decimal.Decimal

	for _, p := range amountPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			amt, err := normalizeNumeral(m[1])
			if err != nil {
				continue
			}
			if amt.LessThan(minPlausibleAmount) || amt.GreaterThan(maxPlausibleAmount) {
				continue
			}
			if p.labeled {
				if bestLabeled == nil || amt.GreaterThan(*bestLabeled) {
					bestLabeled = &amt
				}
			} else {
				if bestUnlabeled == nil || amt.GreaterThan(*bestUnlabeled) {
					bestUnlabeled = &amt
				}
			}
		}
	}

	if bestLabeled != nil {
		return Some(*bestLabeled, labeledAmountConfidence)
	}
	if bestUnlabeled != nil {
		return Some(*bestUnlabeled, unlabeledAmountConfidence)
	}
	return None[decimal.Decimal]()
}

// normalizeNumeral resolves the thousands-vs-decimal separator ambiguity:
//  1. a trailing ".dd" makes '.' the decimal separator, ',' thousands;
//  2. else a trailing ",dd" with no '.' makes ',' the decimal separator;
//  3. else all separators are thousands marks and the value is integral.
//
// Rule 3 knowingly reads a bare "45000" as 45000 whole units; an input with
// no decimal marker is inherently ambiguous and is not second-guessed.
func normalizeNumeral(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	var s string
	switch {
	case reDotDecimalTail.MatchString(raw):
		s = strings.ReplaceAll(raw, ",", "")
	case reCommaDecimalTail.MatchString(raw) && !strings.Contains(raw, "."):
		s = strings.ReplaceAll(raw, ",", ".")
	default:
		s = strings.NewReplacer(".", "", ",", "").Replace(raw)
	}
	return decimal.NewFromString(s)
}

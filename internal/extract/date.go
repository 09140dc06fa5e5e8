package extract

import (
	"fmt"
	"regexp"
	"strconv"
)

const (
	labeledDateConfidence   = 0.8
	unlabeledDateConfidence = 0.6
)

// datePatterns capture (a, b, c) where order depends on the layout.
var datePatterns = []struct {
	re      *regexp.Regexp
	yearMD  bool // capture order is year, month, day
	labeled bool
}{
	{regexp.MustCompile(`(?i)fecha[:\s]*(\d{1,2})[/\-](\d{1,2})[/\-](\d{2,4})`), false, true},
	{regexp.MustCompile(`\b(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})\b`), true, false},
	{regexp.MustCompile(`\b(\d{1,2})[/\-](\d{1,2})[/\-](\d{2,4})\b`), false, false},
}

// ExtractDate scans a transcript for a calendar date and normalizes it to
// ISO form. A label-prefixed match outranks a bare one; among equals the
// first by position wins. Candidates with impossible day or month values
// are rejected outright.
func ExtractDate(text string) Field[string] {
	var bestDate string
	bestConfidence := 0.0
	bestPos := -1

	for _, p := range datePatterns {
		confidence := unlabeledDateConfidence
		if p.labeled {
			confidence = labeledDateConfidence
		}
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			a := text[loc[2]:loc[3]]
			b := text[loc[4]:loc[5]]
			c := text[loc[6]:loc[7]]

			var day, month, year string
			if p.yearMD {
				year, month, day = a, b, c
			} else {
				day, month, year = a, b, c
			}
			iso, ok := normalizeDate(day, month, year)
			if !ok {
				continue
			}

			better := confidence > bestConfidence ||
				(confidence == bestConfidence && (bestPos == -1 || loc[0] < bestPos))
			if better {
				bestDate = iso
				bestConfidence = confidence
				bestPos = loc[0]
			}
		}
	}

	if bestDate == "" {
		return None[string]()
	}
	return Some(bestDate, bestConfidence)
}

// normalizeDate validates ranges and expands two-digit years by prefixing 20.
func normalizeDate(day, month, year string) (string, bool) {
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return "", false
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return "", false
	}
	if len(year) == 2 {
		year = "20" + year
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), true
}

package extract

import (
	"strings"
	"unicode"
)

const vendorConfidence = 0.7

// vendorScanLines limits the scan to the top of the receipt, where merchant
// names conventionally appear.
const vendorScanLines = 5

// ExtractVendor returns the first of the top transcript lines that looks
// like a merchant name: 4–49 characters, no digits, no currency symbol.
func ExtractVendor(text string) Field[string] {
	lines := strings.Split(text, "\n")
	if len(lines) > vendorScanLines {
		lines = lines[:vendorScanLines]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) <= 3 || len(line) >= 50 {
			continue
		}
		if strings.ContainsAny(line, "$£€") {
			continue
		}
		if strings.ContainsFunc(line, unicode.IsDigit) {
			continue
		}
		return Some(line, vendorConfidence)
	}
	return None[string]()
}

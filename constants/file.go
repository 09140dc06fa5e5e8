package constants

import "strings"

// AllowedContentTypes holds the default image formats accepted for extraction.
var AllowedContentTypes = []string{"image/jpeg", "image/png", "image/webp"}

// MaxImageBytesDefault is the default upper bound on an input image (10 MiB).
const MaxImageBytesDefault int64 = 10 << 20

// MaxImageDimensionDefault is the edge length above which an image may be
// downscaled before the vision call. Optimization only, never a rejection.
const MaxImageDimensionDefault = 2000

// NormalizeContentType lowercases a MIME type and strips any parameters.
func NormalizeContentType(ct string) string {
	ct = strings.TrimSpace(strings.ToLower(ct))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

// Package imagegate validates receipt images before any vision call is made:
// byte size, declared content type, and decodability. It can also downscale
// oversized images to keep the remote payload small.
package imagegate

import (
	"bytes"
	"image"
	"image/jpeg"
	"log/slog"
	"slices"

	_ "image/png"

	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"

	"github.com/ledgerlens/receipt-engine/constants"
	"github.com/ledgerlens/receipt-engine/internal/common"
)

type Config struct {
	MaxBytes     int64    // if <= 0 -> constants.MaxImageBytesDefault
	AllowedTypes []string // if empty -> constants.AllowedContentTypes
	MaxDimension int      // if <= 0 -> constants.MaxImageDimensionDefault
}

type Gate struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = constants.MaxImageBytesDefault
	}
	if len(cfg.AllowedTypes) == 0 {
		cfg.AllowedTypes = constants.AllowedContentTypes
	}
	if cfg.MaxDimension <= 0 {
		cfg.MaxDimension = constants.MaxImageDimensionDefault
	}
	return &Gate{cfg: cfg, logger: logger}
}

// Validate checks size, declared content type and decodability. Pure; no
// side effects beyond logging.
func (g *Gate) Validate(data []byte, contentType string) error {
	if int64(len(data)) > g.cfg.MaxBytes {
		g.logger.Warn("imagegate.size_exceeded",
			"bytes", len(data), "max_bytes", g.cfg.MaxBytes)
		return common.NewAppError("IMAGE_SIZE_ERROR",
			"image exceeds configured maximum size", common.ErrSizeExceeded)
	}

	ct := constants.NormalizeContentType(contentType)
	if !slices.Contains(g.cfg.AllowedTypes, ct) {
		g.logger.Warn("imagegate.unsupported_format", "content_type", contentType)
		return common.NewAppError("UNSUPPORTED_FORMAT",
			"content type not allowed: "+ct, common.ErrUnsupportedFormat)
	}

	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		g.logger.Warn("imagegate.corrupt_image", "error", err)
		return common.NewAppError("INVALID_IMAGE_ERROR",
			"image could not be decoded", common.ErrCorruptImage)
	}
	return nil
}

// Prepare validates the image and, when either edge exceeds MaxDimension,
// downscales it to reduce the vision payload. Downscaling is an optimization
// only: any resize or re-encode failure falls back to the original bytes.
// The returned content type reflects the bytes actually returned (downscaled
// images are re-encoded as JPEG).
func (g *Gate) Prepare(data []byte, contentType string) ([]byte, string, error) {
	ct := constants.NormalizeContentType(contentType)
	if err := g.Validate(data, contentType); err != nil {
		return nil, "", err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// Validate already decoded once; treat a second failure as corrupt.
		return nil, "", common.NewAppError("INVALID_IMAGE_ERROR",
			"image could not be decoded", common.ErrCorruptImage)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= g.cfg.MaxDimension && h <= g.cfg.MaxDimension {
		return data, ct, nil
	}

	scale := float64(g.cfg.MaxDimension) / float64(max(w, h))
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
		g.logger.Warn("imagegate.downscale_encode_failed", "error", err)
		return data, ct, nil
	}

	g.logger.Info("imagegate.downscaled",
		"from", w, "to", dw, "bytes_before", len(data), "bytes_after", buf.Len())
	return buf.Bytes(), "image/jpeg", nil
}

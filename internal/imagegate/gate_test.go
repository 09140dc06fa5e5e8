package imagegate

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/receipt-engine/internal/common"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x), A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidate_OK(t *testing.T) {
	g := New(Config{}, nil)
	assert.NoError(t, g.Validate(pngBytes(t, 8, 8), "image/png"))
}

func TestValidate_NormalizesContentType(t *testing.T) {
	g := New(Config{}, nil)
	assert.NoError(t, g.Validate(pngBytes(t, 8, 8), "IMAGE/PNG; charset=binary"))
}

func TestValidate_SizeExceeded(t *testing.T) {
	g := New(Config{MaxBytes: 16}, nil)
	err := g.Validate(make([]byte, 17), "image/png")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSizeExceeded)
}

func TestValidate_UnsupportedFormat(t *testing.T) {
	g := New(Config{}, nil)
	err := g.Validate(pngBytes(t, 8, 8), "image/gif")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
}

func TestValidate_CorruptImage(t *testing.T) {
	g := New(Config{}, nil)
	err := g.Validate([]byte("definitely not an image"), "image/png")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCorruptImage)
}

func TestValidate_SizeCheckedBeforeDecode(t *testing.T) {
	// Oversized garbage fails on size, not on decodability.
	g := New(Config{MaxBytes: 4}, nil)
	err := g.Validate([]byte("garbage that is too big"), "image/png")
	assert.ErrorIs(t, err, common.ErrSizeExceeded)
}

func TestPrepare_SmallImagePassesThrough(t *testing.T) {
	g := New(Config{}, nil)
	data := pngBytes(t, 8, 8)
	out, ct, err := g.Prepare(data, "image/png")
	require.NoError(t, err)
	assert.Equal(t, data, out)
	assert.Equal(t, "image/png", ct)
}

func TestPrepare_DownscalesOversized(t *testing.T) {
	g := New(Config{MaxDimension: 50}, nil)
	out, ct, err := g.Prepare(pngBytes(t, 100, 40), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestPrepare_InvalidImageRejected(t *testing.T) {
	g := New(Config{}, nil)
	_, _, err := g.Prepare([]byte("nope"), "image/png")
	assert.ErrorIs(t, err, common.ErrCorruptImage)
}

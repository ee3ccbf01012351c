package document

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fixedEncoder() *PDFEncoder {
	e := NewPDFEncoder("Riverside Villa", "flyer builder")
	e.Now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return e
}

func TestEncodePageMatchesCanvas(t *testing.T) {
	out, err := fixedEncoder().Encode(pngBytes(t, 36, 45), 1080, 1350)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "/MediaBox [0 0 1080.00 1350.00]")
	assert.Equal(t, 1, bytes.Count(out, []byte("/Type /Page\n")))
}

func TestEncodeLandscapeKeepsSize(t *testing.T) {
	out, err := fixedEncoder().Encode(pngBytes(t, 4, 2), 400, 200)
	require.NoError(t, err)
	assert.Contains(t, string(out), "/MediaBox [0 0 400.00 200.00]")
}

func TestEncodeIsDeterministic(t *testing.T) {
	data := pngBytes(t, 12, 15)
	a, err := fixedEncoder().Encode(data, 1080, 1350)
	require.NoError(t, err)
	b, err := fixedEncoder().Encode(data, 1080, 1350)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncodeErrors(t *testing.T) {
	_, err := fixedEncoder().Encode(pngBytes(t, 2, 2), 0, 100)
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = fixedEncoder().Encode([]byte("not a png"), 100, 100)
	assert.Error(t, err)
}

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	return img
}

func TestFitKeepsAspectRatio(t *testing.T) {
	out := Fit(solid(400, 200), 100)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())
}

func TestFitLeavesSmallImages(t *testing.T) {
	src := solid(80, 60)
	assert.Same(t, src, Fit(src, 100))
}

func TestToWebP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(320, 240)))

	res, err := ToWebP(&buf, 160)
	require.NoError(t, err)
	assert.Equal(t, 160, res.Width)
	assert.Equal(t, 120, res.Height)
	assert.Equal(t, "RIFF", string(res.Data[:4]))
	assert.Equal(t, "WEBP", string(res.Data[8:12]))
}

func TestToWebPRejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"), MaxWidth)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

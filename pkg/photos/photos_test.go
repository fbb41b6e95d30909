package photos

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// encodePNG 生成测试用的纯色 PNG
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 80, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPhotoAspect(t *testing.T) {
	assert.Equal(t, 2.0, Photo{Width: 200, Height: 100}.Aspect())
	assert.Equal(t, 1.0, Photo{}.Aspect(), "unknown size defaults to 1")
	assert.Equal(t, 1.0, Photo{Width: 10}.Aspect())
}

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte("photos:\n  - a.png\n  - '  '\n  - b/c.jpg\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b/c.jpg"}, m.Photos)

	m, err = ParseManifest([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, m.Photos)

	_, err = ParseManifest([]byte("photos: [unterminated"))
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	p, err := decodeBytes("x.png", encodePNG(t, 30, 10))
	require.NoError(t, err)
	assert.Equal(t, "x.png", p.ID)
	assert.Equal(t, 30, p.Width)
	assert.Equal(t, 10, p.Height)
	assert.InDelta(t, 3.0, p.Aspect(), 1e-9)

	_, err = decodeBytes("bad.png", []byte("not an image"))
	assert.Error(t, err)
}

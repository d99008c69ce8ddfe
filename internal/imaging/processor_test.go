package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestProcessStoresOriginalAndVariants(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	res, err := p.Process(bytes.NewReader(testJPEG(t, 2000, 1500)), "foto.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("originals", "foto.jpg"), res.Path)
	assert.Equal(t, 2000, res.Width)
	assert.Equal(t, 1500, res.Height)

	for _, sub := range []string{"originals", "thumb", "medium"} {
		_, err := os.Stat(filepath.Join(dir, sub, "foto.jpg"))
		assert.NoError(t, err, sub)
	}

	// Variants fit within their bounds.
	f, err := os.Open(filepath.Join(dir, "thumb", "foto.jpg"))
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.LessOrEqual(t, cfg.Width, 320)
	assert.LessOrEqual(t, cfg.Height, 240)
}

func TestProcessRejectsNonImage(t *testing.T) {
	p := NewProcessor(t.TempDir())
	_, err := p.Process(strings.NewReader("definitely not an image"), "x.jpg")
	assert.Error(t, err)
}

func TestDeleteRemovesAllFiles(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)
	_, err := p.Process(bytes.NewReader(testJPEG(t, 640, 480)), "hapus.jpg")
	require.NoError(t, err)

	require.NoError(t, p.Delete("hapus.jpg"))
	for _, sub := range []string{"originals", "thumb", "medium"} {
		_, err := os.Stat(filepath.Join(dir, sub, "hapus.jpg"))
		assert.True(t, os.IsNotExist(err), sub)
	}

	// Deleting again is fine.
	assert.NoError(t, p.Delete("hapus.jpg"))
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage(testJPEG(t, 10, 10)))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	assert.True(t, IsImage(buf.Bytes()))

	assert.False(t, IsImage([]byte("plain text")))
}

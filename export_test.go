package ridgeline_test

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	ridgeline "github.com/tjbutt92/map-elevation-desire"
)

func TestWritePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.png")

	assert.NoError(t, ridgeline.WritePNG(path, img))

	file, err := os.Open(path)
	assert.NoError(t, err)
	defer file.Close()
	decoded, format, err := image.Decode(file)
	assert.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 8, 4), decoded.Bounds())
}

func TestWritePNGUncreatableDirectory(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "occupied")
	assert.NoError(t, os.WriteFile(filePath, []byte("not a directory"), 0o644))

	err := ridgeline.WritePNG(filepath.Join(filePath, "sub", "out.png"), image.NewRGBA(image.Rect(0, 0, 1, 1)))
	assert.IsError(t, err, ridgeline.ErrExport)
}

func TestWritePreviews(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	dir := t.TempDir()

	assert.NoError(t, ridgeline.WritePreviews(dir, img, []uint{10, 25}))

	for _, tc := range []struct {
		filename       string
		expectedBounds image.Rectangle
	}{
		{filename: "preview_10.png", expectedBounds: image.Rect(0, 0, 20, 10)},
		{filename: "preview_25.png", expectedBounds: image.Rect(0, 0, 50, 25)},
	} {
		file, err := os.Open(filepath.Join(dir, tc.filename))
		assert.NoError(t, err)
		decoded, _, err := image.Decode(file)
		assert.NoError(t, err)
		assert.Equal(t, tc.expectedBounds, decoded.Bounds())
		assert.NoError(t, file.Close())
	}
}

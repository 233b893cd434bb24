package ridgeline

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
)

// WritePNG encodes img as PNG at path, creating parent directories as
// needed.
func WritePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create directory %s: %v", ErrExport, dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	if err := png.Encode(file, img); err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: encode %s: %v", ErrExport, path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	return nil
}

// WritePreviews writes downscaled copies of img to dir, one per requested
// pixel height, named preview_<height>.png. Widths preserve img's aspect
// ratio.
func WritePreviews(dir string, img image.Image, heights []uint) error {
	for _, height := range heights {
		preview := resize.Resize(0, height, img, resize.MitchellNetravali)
		path := filepath.Join(dir, fmt.Sprintf("preview_%d.png", height))
		if err := WritePNG(path, preview); err != nil {
			return err
		}
	}
	return nil
}

// Package preview encodes rendered moss previews.
package preview

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
)

// Encode writes img to w as lossless WebP.
func Encode(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("preview: webp encode: %w", err)
	}
	return nil
}

// WriteWebP encodes img to path, creating parent directories.
func WriteWebP(path string, img image.Image) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("preview: %w", cerr)
		}
	}()
	return Encode(f, img)
}

package media

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"strings"

	"github.com/chai2010/webp"
)

// NormalizeWebP decodes a WebP file and rewrites it as JPEG next to the
// original, then removes the original. Returns the new path.
func NormalizeWebP(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	img, err := webp.Decode(bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("decode webp: %w", err)
	}

	jpgPath := strings.TrimSuffix(path, ".webp") + ".jpg"
	out, err := os.Create(jpgPath)
	if err != nil {
		return "", err
	}
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 90}); err != nil {
		out.Close()
		os.Remove(jpgPath)
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(jpgPath)
		return "", err
	}
	os.Remove(path)
	return jpgPath, nil
}

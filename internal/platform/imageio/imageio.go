// Package imageio converts between encoded image bytes, decoded images and files.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp" // WebP decoder registration

	"designkit_backend/internal/feature/design/domain/entity"
)

// Supported MIME types.
const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
	MIMEWebP = "image/webp"
	MIMEGIF  = "image/gif"
)

// ErrUnsupportedFormat is returned for bytes that are not a decodable image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// passthrough lists formats the remote model accepts unchanged.
var passthrough = map[string]bool{MIMEPNG: true, MIMEJPEG: true, MIMEWebP: true}

// DetectMIME sniffs the MIME type from the first bytes of data.
func DetectMIME(data []byte) string {
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

// Decode decodes PNG, JPEG, GIF or WebP bytes.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return img, format, nil
}

// Encode encodes img as PNG or JPEG according to mimeType. PNG is lossless.
func Encode(img image.Image, mimeType string) ([]byte, error) {
	var buf bytes.Buffer
	switch mimeType {
	case MIMEPNG, "":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
	case MIMEJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
			return nil, fmt.Errorf("failed to encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, mimeType)
	}
	return buf.Bytes(), nil
}

// Normalize validates uploaded bytes and returns an image the remote model accepts.
// PNG, JPEG and WebP pass through untouched; other decodable formats are re-encoded as PNG.
func Normalize(data []byte) (entity.Image, error) {
	if len(data) == 0 {
		return entity.Image{}, fmt.Errorf("%w: empty data", ErrUnsupportedFormat)
	}
	mime := DetectMIME(data)
	if passthrough[mime] {
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return entity.Image{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return entity.Image{Data: data, MIMEType: mime}, nil
	}

	img, _, err := Decode(data)
	if err != nil {
		return entity.Image{}, err
	}
	out, err := Encode(img, MIMEPNG)
	if err != nil {
		return entity.Image{}, err
	}
	return entity.Image{Data: out, MIMEType: MIMEPNG}, nil
}

// Load reads and normalizes an image file.
func Load(path string) (entity.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Image{}, fmt.Errorf("failed to read image: %w", err)
	}
	return Normalize(data)
}

// Save writes img to path. A .png path receives PNG bytes even when the model returned another format.
func Save(path string, img entity.Image) error {
	if img.IsEmpty() {
		return fmt.Errorf("%w: empty image", ErrUnsupportedFormat)
	}
	data := img.Data
	if strings.EqualFold(filepath.Ext(path), ".png") && DetectMIME(data) != MIMEPNG {
		decoded, _, err := Decode(data)
		if err != nil {
			return err
		}
		if data, err = Encode(decoded, MIMEPNG); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

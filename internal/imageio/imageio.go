// Package imageio loads and saves images on disk for command line hosts.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/soypat/pixfilter"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Extensions returns the file extensions Load understands.
func Extensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff", ".tif", ".bmp", ".webp"}
}

// Supported reports whether path has an extension Load understands.
func Supported(path string) bool {
	return slices.Contains(Extensions(), strings.ToLower(filepath.Ext(path)))
}

// Load decodes the image at path.
func Load(path string, log logrus.FieldLogger) (*pixfilter.RGBA, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("unsupported image format: %s", path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	out := pixfilter.FromImage(img)
	d := out.Dims()
	log.WithFields(logrus.Fields{
		"path":   path,
		"format": format,
		"width":  d.Width,
		"height": d.Height,
	}).Info("image loaded")
	return out, nil
}

// Encode writes img to w in the format named by ext (for example ".png").
func Encode(w io.Writer, img *pixfilter.RGBA, ext string) error {
	std := img.NRGBA()
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, std)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, std, &jpeg.Options{Quality: 95})
	case ".tif", ".tiff":
		return tiff.Encode(w, std, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		return bmp.Encode(w, std)
	}
	return fmt.Errorf("unsupported output format: %q", ext)
}

// Save encodes img to path choosing the format from the extension.
// Nothing is written to disk if encoding fails.
func Save(path string, img *pixfilter.RGBA, log logrus.FieldLogger) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, filepath.Ext(path)); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	log.WithField("path", path).Info("image saved")
	return nil
}

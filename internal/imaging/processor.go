// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging processes uploaded content photos: EXIF-aware decode,
// re-encode without metadata, and thumbnail/medium variants.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decode support
)

// Variant sizes produced for every stored photo.
var variants = map[string]struct {
	Width   int
	Height  int
	Quality int
}{
	"thumb":  {Width: 320, Height: 240, Quality: 80},
	"medium": {Width: 1024, Height: 768, Quality: 85},
}

// Result describes one stored image file.
type Result struct {
	Path   string // relative to the uploads dir
	Width  int
	Height int
	Size   int64
}

// Processor stores processed images under the uploads dir.
type Processor struct {
	uploadsDir string
}

// NewProcessor creates a processor writing below uploadsDir.
func NewProcessor(uploadsDir string) *Processor {
	return &Processor{uploadsDir: uploadsDir}
}

// Process decodes an upload, fixes EXIF orientation, strips metadata by
// re-encoding, stores the original and its variants, and returns the
// original's result. name should already be collision-free (uuid-based).
func (p *Processor) Process(r io.Reader, name string) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("reading upload: %w", err)
	}
	format := detectFormat(data)
	if format == "" {
		return Result{}, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("decoding image: %w", err)
	}
	img = applyOrientation(img, readOrientation(bytes.NewReader(data)))

	encoded, err := encode(img, format, 92)
	if err != nil {
		return Result{}, fmt.Errorf("encoding image: %w", err)
	}
	rel := filepath.Join("originals", name)
	if err := p.write(rel, encoded); err != nil {
		return Result{}, err
	}

	for variant, cfg := range variants {
		resized := imaging.Fit(img, cfg.Width, cfg.Height, imaging.Lanczos)
		vb, err := encode(resized, format, cfg.Quality)
		if err != nil {
			return Result{}, fmt.Errorf("encoding %s variant: %w", variant, err)
		}
		if err := p.write(filepath.Join(variant, name), vb); err != nil {
			return Result{}, err
		}
	}

	b := img.Bounds()
	return Result{Path: rel, Width: b.Dx(), Height: b.Dy(), Size: int64(len(encoded))}, nil
}

// Delete removes a stored image and its variants.
func (p *Processor) Delete(name string) error {
	name = filepath.Base(name) // no path traversal via stored names
	for _, dir := range []string{"originals", "thumb", "medium"} {
		path := filepath.Join(p.uploadsDir, dir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}
	return nil
}

// IsImage reports whether data looks like a processable image.
func IsImage(data []byte) bool {
	return detectFormat(data) != ""
}

func (p *Processor) write(rel string, data []byte) error {
	path := filepath.Join(p.uploadsDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating upload dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

func detectFormat(data []byte) string {
	ct := http.DetectContentType(data)
	// TIFF is rejected outright (CVE-2023-36308 in the resize library).
	if strings.Contains(ct, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(ct, "jpeg"):
		return "jpeg"
	case strings.Contains(ct, "png"):
		return "png"
	case strings.Contains(ct, "webp"):
		return "webp"
	default:
		return ""
	}
}

func encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		// webp has no pure-Go encoder, re-encode as JPEG
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func readOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return o
}

func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

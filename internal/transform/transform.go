// Package transform turns one source image into one upright, bounded,
// JPEG-encoded output file.
package transform

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/imgpress-cli/internal/hasher"
)

// Output describes one written JPEG.
type Output struct {
	Width   int
	Height  int
	SrcSize int64
	OutSize int64
	Hash    string // xxhash64 of the encoded bytes
}

// Process reads the image at src, corrects EXIF orientation, scales it
// to fit within maxDim on the longer side (aspect ratio preserved) and
// writes a JPEG at the given quality to dst, creating parent
// directories as needed. The write goes through a temp file and rename
// so an interrupted run never leaves a half-written output.
//
// Quality must already be validated by the caller; the stdlib encoder
// clamps silently, which is exactly what the run config forbids.
func Process(src, dst string, maxDim, quality int) (*Output, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}

	img = CorrectOrientation(img, bytes.NewReader(data))

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	tw, th := fitDimensions(w, h, maxDim)
	if tw != w || th != h {
		img = imaging.Resize(img, tw, th, imaging.Lanczos)
	}

	encoded, err := encodeJPEG(img, quality)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", src, err)
	}

	if err := writeAtomic(dst, encoded); err != nil {
		return nil, fmt.Errorf("write %s: %w", dst, err)
	}

	return &Output{
		Width:   tw,
		Height:  th,
		SrcSize: int64(len(data)),
		OutSize: int64(len(encoded)),
		Hash:    hasher.Sum(encoded),
	}, nil
}

// fitDimensions bounds the longer side by maxDim. Images already
// within bounds keep their dimensions. The shorter side is rounded to
// the nearest pixel (truncation would shrink every image by up to a
// full pixel) and never drops below 1.
func fitDimensions(w, h, maxDim int) (int, int) {
	if w <= maxDim && h <= maxDim {
		return w, h
	}
	if w >= h {
		nh := int(math.Round(float64(h) * float64(maxDim) / float64(w)))
		if nh < 1 {
			nh = 1
		}
		return maxDim, nh
	}
	nw := int(math.Round(float64(w) * float64(maxDim) / float64(h)))
	if nw < 1 {
		nw = 1
	}
	return nw, maxDim
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	img = flatten(img)

	var buf bytes.Buffer
	buf.Grow(256 * 1024)

	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// flatten composites transparency onto a white background. JPEG has no
// alpha channel and encoding a translucent image directly would merge
// it with black instead.
func flatten(img image.Image) image.Image {
	if op, ok := img.(interface{ Opaque() bool }); ok && op.Opaque() {
		return img
	}

	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)
	return flat
}

func writeAtomic(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

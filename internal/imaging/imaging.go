// Package imaging normalizes arbitrary user-selected images into
// bounded-size JPEGs before anything is persisted. Normalization is pure:
// no shared state, same inputs give the same dimensions and format (exact
// bytes depend on the encoder, only the size bound and format are
// contractual).
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Default normalization bounds used when Options fields are zero.
const (
	DefaultMaxSide = 1280
	DefaultQuality = 0.82
)

// Options controls a single Normalize call.
type Options struct {
	// MaxSide bounds the longer side in pixels. Zero means DefaultMaxSide.
	MaxSide int
	// Quality is the JPEG quality factor in (0, 1]. Zero means DefaultQuality.
	Quality float64
	// CropSquare takes the center square before bounding.
	CropSquare bool
}

// DecodeError reports that the source bytes are not a decodable image.
// Callers surface it to the user and abort creation; no record is persisted.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Normalize turns source bytes into a bounded JPEG.
//
// Stages: decode (any registered raster format), downscale so the longer
// side fits MaxSide (never upscales, min 1px per side), optional center
// square crop, JPEG re-encode. If the encoder produces no output the source
// bytes come back unchanged - a non-critical encode failure must not block
// creation.
func Normalize(src []byte, opts Options) ([]byte, error) {
	if opts.MaxSide <= 0 {
		opts.MaxSide = DefaultMaxSide
	}
	if opts.Quality <= 0 || opts.Quality > 1 {
		opts.Quality = DefaultQuality
	}

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	img = scaleDown(img, opts.MaxSide)
	if opts.CropSquare {
		img = centerSquare(img)
	}

	var buf bytes.Buffer
	quality := int(math.Round(opts.Quality * 100))
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil || buf.Len() == 0 {
		// Encoder failure falls back to the original payload.
		return src, nil
	}

	return buf.Bytes(), nil
}

// scaleDown bounds the longer side to maxSide, preserving aspect ratio.
// Images already within the bound pass through untouched.
func scaleDown(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	longer := w
	if h > longer {
		longer = h
	}
	if longer <= maxSide {
		return img
	}

	f := float64(maxSide) / float64(longer)
	nw := max(1, int(math.Round(float64(w)*f)))
	nh := max(1, int(math.Round(float64(h)*f)))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// centerSquare crops to the centered square of side min(width, height).
func centerSquare(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == h {
		return img
	}

	side := min(w, h)
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2
	crop := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.Draw(dst, dst.Bounds(), img, crop.Min, xdraw.Src)
	return dst
}

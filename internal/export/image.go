package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/tiff"

	"heightgen/internal/heightfield"
	"heightgen/internal/palette"
)

// Render draws f with the terrain palette, one pixel per cell. Row r is
// image row r.
func Render(f *heightfield.Field) *image.RGBA {
	size := f.Size()
	lo, hi := f.MinMax()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			img.SetRGBA(c, r, palette.At(palette.Normalize(f.At(r, c), lo, hi)).Color())
		}
	}
	return img
}

// Gray16 maps the field's height range onto the full 16-bit range.
func Gray16(f *heightfield.Field) *image.Gray16 {
	size := f.Size()
	lo, hi := f.MinMax()
	img := image.NewGray16(image.Rect(0, 0, size, size))
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			v := float64(palette.Normalize(f.At(r, c), lo, hi))
			img.SetGray16(c, r, color.Gray16{Y: uint16(math.Round(v * math.MaxUint16))})
		}
	}
	return img
}

// WritePNG encodes the coloured rendering of f.
func WritePNG(w io.Writer, f *heightfield.Field) error {
	if err := png.Encode(w, Render(f)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WriteTIFF encodes f as a deflate-compressed 16-bit greyscale heightmap.
func WriteTIFF(w io.Writer, f *heightfield.Field) error {
	if err := tiff.Encode(w, Gray16(f), &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return fmt.Errorf("encode tiff: %w", err)
	}
	return nil
}

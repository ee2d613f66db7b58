package analyzer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ivlev/bracketscan/internal/layout"
)

// BoundsError reports a layout rectangle that does not fit the image.
// Clipping would silently change the pixel counts, so extraction refuses instead.
type BoundsError struct {
	Index  int
	Game   string
	TL, BR layout.Point
	Bounds image.Rectangle
}

func (e *BoundsError) Error() string {
	if e.BR.X <= e.TL.X || e.BR.Y <= e.TL.Y {
		return fmt.Sprintf("region %d (%s): rectangle TL %v BR %v is empty or inverted", e.Index, e.Game, e.TL, e.BR)
	}
	return fmt.Sprintf("region %d (%s): rectangle TL %v BR %v exceeds image bounds %v",
		e.Index, e.Game, e.TL, e.BR, e.Bounds)
}

// CheckBounds verifies that every rectangle lies inside bounds
func CheckBounds(specs []layout.RectSpec, bounds image.Rectangle) error {
	for i, s := range specs {
		if s.Empty() || !s.Rect().In(bounds) {
			return &BoundsError{Index: i, Game: s.Game, TL: s.TL, BR: s.BR, Bounds: bounds}
		}
	}
	return nil
}

// Extract crops one Region per rectangle, in layout order. The image is expected to be
// at the canonical resolution already; no scaling happens here.
func Extract(img image.Image, specs []layout.RectSpec) ([]*Region, error) {
	if err := CheckBounds(specs, img.Bounds()); err != nil {
		return nil, err
	}

	regions := make([]*Region, 0, len(specs))
	for _, s := range specs {
		regions = append(regions, NewRegion(s, crop(img, s.Rect())))
	}
	return regions, nil
}

// crop copies rect out of img. rect must lie inside img.Bounds().
// Alpha is ignored: colour channels are taken as stored.
func crop(img image.Image, rect image.Rectangle) *RGB {
	out := NewRGB(rect.Dx(), rect.Dy())

	switch src := img.(type) {
	case *image.RGBA:
		copyRows(out, src.Pix, src.PixOffset(rect.Min.X, rect.Min.Y), src.Stride)
	case *image.NRGBA:
		copyRows(out, src.Pix, src.PixOffset(rect.Min.X, rect.Min.Y), src.Stride)
	default:
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				c := color.NRGBAModel.Convert(img.At(rect.Min.X+x, rect.Min.Y+y)).(color.NRGBA)
				out.Set(x, y, Color{R: c.R, G: c.G, B: c.B})
			}
		}
	}
	return out
}

// copyRows drops the fourth byte of every 4-byte pixel starting at off
func copyRows(out *RGB, pix []uint8, off, stride int) {
	for y := 0; y < out.Height; y++ {
		src := off + y*stride
		dst := y * out.Width * 3
		for x := 0; x < out.Width; x++ {
			copy(out.Pix[dst+x*3:dst+x*3+3], pix[src+x*4:src+x*4+3])
		}
	}
}

package analyzer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ivlev/bracketscan/internal/layout"
)

// Outcome is the winner code of one match
type Outcome float64

const (
	OpponentWins Outcome = 0
	PlayerWins   Outcome = 1
	Undecided    Outcome = 0.5 // tie, or neither indicator visible
)

// Region is one cropped score indicator together with the match it belongs to.
// It owns its pixels; nothing in it refers back to the source image.
type Region struct {
	Player   string
	Opponent string
	Game     string // overwritten when the region is paired with its sibling

	TL, TR, BL, BR layout.Point

	image *RGB
}

// NewRegion binds a crop to the metadata of its layout record
func NewRegion(spec layout.RectSpec, img *RGB) *Region {
	return &Region{
		Player:   spec.Player,
		Opponent: spec.Opponent,
		Game:     spec.Game,
		TL:       spec.TL,
		TR:       spec.TR,
		BL:       spec.BL,
		BR:       spec.BR,
		image:    img,
	}
}

func (r *Region) String() string {
	return fmt.Sprintf("%s TL: %v, TR: %v, BL: %v, BR: %v", r.Game, r.TL, r.TR, r.BL, r.BR)
}

func (r *Region) CountRed(tolerance int) int {
	return CountMatches(r.image, Red, tolerance)
}

func (r *Region) CountGreen(tolerance int) int {
	return CountMatches(r.image, Green, tolerance)
}

// Colors formats both indicator counts for verbose output
func (r *Region) Colors(tolerance int) string {
	return fmt.Sprintf("Red: %d, Green: %d", r.CountRed(tolerance), r.CountGreen(tolerance))
}

// Win compares the indicator counts strictly. Equal counts, including 0/0,
// cannot be told apart and yield Undecided.
func (r *Region) Win(tolerance int) Outcome {
	red := r.CountRed(tolerance)
	green := r.CountGreen(tolerance)

	switch {
	case green > red:
		return PlayerWins
	case red > green:
		return OpponentWins
	default:
		return Undecided
	}
}

func (r *Region) Image() *RGB {
	return r.image
}

// SetImage replaces the owned crop, e.g. after re-cropping
func (r *Region) SetImage(img *RGB) {
	r.image = img
}

func (r *Region) Corners() (tl, tr, bl, br layout.Point) {
	return r.TL, r.TR, r.BL, r.BR
}

// ToImage converts the crop into a standard library image for encoding
func (r *Region) ToImage() *image.RGBA {
	if r.image == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	out := image.NewRGBA(image.Rect(0, 0, r.image.Width, r.image.Height))
	for y := 0; y < r.image.Height; y++ {
		for x := 0; x < r.image.Width; x++ {
			c := r.image.At(x, y)
			out.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return out
}

package source

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/ivlev/bracketscan/internal/system"
)

// Resamplers by config name. Nearest keeps indicator colours exact,
// the smoother kernels blend them at the edges.
var resamplers = map[string]draw.Interpolator{
	"nearest":    draw.NearestNeighbor,
	"bilinear":   draw.BiLinear,
	"catmullrom": draw.CatmullRom,
}

// Resampler looks up an interpolator by name; "" means nearest
func Resampler(name string) (draw.Interpolator, error) {
	if name == "" {
		name = "nearest"
	}
	r, ok := resamplers[name]
	if !ok {
		return nil, fmt.Errorf("unknown resampler: %s", name)
	}
	return r, nil
}

// Normalize brings img to the canonical resolution the layout was drawn in.
// A zero width or height keeps the source size. Alpha is dropped and colour
// channels keep their stored values, so a half-transparent indicator pixel
// still reads as the indicator colour. The frame comes from frames (nil
// allocates); hand it back with frames.Put once regions are extracted.
func Normalize(img image.Image, width, height int, interp draw.Interpolator, frames *system.FramePool) *image.RGBA {
	src := img.Bounds()
	if width <= 0 || height <= 0 {
		width, height = src.Dx(), src.Dy()
	}
	if interp == nil {
		interp = draw.NearestNeighbor
	}

	dst := frames.Get(width, height)
	if src.Dx() == width && src.Dy() == height {
		flatten(dst, img)
		return dst
	}

	if !isOpaque(img) {
		tmp := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
		flatten(tmp, img)
		img, src = tmp, tmp.Bounds()
	}
	interp.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

func isOpaque(img image.Image) bool {
	o, ok := img.(interface{ Opaque() bool })
	return ok && o.Opaque()
}

// flatten copies img into dst, which has img's size and a zero origin,
// with every pixel made fully opaque.
func flatten(dst *image.RGBA, img image.Image) {
	b := img.Bounds()
	if isOpaque(img) {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return
	}

	// NRGBA is what the PNG decoder returns for captures with alpha
	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			s := n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):]
			d := dst.Pix[y*dst.Stride:]
			for x := 0; x < b.Dx(); x++ {
				copy(d[x*4:x*4+3], s[x*4:x*4+3])
				d[x*4+3] = 0xff
			}
		}
		return
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			dst.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
}

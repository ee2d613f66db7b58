package analyzer

// DefaultTolerance is the per-channel distance accepted when matching a
// reference colour. Screen captures are rarely exact because of compression
// and anti-aliasing; 2 is enough for clean UI captures.
const DefaultTolerance = 2

// Color is an 8-bit reference colour in R, G, B order
type Color struct {
	R, G, B uint8
}

// Indicator colours drawn by the bracket UI
var (
	Red   = Color{R: 255, G: 0, B: 0}
	Green = Color{R: 0, G: 176, B: 80}
)

// RGB is a packed 8-bit image, three bytes per pixel in R, G, B order.
type RGB struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRGB allocates a zeroed (black) buffer
func NewRGB(width, height int) *RGB {
	return &RGB{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

func (m *RGB) offset(x, y int) int {
	return (y*m.Width + x) * 3
}

// At returns the colour at (x, y); coordinates are relative to the buffer.
func (m *RGB) At(x, y int) Color {
	i := m.offset(x, y)
	return Color{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2]}
}

func (m *RGB) Set(x, y int, c Color) {
	i := m.offset(x, y)
	m.Pix[i], m.Pix[i+1], m.Pix[i+2] = c.R, c.G, c.B
}

// Fill paints the half-open rectangle [x0, x1) x [y0, y1)
func (m *RGB) Fill(x0, y0, x1, y1 int, c Color) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.Set(x, y, c)
		}
	}
}

// CountMatches counts pixels whose channels are each within tolerance
// (inclusive) of target. The image and target must use the same channel order.
func CountMatches(img *RGB, target Color, tolerance int) int {
	if img == nil || tolerance < 0 {
		return 0
	}

	count := 0
	for i := 0; i+2 < len(img.Pix); i += 3 {
		if within(img.Pix[i], target.R, tolerance) &&
			within(img.Pix[i+1], target.G, tolerance) &&
			within(img.Pix[i+2], target.B, tolerance) {
			count++
		}
	}
	return count
}

func within(v, ref uint8, tolerance int) bool {
	d := int(v) - int(ref)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

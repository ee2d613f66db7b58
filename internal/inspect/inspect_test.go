package inspect

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/bracketscan/internal/analyzer"
	"github.com/ivlev/bracketscan/internal/layout"
)

func region(game string, x, y int) *analyzer.Region {
	img := analyzer.NewRGB(6, 4)
	img.Fill(0, 0, 3, 4, analyzer.Green)
	spec := layout.RectSpec{Game: game, TL: layout.Point{X: x, Y: y}}
	return analyzer.NewRegion(spec, img)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "round_007_A-B_10_20.png", FileName(7, region("A-B", 10, 20)))
	assert.Equal(t, "round_001__Jean-Luc_-Bob_0_0.png", FileName(1, region(`"Jean-Luc"-Bob`, 0, 0)))
}

func TestPNGDumper(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "debug")
	d, err := NewPNGDumper(dir)
	require.NoError(t, err)

	r := region("A-B", 1, 2)
	d.Inspect(3, r)

	f, err := os.Open(filepath.Join(dir, "round_003_A-B_1_2.png"))
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())

}

// TestPNGDumperMissingDir logs instead of failing when the directory vanished
func TestPNGDumperMissingDir(t *testing.T) {
	d := &PNGDumper{Dir: filepath.Join(t.TempDir(), "gone")}
	assert.NotPanics(t, func() { d.Inspect(1, region("A-B", 0, 0)) })
}

package inspect

import (
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ivlev/bracketscan/internal/analyzer"
)

// PNGDumper writes every inspected region to Dir so a misplaced rectangle
// can be spotted by eye.
type PNGDumper struct {
	Dir string
}

func NewPNGDumper(dir string) (*PNGDumper, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &PNGDumper{Dir: dir}, nil
}

// FileName is unique per region: paired regions share a game, so the
// top-left corner tells them apart.
func FileName(round int, r *analyzer.Region) string {
	return fmt.Sprintf("round_%03d_%s_%d_%d.png", round, sanitize(r.Game), r.TL.X, r.TL.Y)
}

// Inspect matches engine.InspectFunc. Failures are logged, never returned:
// the dump must not change the outcome of a run.
func (d *PNGDumper) Inspect(round int, r *analyzer.Region) {
	path := filepath.Join(d.Dir, FileName(round, r))
	if err := d.write(path, r); err != nil {
		log.Printf("[!] debug dump %s: %v", path, err)
	}
}

func (d *PNGDumper) write(path string, r *analyzer.Region) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, r.ToImage()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func sanitize(s string) string {
	return strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			return c
		default:
			return '_'
		}
	}, s)
}

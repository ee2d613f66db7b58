package layout

import (
	"fmt"
	"image"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Point is a pixel coordinate in the canonical capture resolution.
// It is stored in layout files as a two element sequence: [x, y].
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// UnmarshalYAML accepts both [x, y] and the JSON form of the same list.
func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	var xy []int
	if err := value.Decode(&xy); err != nil {
		return fmt.Errorf("line %d: point must be a list of two integers: %w", value.Line, err)
	}
	if len(xy) != 2 {
		return fmt.Errorf("line %d: point must have exactly 2 coordinates, got %d", value.Line, len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

func (p Point) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []int{p.X, p.Y} {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)})
	}
	return n, nil
}

// RectSpec describes one score indicator on the bracket screenshot.
// The same layout applies to every round, so specs are shared read-only.
type RectSpec struct {
	Player   string `yaml:"player"`
	Opponent string `yaml:"opponent"`
	Game     string `yaml:"game"`
	TL       Point  `yaml:"TL"`
	TR       Point  `yaml:"TR"`
	BL       Point  `yaml:"BL"`
	BR       Point  `yaml:"BR"`
}

// Rect returns the half-open crop rectangle [TL, BR).
func (s RectSpec) Rect() image.Rectangle {
	return image.Rect(s.TL.X, s.TL.Y, s.BR.X, s.BR.Y)
}

// Empty reports whether BR does not lie strictly below and to the right of TL.
// image.Rect would silently swap such corners, so callers check this first.
func (s RectSpec) Empty() bool {
	return s.BR.X <= s.TL.X || s.BR.Y <= s.TL.Y
}

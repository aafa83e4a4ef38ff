package overlay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skyhookui/skyhook/pkg/geom"
)

// PanelConfig carries the attached panel's size constraints as CSS lengths.
// Values in pixel units (or bare numbers) participate in flexible-fit
// decisions; any other unit is passed through to the renderer but treated
// as unconstrained by the selector, since the engine cannot resolve it.
type PanelConfig struct {
	MinWidth  string `json:"min_width,omitempty" toml:"min_width,omitempty" bson:"min_width,omitempty"`
	MinHeight string `json:"min_height,omitempty" toml:"min_height,omitempty" bson:"min_height,omitempty"`
	MaxWidth  string `json:"max_width,omitempty" toml:"max_width,omitempty" bson:"max_width,omitempty"`
	MaxHeight string `json:"max_height,omitempty" toml:"max_height,omitempty" bson:"max_height,omitempty"`
}

// Panel is the floating panel being positioned. The engine reads its natural
// size fresh on every pass and never mutates it directly; computed styles
// flow out through the Renderer instead.
type Panel interface {
	Size() geom.Size
	Config() PanelConfig
}

// StaticPanel is a fixed-size Panel for tests, scenario solving, and the
// demo.
type StaticPanel struct {
	Dimensions  geom.Size
	Constraints PanelConfig
}

// Size returns the panel's fixed dimensions.
func (p StaticPanel) Size() geom.Size { return p.Dimensions }

// Config returns the panel's size constraints.
func (p StaticPanel) Config() PanelConfig { return p.Constraints }

// Px formats a pixel count as a CSS length.
func Px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// PixelValue parses a CSS length into pixels. It accepts bare numbers and
// values with a px suffix; anything else reports ok=false.
func PixelValue(v string) (px float64, ok bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	v = strings.TrimSuffix(v, "px")
	px, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return px, true
}

// translate builds a CSS transform string for the given pixel offsets.
// Zero offsets produce an empty string.
func translate(offsetX, offsetY float64) string {
	var parts []string
	if offsetX != 0 {
		parts = append(parts, fmt.Sprintf("translateX(%spx)", trimFloat(offsetX)))
	}
	if offsetY != 0 {
		parts = append(parts, fmt.Sprintf("translateY(%spx)", trimFloat(offsetY)))
	}
	return strings.Join(parts, " ")
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

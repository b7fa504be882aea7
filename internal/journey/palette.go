package journey

import (
	"fmt"
)

const (
	// hueStep keeps consecutive semester columns visually distinct; 67 shares
	// no small factor with 360, so hues do not cycle back quickly.
	hueStep = 67

	backgroundSaturation = 70
	backgroundLightness  = 60
	borderLightness      = 38

	// IncompleteOpacity is applied to every color of a node whose course is
	// not completed.
	IncompleteOpacity = 0.6
)

// Color is an HSLA value kept in component form so alpha composition stays
// lossless no matter how many times opacity is applied.
type Color struct {
	Hue        int
	Saturation int
	Lightness  int
	Alpha      float64
}

// WithAlpha multiplies the color's alpha by a.
func (c Color) WithAlpha(a float64) Color {
	c.Alpha = c.Alpha * a
	return c
}

func (c Color) String() string {
	return fmt.Sprintf("hsla(%d, %d%%, %d%%, %g)", c.Hue, c.Saturation, c.Lightness, c.Alpha)
}

// ColorScheme is the {background, border, text} triple for one semester
// column.
type ColorScheme struct {
	Background Color
	Border     Color
	Text       Color
}

// Palette maps semester labels to color schemes for a single graph build.
// It is recomputed from the current ordered label list on every invocation;
// hue follows the label's position in that list, not the label itself.
type Palette struct {
	schemes     map[string]ColorScheme
	unscheduled ColorScheme
}

// AssignPalette colors the given ordered, de-duplicated list of non-sentinel
// semester labels by rotating hue, and fixes a neutral gray for the
// unscheduled sentinel outside the rotation.
func AssignPalette(labels []string) Palette {
	schemes := make(map[string]ColorScheme, len(labels))
	for i, label := range labels {
		hue := (i * hueStep) % 360
		schemes[label] = ColorScheme{
			Background: Color{Hue: hue, Saturation: backgroundSaturation, Lightness: backgroundLightness, Alpha: 1},
			Border:     Color{Hue: hue, Saturation: backgroundSaturation, Lightness: borderLightness, Alpha: 1},
			Text:       Color{Hue: 0, Saturation: 0, Lightness: 100, Alpha: 1},
		}
	}
	return Palette{
		schemes: schemes,
		unscheduled: ColorScheme{
			Background: Color{Hue: 0, Saturation: 0, Lightness: 62, Alpha: 1},
			Border:     Color{Hue: 0, Saturation: 0, Lightness: 42, Alpha: 1},
			Text:       Color{Hue: 0, Saturation: 0, Lightness: 100, Alpha: 1},
		},
	}
}

// Scheme returns the colors for label, falling back to the unscheduled
// scheme for the sentinel or any label outside the palette.
func (p Palette) Scheme(label string) ColorScheme {
	if scheme, ok := p.schemes[label]; ok {
		return scheme
	}
	return p.unscheduled
}

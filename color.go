package qrc

import "image/color"

var (
	// Transparent is the default colour of dark modules. It lets callers
	// composite the symbol over a background of their choice.
	Transparent = color.NRGBA{}
	White       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black       = color.NRGBA{A: 0xff}
)

// Palette maps modules to pixel colours.
type Palette struct {
	Dark  color.NRGBA
	Light color.NRGBA
}

// DefaultPalette renders dark modules transparent and light modules opaque white.
var DefaultPalette = Palette{Dark: Transparent, Light: White}

// AccentPalette keeps light modules opaque white and paints dark modules c.
func AccentPalette(c color.NRGBA) Palette {
	return Palette{Dark: c, Light: White}
}

// Map returns the colour for m.
func (p Palette) Map(m Module) color.NRGBA {
	if m == Dark {
		return p.Dark
	}
	return p.Light
}

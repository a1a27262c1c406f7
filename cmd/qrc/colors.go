package main

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/oza6ut0ne/qrc"
)

// parseColor accepts "transparent", an SVG colour name, #rrggbb or #rrggbbaa.
func parseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return qrc.Transparent, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("unknown colour %q", s)
	}
	b, err := hex.DecodeString(s[1:])
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	switch len(b) {
	case 3:
		return color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
	case 4:
		return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
	}
	return color.NRGBA{}, fmt.Errorf("invalid colour %q: want #rrggbb or #rrggbbaa", s)
}

func parsePalette(dark, light string) (qrc.Palette, error) {
	d, err := parseColor(dark)
	if err != nil {
		return qrc.Palette{}, fmt.Errorf("dark: %w", err)
	}
	l, err := parseColor(light)
	if err != nil {
		return qrc.Palette{}, fmt.Errorf("light: %w", err)
	}
	return qrc.Palette{Dark: d, Light: l}, nil
}

package render

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is the pen colour set offered by the toolbar.
var Palette = []Swatch{
	{Label: "Red", Value: "#F94A3E"},
	{Label: "Blue", Value: "#2680FF"},
	{Label: "Green", Value: "#24AD08"},
	{Label: "Orange", Value: "#E47900"},
}

type Swatch struct {
	Label string
	Value string
}

var named = map[string]string{
	"black":  "#000000",
	"white":  "#FFFFFF",
	"red":    "#FF0000",
	"green":  "#00FF00",
	"blue":   "#0000FF",
	"orange": "#E47900",
}

// ParseColor accepts a palette name or a #RRGGBB / #RGB value. ok is false
// for anything else.
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.TrimSpace(s)
	if hex, ok := named[strings.ToLower(s)]; ok {
		s = hex
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, true
}

// withOpacity scales the colour's alpha by opacity, clamped to [0,1].
func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	opacity = max(0, min(1, opacity))
	c.A = uint8(float64(c.A)*opacity + 0.5)
	return c
}

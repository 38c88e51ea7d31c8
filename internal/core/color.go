package core

import (
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a display color in lowercase #rrggbb form.
type Color string

// Common colors.
const (
	ColorBlack Color = "#000000"
	ColorWhite Color = "#ffffff"
	ColorRed   Color = "#ff0000"
)

// hexColor is the only accepted color syntax.
var hexColor = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// ParseColor validates s as a #rrggbb color.
// Returns false for anything else, including uppercase hex digits.
func ParseColor(s string) (Color, bool) {
	if !hexColor.MatchString(s) {
		return "", false
	}
	return Color(s), true
}

// Valid reports whether c is a well-formed #rrggbb color.
func (c Color) Valid() bool {
	return hexColor.MatchString(string(c))
}

// RGB converts the color for blending and contrast math.
// Invalid colors convert to black.
func (c Color) RGB() colorful.Color {
	rgb, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}
	}
	return rgb
}

// TextColor returns black or white, whichever reads better on top of c.
func (c Color) TextColor() Color {
	l, _, _ := c.RGB().Lab()
	if l > 0.5 {
		return ColorBlack
	}
	return ColorWhite
}

// Blend mixes c toward o by t in [0, 1] using the Lab color space.
func (c Color) Blend(o Color, t float64) Color {
	return Color(c.RGB().BlendLab(o.RGB(), ClampF(t, 0, 1)).Clamped().Hex())
}

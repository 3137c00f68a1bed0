package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Predefined colours for chrome
var (
	Black   = colorful.Color{}
	White   = colorful.Color{R: 1, G: 1, B: 1}
	Red     = mustHex("#dc2626")
	DarkRed = mustHex("#b91c1c")
	Blue    = mustHex("#2563eb")
	Gray    = mustHex("#6b7280")
	Ink     = mustHex("#1f2937")
	Paper   = mustHex("#f8fafc")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("render: bad colour literal " + s)
	}
	return c
}

// ToTcell converts to a 24-bit tcell colour; tcell downsamples on 256-colour terminals
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Style builds a tcell style from foreground and background colours
func Style(fg, bg colorful.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(ToTcell(fg)).Background(ToTcell(bg))
}

// Fade blends fg over bg by opacity in [0,1]
func Fade(fg, bg colorful.Color, opacity float64) colorful.Color {
	switch {
	case opacity <= 0:
		return bg
	case opacity >= 1:
		return fg
	}
	return bg.BlendRgb(fg, opacity).Clamped()
}

// Lighten moves c toward white by amount in [0,1]
func Lighten(c colorful.Color, amount float64) colorful.Color {
	return c.BlendRgb(White, amount).Clamped()
}

// Darken moves c toward black by amount in [0,1]
func Darken(c colorful.Color, amount float64) colorful.Color {
	return c.BlendRgb(Black, amount).Clamped()
}

// Contrast picks black or white text for a background
func Contrast(bg colorful.Color) colorful.Color {
	l, _, _ := bg.Lab()
	if l > 0.6 {
		return Ink
	}
	return White
}

package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// LineType specifies box drawing character style
type LineType uint8

const (
	LineSingle  LineType = iota // ┌─┐│└┘
	LineDouble                  // ╔═╗║╚╝
	LineRounded                 // ╭─╮│╰╯
	LineHeavy                   // ┏━┓┃┗┛
)

// boxChars contains box drawing character sets indexed by LineType
var boxChars = [...][6]rune{
	LineSingle:  {'┌', '─', '┐', '│', '└', '┘'},
	LineDouble:  {'╔', '═', '╗', '║', '╚', '╝'},
	LineRounded: {'╭', '─', '╮', '│', '╰', '╯'},
	LineHeavy:   {'┏', '━', '┓', '┃', '┗', '┛'},
}

const (
	boxTL = 0 // top-left
	boxH  = 1 // horizontal
	boxTR = 2 // top-right
	boxV  = 3 // vertical
	boxBL = 4 // bottom-left
	boxBR = 5 // bottom-right
)

// Fill paints every cell of r with a space on bg
func Fill(s Surface, r Rect, bg colorful.Color) {
	style := Style(bg, bg)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			Set(s, x, y, ' ', style)
		}
	}
}

// FillFunc paints every cell of r with the colour returned for its position
func FillFunc(s Surface, r Rect, color func(x, y int) colorful.Color) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c := color(x, y)
			Set(s, x, y, ' ', Style(c, c))
		}
	}
}

// Box draws a border around the edge of r; fg is sampled per cell, bg is the fill behind the line
func Box(s Surface, r Rect, line LineType, fg func(x, y int) colorful.Color, bg func(x, y int) colorful.Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	if int(line) >= len(boxChars) {
		line = LineSingle
	}
	chars := boxChars[line]

	cell := func(x, y int, ch rune) {
		Set(s, x, y, ch, Style(fg(x, y), bg(x, y)))
	}

	right, bottom := r.X+r.W-1, r.Y+r.H-1

	// Corners
	cell(r.X, r.Y, chars[boxTL])
	cell(right, r.Y, chars[boxTR])
	cell(r.X, bottom, chars[boxBL])
	cell(right, bottom, chars[boxBR])

	// Horizontal edges
	for x := r.X + 1; x < right; x++ {
		cell(x, r.Y, chars[boxH])
		cell(x, bottom, chars[boxH])
	}

	// Vertical edges
	for y := r.Y + 1; y < bottom; y++ {
		cell(r.X, y, chars[boxV])
		cell(right, y, chars[boxV])
	}
}

// Solid returns a constant colour function for Box and FillFunc
func Solid(c colorful.Color) func(x, y int) colorful.Color {
	return func(int, int) colorful.Color { return c }
}

// Badge draws " label " on bg and returns its width
func Badge(s Surface, x, y, maxW int, label string, fg, bg colorful.Color) int {
	return Text(s, x, y, maxW, " "+label+" ", Style(fg, bg).Bold(true))
}

// Bar draws a horizontal meter of width w filled to frac
func Bar(s Surface, x, y, w int, frac float64, fg, bg colorful.Color) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(w) + 0.5)
	style := Style(fg, bg)
	for i := 0; i < w; i++ {
		r := '░'
		if i < filled {
			r = '█'
		}
		Set(s, x+i, y, r, style)
	}
}

// Underline draws a row of horizontal line characters
func Underline(s Surface, x, y, w int, style tcell.Style) {
	for i := 0; i < w; i++ {
		Set(s, x+i, y, '─', style)
	}
}

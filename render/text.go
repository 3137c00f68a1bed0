package render

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// Text draws s at (x, y), clipped to maxW columns, and returns the columns used
func Text(s Surface, x, y, maxW int, text string, style tcell.Style) int {
	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > maxW {
			break
		}
		Set(s, x+col, y, r, style)
		if w == 2 {
			Set(s, x+col+1, y, ' ', style)
		}
		col += w
	}
	return col
}

// TextOver draws text in fg, taking each cell's background from bg
func TextOver(s Surface, x, y, maxW int, text string, fg colorful.Color, bg func(x, y int) colorful.Color, bold bool) int {
	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > maxW {
			break
		}
		for i := 0; i < w; i++ {
			ch := r
			if i > 0 {
				ch = ' '
			}
			cx := x + col + i
			Set(s, cx, y, ch, Style(fg, bg(cx, y)).Bold(bold))
		}
		col += w
	}
	return col
}

// TextCenter draws text centred in r on row y
func TextCenter(s Surface, r Rect, y int, text string, style tcell.Style) {
	text = runewidth.Truncate(text, r.W, "…")
	x := r.X + (r.W-runewidth.StringWidth(text))/2
	Text(s, x, y, r.W, text, style)
}

// TextRight draws text right-aligned in r on row y
func TextRight(s Surface, r Rect, y int, text string, style tcell.Style) {
	text = runewidth.Truncate(text, r.W, "…")
	x := r.X + r.W - runewidth.StringWidth(text)
	Text(s, x, y, r.W, text, style)
}

// Width returns display columns of text
func Width(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate shortens text to w columns with an ellipsis
func Truncate(text string, w int) string {
	return runewidth.Truncate(text, w, "…")
}

// Capitalize upper-cases the first letter of each hyphen or space separated word
func Capitalize(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if upper {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		upper = r == '-' || r == ' '
	}
	return b.String()
}

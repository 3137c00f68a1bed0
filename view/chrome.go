package view

import (
	"time"

	"github.com/lixenwraith/pokedex/render"
)

const (
	headerHeight = 1
	footerHeight = 2

	// Title is shown in the header
	Title = "Pokédex"
	// Credits is shown in the footer
	Credits = "Data provided by PokéAPI"
)

// pokeballFrames spin at spinPeriod per frame
var pokeballFrames = [...]rune{'◐', '◓', '◑', '◒'}

const spinPeriod = 150 * time.Millisecond

// DrawHeader draws the title bar
func DrawHeader(s render.Surface) {
	full := render.Full(s)
	if full.H < 1 {
		return
	}
	bar := render.Rect{W: full.W, H: headerHeight}
	render.Fill(s, bar, render.Red)
	style := render.Style(render.White, render.Red).Bold(true)
	render.Text(s, 1, 0, full.W-2, "◓ "+Title, style)
}

// DrawFooter draws the spinning ball and credits line
func DrawFooter(s render.Surface, now time.Time) {
	full := render.Full(s)
	if full.H < headerHeight+footerHeight {
		return
	}
	r := render.Rect{Y: full.H - footerHeight, W: full.W, H: footerHeight}
	render.Fill(s, r, render.Ink)

	frame := Spinner(now)
	ball := render.Style(render.Red, render.Ink)
	text := render.Style(render.Gray, render.Ink)

	line := string(frame) + " " + Credits
	render.TextCenter(s, r, r.Y, line, text)
	x := r.X + (r.W-render.Width(line))/2
	render.Set(s, x, r.Y, frame, ball)
	render.TextCenter(s, r, r.Y+1, "q quit · esc back", text)
}

// Spinner returns the ball glyph for now
func Spinner(now time.Time) rune {
	return pokeballFrames[(now.UnixMilli()/spinPeriod.Milliseconds())%int64(len(pokeballFrames))]
}

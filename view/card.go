package view

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/pokedex/pokeapi"
	"github.com/lixenwraith/pokedex/render"
	"github.com/lixenwraith/pokedex/theme"
)

// Card geometry for the listing grid and the home result
const (
	cardW   = 26
	cardH   = 7
	cardGap = 1
)

// DisplayName is the capitalised record name
func DisplayName(p *pokeapi.Pokemon) string {
	return render.Capitalize(p.Name)
}

// Number formats the national index as #025
func Number(id int) string {
	return fmt.Sprintf("#%03d", id)
}

// StatLine renders the labelled top stats, e.g. "HP 35  ATK 55  DEF 40"
func StatLine(p *pokeapi.Pokemon) string {
	parts := make([]string, 0, 3)
	for _, st := range p.TopStats() {
		label := pokeapi.StatLabel(st.Stat.Name)
		if label == "" {
			parts = append(parts, fmt.Sprint(st.BaseStat))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d", label, st.BaseStat))
	}
	return strings.Join(parts, "  ")
}

// drawBadges draws type badges left to right and returns the columns used
func drawBadges(s render.Surface, x, y, maxW int, p *pokeapi.Pokemon, pal theme.Palette, opacity float64, back colorful.Color) int {
	used := 0
	for _, name := range p.TypeNames() {
		label := strings.ToUpper(name)
		w := render.Width(label) + 2
		if used+w > maxW {
			break
		}
		bg := render.Fade(pal.Color(name), back, opacity)
		fg := render.Fade(render.White, back, opacity)
		render.Badge(s, x+used, y, maxW-used, label, fg, bg)
		used += w + 1
	}
	return used
}

// drawCard draws a compact gradient card for p in r; selected cards get a highlighted border
func drawCard(s render.Surface, r render.Rect, p *pokeapi.Pokemon, pal theme.Palette, selected bool) {
	if r.W < 8 || r.H < 4 {
		return
	}
	stops := pal.CardGradient(p.PrimaryType())
	fill := func(x, _ int) colorful.Color {
		return stops.At(float64(x-r.X) / float64(max(1, r.W-1)))
	}
	render.FillFunc(s, r, fill)

	border := render.Solid(render.Lighten(stops[0], 0.35))
	line := render.LineRounded
	if selected {
		border = render.Solid(render.White)
		line = render.LineHeavy
	}
	render.Box(s, r, line, border, fill)

	inner := r.Inset(1)
	ink := render.Contrast(stops.At(0.5))

	// Name and number on the first line
	num := Number(p.ID)
	nameW := inner.W - render.Width(num) - 1
	render.TextOver(s, inner.X, inner.Y, nameW, render.Truncate(DisplayName(p), nameW), ink, fill, true)
	render.TextOver(s, inner.X+inner.W-render.Width(num), inner.Y, render.Width(num), num, ink, fill, false)

	if inner.H > 2 {
		drawBadges(s, inner.X, inner.Y+2, inner.W, p, pal, 1, fill(inner.X, 0))
	}
	if inner.H > 4 {
		render.TextOver(s, inner.X, inner.Y+4, inner.W, StatLine(p), ink, fill, false)
	}
}

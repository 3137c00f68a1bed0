package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/pokedex/pokeapi"
	"github.com/lixenwraith/pokedex/theme"
)

func TestRenderCard(t *testing.T) {
	out := RenderCard(mon(25, "pikachu", "electric"), theme.Default{})

	assert.Contains(t, out, "Pikachu")
	assert.Contains(t, out, "#025")
	assert.Contains(t, out, "ELECTRIC")
	assert.Contains(t, out, "Height 0.4 m")
	assert.Contains(t, out, "HP 35  ATK 55  DEF 40")
	assert.Contains(t, out, "╭")
}

func TestRenderCard_TypeOrder(t *testing.T) {
	out := RenderCard(mon(6, "charizard", "fire", "flying"), theme.Default{})
	assert.Less(t, strings.Index(out, "FIRE"), strings.Index(out, "FLYING"))
}

func TestRenderPage(t *testing.T) {
	page := &pokeapi.Page{Limit: 30, Offset: 30, Count: 70}
	for id := 31; id <= 34; id++ {
		page.Entries = append(page.Entries, mon(id, "mon", "normal"))
	}
	out := RenderPage(page, 1, 2, theme.Default{})

	assert.Contains(t, out, "page 2")
	assert.Contains(t, out, "of 3 (70 total)")
	assert.Contains(t, out, "#031")
	assert.Contains(t, out, "#034")
}

func TestRenderPage_Empty(t *testing.T) {
	out := RenderPage(&pokeapi.Page{Limit: 30, Offset: 900, Count: 70}, 30, 3, theme.Default{})
	assert.Contains(t, out, "No more Pokémon")
}

func TestStatLine_UnlabelledStats(t *testing.T) {
	p := &pokeapi.Pokemon{Stats: []pokeapi.Stat{
		{BaseStat: 45, Stat: pokeapi.NamedResource{Name: "hp"}},
		{BaseStat: 65, Stat: pokeapi.NamedResource{Name: "special-attack"}},
	}}
	assert.Equal(t, "HP 45  65", StatLine(p))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "#025", Number(25))
	assert.Equal(t, "#1010", Number(1010))
}

func TestChrome(t *testing.T) {
	s := newScreen(60, 10)
	DrawHeader(s)
	DrawFooter(s, epoch)
	assert.Contains(t, s.text(), Title)
	assert.Contains(t, s.text(), Credits)
}

func TestSpinnerAdvances(t *testing.T) {
	seen := map[rune]bool{}
	for i := 0; i < len(pokeballFrames); i++ {
		seen[Spinner(epoch.Add(time.Duration(i)*spinPeriod))] = true
	}
	assert.Len(t, seen, len(pokeballFrames))
}

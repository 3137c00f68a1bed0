package view

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pokedex/pokeapi"
	"github.com/lixenwraith/pokedex/render"
	"github.com/lixenwraith/pokedex/router"
	"github.com/lixenwraith/pokedex/sched"
	"github.com/lixenwraith/pokedex/widget"
)

// searchStatus is the home screen's result state
type searchStatus uint8

const (
	searchIdle searchStatus = iota
	searchLoading
	searchFound
	searchNotFound
)

const (
	searchLimit       = 32
	searchPlaceholder = "name or number, e.g. pikachu or 25"
	// NotFoundText is shown for a failed lookup
	NotFoundText = "Pokémon not found"
	// LoadingText is shown while the detail record is fetched
	LoadingText = "Loading Pokémon..."
)

// Home is the search screen
type Home struct {
	d     Deps
	field *widget.TextField

	req    request
	status searchStatus
	query  string // Lower-cased query of the last search
	result *pokeapi.Pokemon

	cardRect render.Rect
	mounted  bool
}

func newHome(d Deps) *Home {
	return &Home{d: d, field: widget.NewTextField("", searchLimit)}
}

func (h *Home) Mount() {
	h.mounted = true
}

func (h *Home) Unmount() {
	h.mounted = false
	h.req.stop()
}

// Query returns the field contents
func (h *Home) Query() string {
	return h.field.Value()
}

// Result returns the last found record, nil if none
func (h *Home) Result() *pokeapi.Pokemon {
	return h.result
}

func (h *Home) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 && h.status == searchFound {
			x, y := ev.Position()
			if h.cardRect.Contains(x, y) {
				h.d.Nav.Navigate(router.DetailPath(h.result.Name))
				return true
			}
		}
	}
	return false
}

func (h *Home) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		q := strings.ToLower(strings.TrimSpace(h.field.Value()))
		if q == "" {
			return true
		}
		// A second Enter on an unchanged query opens the shown card
		if h.status == searchFound && q == h.query {
			h.d.Nav.Navigate(router.DetailPath(h.result.Name))
			return true
		}
		h.search(q)
		return true
	case tcell.KeyTab, tcell.KeyCtrlL:
		h.d.Nav.Navigate(router.ListingPath(0))
		return true
	}
	// Backspace on an empty field is not consumed, so it falls through to back navigation
	return h.field.HandleKey(ev)
}

// search issues a lookup, superseding any unresolved one
func (h *Home) search(q string) {
	if !h.mounted {
		return
	}
	tok, ctx := h.req.begin()
	h.query = q
	h.status = searchLoading

	h.d.Log.Debug().Str("query", q).Msg("Searching")
	provider, post := h.d.Provider, h.d.Scheduler.Post
	h.d.spawn(func() {
		p, err := provider.FetchPokemon(ctx, q)
		post(func() { h.resolve(tok, p, err) })
	})
}

func (h *Home) resolve(tok sched.Token, p *pokeapi.Pokemon, err error) {
	if !h.mounted || !h.req.current(tok) {
		return
	}
	h.req.done()
	if err != nil {
		h.d.Log.Info().Err(err).Str("query", h.query).Msg("Search failed")
		h.status = searchNotFound
		h.result = nil
		return
	}
	h.status = searchFound
	h.result = p
}

func (h *Home) Draw(s render.Surface, now time.Time) {
	content := Content(s)
	render.Fill(s, content, render.Paper)
	if content.H < 4 {
		return
	}

	col := content.CenterIn(min(content.W-2, 48), content.H)
	y := col.Y + 1
	render.TextCenter(s, col, y, "Search for a Pokémon", render.Style(render.Ink, render.Paper).Bold(true))
	y += 2

	box := render.Rect{X: col.X, Y: y, W: col.W, H: 3}
	render.Box(s, box, render.LineRounded, render.Solid(render.Red), render.Solid(render.White))
	field := box.Inset(1)
	h.field.Draw(s, field, searchPlaceholder,
		render.Style(render.Ink, render.White), render.Style(render.Gray, render.White), true)
	y += 4

	render.TextCenter(s, col, y, "enter search · tab browse all", render.Style(render.Gray, render.Paper))
	y += 2

	h.cardRect = render.Rect{}
	switch h.status {
	case searchLoading:
		msg := string(Spinner(now)) + " Searching..."
		render.TextCenter(s, col, y, msg, render.Style(render.Gray, render.Paper))
	case searchNotFound:
		render.TextCenter(s, col, y, NotFoundText, render.Style(render.DarkRed, render.Paper).Bold(true))
	case searchFound:
		h.cardRect = render.Rect{X: col.X + (col.W-cardW)/2, Y: y, W: cardW, H: cardH}
		drawCard(s, h.cardRect, h.result, h.d.Palette, false)
		render.TextCenter(s, col, y+cardH+1, "enter again for details", render.Style(render.Gray, render.Paper))
	}
}

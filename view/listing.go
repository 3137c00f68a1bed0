package view

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pokedex/pokeapi"
	"github.com/lixenwraith/pokedex/render"
	"github.com/lixenwraith/pokedex/router"
	"github.com/lixenwraith/pokedex/sched"
)

type pageStatus uint8

const (
	pageLoading pageStatus = iota
	pageReady
	pageFailed
)

// Listing is the paginated card grid
type Listing struct {
	d Deps

	req    request
	page   int
	status pageStatus
	data   *pokeapi.Page
	err    error

	selected int
	scroll   int // First visible grid row
	cols     int
	cards    []render.Rect // Screen rects of drawn cards, indexed by entry

	mounted bool
}

func newListing(route router.Route, d Deps) *Listing {
	return &Listing{d: d, page: route.Page, cols: 1}
}

func (l *Listing) Mount() {
	l.mounted = true
	l.load()
}

func (l *Listing) Unmount() {
	l.mounted = false
	l.req.stop()
}

// Retarget switches page in place
func (l *Listing) Retarget(route router.Route) bool {
	if route.Kind != router.Listing {
		return false
	}
	if route.Page != l.page || l.status == pageFailed {
		l.page = route.Page
		l.load()
	}
	return true
}

// Page returns the displayed page number
func (l *Listing) Page() int {
	return l.page
}

// Entries returns the loaded records, nil while loading
func (l *Listing) Entries() []*pokeapi.Pokemon {
	if l.status != pageReady || l.data == nil {
		return nil
	}
	return l.data.Entries
}

func (l *Listing) load() {
	if !l.mounted {
		return
	}
	tok, ctx := l.req.begin()
	l.status = pageLoading
	l.selected, l.scroll = 0, 0

	limit, offset := l.d.PageSize, l.page*l.d.PageSize
	l.d.Log.Debug().Int("page", l.page).Int("offset", offset).Msg("Loading page")

	provider, post := l.d.Provider, l.d.Scheduler.Post
	l.d.spawn(func() {
		p, err := provider.FetchPage(ctx, limit, offset)
		post(func() { l.resolve(tok, p, err) })
	})
}

func (l *Listing) resolve(tok sched.Token, p *pokeapi.Page, err error) {
	if !l.mounted || !l.req.current(tok) {
		return
	}
	l.req.done()
	if err != nil {
		l.d.Log.Warn().Err(err).Int("page", l.page).Msg("Page load failed")
		l.status, l.err, l.data = pageFailed, err, nil
		return
	}
	l.status, l.err, l.data = pageReady, nil, p
}

func (l *Listing) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return l.handleKey(ev)
	case *tcell.EventMouse:
		return l.handleMouse(ev)
	}
	return false
}

func (l *Listing) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRight, tcell.KeyPgDn:
		return l.next()
	case tcell.KeyLeft, tcell.KeyPgUp:
		return l.prev()
	case tcell.KeyUp:
		l.move(-l.cols)
		return true
	case tcell.KeyDown:
		l.move(l.cols)
		return true
	case tcell.KeyEnter:
		return l.open(l.selected)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'n':
			return l.next()
		case 'p':
			return l.prev()
		case 'k':
			l.move(-l.cols)
			return true
		case 'j':
			l.move(l.cols)
			return true
		case 'h':
			l.move(-1)
			return true
		case 'l':
			l.move(1)
			return true
		case '/':
			l.d.Nav.Navigate(router.HomeRoute.Path)
			return true
		}
	}
	return false
}

func (l *Listing) handleMouse(ev *tcell.EventMouse) bool {
	btn := ev.Buttons()
	switch {
	case btn&tcell.WheelUp != 0:
		l.move(-l.cols)
		return true
	case btn&tcell.WheelDown != 0:
		l.move(l.cols)
		return true
	case btn&tcell.Button1 != 0:
		x, y := ev.Position()
		for i, r := range l.cards {
			if r.Contains(x, y) {
				l.selected = i
				return l.open(i)
			}
		}
	}
	return false
}

func (l *Listing) next() bool {
	if l.status == pageReady && l.data != nil && !l.data.HasNext() {
		return true
	}
	l.d.Nav.Navigate(router.ListingPath(l.page + 1))
	return true
}

func (l *Listing) prev() bool {
	if l.page > 0 {
		l.d.Nav.Navigate(router.ListingPath(l.page - 1))
	}
	return true
}

func (l *Listing) move(delta int) {
	n := len(l.Entries())
	if n == 0 {
		return
	}
	l.selected = max(0, min(n-1, l.selected+delta))
}

func (l *Listing) open(i int) bool {
	entries := l.Entries()
	if i < 0 || i >= len(entries) {
		return false
	}
	l.d.Nav.Navigate(router.DetailPath(entries[i].Name))
	return true
}

func (l *Listing) Draw(s render.Surface, now time.Time) {
	content := Content(s)
	render.Fill(s, content, render.Paper)
	if content.H < 3 {
		return
	}

	title := fmt.Sprintf("Page %d", l.page+1)
	if l.status == pageReady && l.data != nil && l.data.Count > 0 {
		pages := (l.data.Count + l.d.PageSize - 1) / l.d.PageSize
		title = fmt.Sprintf("Page %d of %d", l.page+1, pages)
	}
	render.Text(s, content.X+1, content.Y, content.W-2, title, render.Style(render.Ink, render.Paper).Bold(true))
	render.TextRight(s, render.Rect{X: content.X, W: content.W - 1}, content.Y,
		"← p  n →  ·  enter open  ·  / search", render.Style(render.Gray, render.Paper))

	grid := render.Rect{X: content.X + 1, Y: content.Y + 2, W: content.W - 2, H: content.H - 2}
	l.cards = l.cards[:0]

	switch l.status {
	case pageLoading:
		render.TextCenter(s, grid, grid.Y+grid.H/2, string(Spinner(now))+" Loading page...", render.Style(render.Gray, render.Paper))
		return
	case pageFailed:
		render.TextCenter(s, grid, grid.Y+grid.H/2, "Could not load this page", render.Style(render.DarkRed, render.Paper).Bold(true))
		return
	}

	entries := l.data.Entries
	if len(entries) == 0 {
		render.TextCenter(s, grid, grid.Y+grid.H/2, "No more Pokémon", render.Style(render.Gray, render.Paper))
		return
	}

	l.cols = max(1, (grid.W+cardGap)/(cardW+cardGap))
	rows := max(1, (grid.H+cardGap)/(cardH+cardGap))

	// Keep the selected row on screen
	selRow := l.selected / l.cols
	if selRow < l.scroll {
		l.scroll = selRow
	}
	if selRow >= l.scroll+rows {
		l.scroll = selRow - rows + 1
	}

	for i, p := range entries {
		row, col := i/l.cols-l.scroll, i%l.cols
		r := render.Rect{
			X: grid.X + col*(cardW+cardGap),
			Y: grid.Y + row*(cardH+cardGap),
			W: cardW,
			H: cardH,
		}
		if row < 0 || row >= rows {
			r = render.Rect{}
		} else {
			drawCard(s, r, p, l.d.Palette, i == l.selected)
		}
		l.cards = append(l.cards, r)
	}
}

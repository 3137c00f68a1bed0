package view

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/pokedex/parallax"
	"github.com/lixenwraith/pokedex/pokeapi"
	"github.com/lixenwraith/pokedex/sched"
	"github.com/lixenwraith/pokedex/theme"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func mon(id int, name string, types ...string) *pokeapi.Pokemon {
	p := &pokeapi.Pokemon{ID: id, Name: name, Height: 4, Weight: 60}
	for i, t := range types {
		p.Types = append(p.Types, pokeapi.TypeSlot{Slot: i + 1, Type: pokeapi.NamedResource{Name: t}})
	}
	p.Stats = []pokeapi.Stat{
		{BaseStat: 35, Stat: pokeapi.NamedResource{Name: "hp"}},
		{BaseStat: 55, Stat: pokeapi.NamedResource{Name: "attack"}},
		{BaseStat: 40, Stat: pokeapi.NamedResource{Name: "defense"}},
		{BaseStat: 90, Stat: pokeapi.NamedResource{Name: "speed"}},
	}
	p.Sprites.Other.OfficialArtwork.FrontDefault = "official/" + name
	p.Sprites.FrontDefault = "front/" + name
	return p
}

// fakeProvider answers from fixed tables and records artwork requests
type fakeProvider struct {
	mu       sync.Mutex
	mons     map[string]*pokeapi.Pokemon
	total    int
	art      map[string]image.Image
	artCalls []string
	pageErr  error
}

func newFakeProvider() *fakeProvider {
	f := &fakeProvider{mons: map[string]*pokeapi.Pokemon{}, art: map[string]image.Image{}, total: 70}
	for _, p := range []*pokeapi.Pokemon{
		mon(1, "bulbasaur", "grass", "poison"),
		mon(4, "charmander", "fire"),
		mon(6, "charizard", "fire", "flying"),
		mon(25, "pikachu", "electric"),
		mon(26, "raichu", "electric"),
	} {
		f.add(p)
	}
	return f
}

func (f *fakeProvider) add(p *pokeapi.Pokemon) {
	f.mons[p.Name] = p
	f.mons[strconv.Itoa(p.ID)] = p
}

func (f *fakeProvider) FetchPokemon(_ context.Context, key string) (*pokeapi.Pokemon, error) {
	if p, ok := f.mons[pokeapi.NormalizeKey(key)]; ok {
		return p, nil
	}
	return nil, pokeapi.ErrNotFound
}

func (f *fakeProvider) FetchPage(_ context.Context, limit, offset int) (*pokeapi.Page, error) {
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	page := &pokeapi.Page{Limit: limit, Offset: offset, Count: f.total}
	for id := offset + 1; id <= offset+limit && id <= f.total; id++ {
		page.Entries = append(page.Entries, mon(id, "mon"+strconv.Itoa(id), "normal"))
	}
	return page, nil
}

func (f *fakeProvider) FetchArtwork(_ context.Context, url string) (image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.artCalls = append(f.artCalls, url)
	if img, ok := f.art[url]; ok {
		return img, nil
	}
	return nil, errors.New("no artwork")
}

// deferredSpawn captures fetch goroutines so a test decides when and in what order they resolve
type deferredSpawn struct {
	jobs []func()
}

func (d *deferredSpawn) spawn(fn func()) { d.jobs = append(d.jobs, fn) }

// runAll resolves every captured job in capture order, including ones captured meanwhile
func (d *deferredSpawn) runAll(m *sched.Manual) {
	for len(d.jobs) > 0 {
		job := d.jobs[0]
		d.jobs = d.jobs[1:]
		job()
		m.Flush()
	}
}

// take removes the i-th pending job without running it
func (d *deferredSpawn) take(i int) func() {
	job := d.jobs[i]
	d.jobs = append(d.jobs[:i], d.jobs[i+1:]...)
	return job
}

type fakeNav struct {
	paths []string
	backs int
}

func (n *fakeNav) Navigate(path string) { n.paths = append(n.paths, path) }
func (n *fakeNav) Back()                { n.backs++ }

func (n *fakeNav) last() string {
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

type countingAudio struct{ chimes int }

func (c *countingAudio) Chime() { c.chimes++ }
func (c *countingAudio) Close() {}

type harness struct {
	deps     Deps
	sched    *sched.Manual
	spawner  *deferredSpawn
	provider *fakeProvider
	nav      *fakeNav
	audio    *countingAudio
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		sched:    sched.NewManual(epoch),
		spawner:  &deferredSpawn{},
		provider: newFakeProvider(),
		nav:      &fakeNav{},
		audio:    &countingAudio{},
	}
	h.deps = Deps{
		Provider:  h.provider,
		Scheduler: h.sched,
		Palette:   theme.Default{},
		Nav:       h.nav,
		Parallax:  parallax.DefaultConfig(),
		PageSize:  30,
		Spawn:     h.spawner.spawn,
		Audio:     h.audio,
		Log:       zerolog.Nop(),
	}
	return h
}

// settle resolves all fetches and lets every timer finish
func (h *harness) settle() {
	for i := 0; i < 4; i++ {
		h.spawner.runAll(h.sched)
		h.sched.Advance(time.Second)
	}
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func keyOf(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(v View, s string) {
	for _, r := range s {
		v.HandleEvent(keyRune(r))
	}
}

// screen is a fake render.Surface that keeps runes for text assertions
type screen struct {
	w, h  int
	cells [][]rune
}

func newScreen(w, h int) *screen {
	s := &screen{w: w, h: h, cells: make([][]rune, h)}
	for y := range s.cells {
		s.cells[y] = []rune(strings.Repeat(" ", w))
	}
	return s
}

func (s *screen) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	s.cells[y][x] = r
}

func (s *screen) Size() (int, int) { return s.w, s.h }

func (s *screen) text() string {
	lines := make([]string, len(s.cells))
	for i, row := range s.cells {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

func solidImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	return img
}

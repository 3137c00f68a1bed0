// Package view implements the home, listing and detail screens and the chrome around them.
//
// Every method runs on the scheduler goroutine. Fetches are spawned and their
// results posted back; each screen tags requests with a sched.Sequence token
// and drops any result that is no longer the latest.
package view

import (
	"context"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/pokedex/audio"
	"github.com/lixenwraith/pokedex/parallax"
	"github.com/lixenwraith/pokedex/pokeapi"
	"github.com/lixenwraith/pokedex/render"
	"github.com/lixenwraith/pokedex/router"
	"github.com/lixenwraith/pokedex/sched"
	"github.com/lixenwraith/pokedex/theme"
)

// View is one mounted screen
type View interface {
	Mount()
	Unmount()
	// HandleEvent returns false when the event was not consumed
	HandleEvent(ev tcell.Event) bool
	Draw(s render.Surface, now time.Time)
}

// Retargeter is implemented by views that can switch to another route of the same kind in place
type Retargeter interface {
	Retarget(route router.Route) bool
}

// Provider is the remote data source
type Provider interface {
	FetchPokemon(ctx context.Context, nameOrID string) (*pokeapi.Pokemon, error)
	FetchPage(ctx context.Context, limit, offset int) (*pokeapi.Page, error)
	FetchArtwork(ctx context.Context, url string) (image.Image, error)
}

// Navigator changes route; calls are deferred until the current event has been handled
type Navigator interface {
	Navigate(path string)
	Back()
}

// Deps are the collaborators shared by every view
type Deps struct {
	Provider  Provider
	Scheduler sched.Scheduler
	Palette   theme.Palette
	Nav       Navigator
	Parallax  parallax.Config
	PageSize  int
	Spawn     func(func()) // Runs fetches; defaults to the go statement
	Audio     audio.Player
	Log       zerolog.Logger
}

func (d Deps) spawn(fn func()) {
	if d.Spawn != nil {
		d.Spawn(fn)
		return
	}
	go fn()
}

func (d Deps) chime() {
	if d.Audio != nil {
		d.Audio.Chime()
	}
}

// New creates the view for route
func New(route router.Route, d Deps) View {
	if d.Palette == nil {
		d.Palette = theme.Default{}
	}
	if d.PageSize <= 0 {
		d.PageSize = 30
	}
	switch route.Kind {
	case router.Listing:
		return newListing(route, d)
	case router.Detail:
		return newDetail(route, d)
	default:
		return newHome(d)
	}
}

// Content returns the area between header and footer
func Content(s render.Surface) render.Rect {
	full := render.Full(s)
	r := render.Rect{X: 0, Y: headerHeight, W: full.W, H: full.H - headerHeight - footerHeight}
	if r.H < 0 {
		r.H = 0
	}
	return r
}

// request tracks the latest in-flight fetch of one kind
type request struct {
	seq    sched.Sequence
	cancel context.CancelFunc
}

// begin supersedes any earlier request and returns the new token and context
func (r *request) begin() (sched.Token, context.Context) {
	r.stop()
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	return r.seq.Next(), ctx
}

// done releases the context of a resolved request
func (r *request) done() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// stop invalidates and cancels the in-flight request
func (r *request) stop() {
	r.seq.Invalidate()
	r.done()
}

func (r *request) current(tok sched.Token) bool {
	return r.seq.IsCurrent(tok)
}

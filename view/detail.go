package view

import (
	"image"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/pokedex/parallax"
	"github.com/lixenwraith/pokedex/pokeapi"
	"github.com/lixenwraith/pokedex/render"
	"github.com/lixenwraith/pokedex/router"
	"github.com/lixenwraith/pokedex/sched"
)

const (
	// backgroundPeriod is one full sweep of the animated type gradient
	backgroundPeriod = 8 * time.Second
	// artworkMaxSide bounds the pre-scaled sprite source
	artworkMaxSide = 256

	detailMaxW = 64
	detailMaxH = 34
	infoRows   = 8
)

// Detail shows one Pokémon with parallax artwork and a cross-fade between records
type Detail struct {
	d    Deps
	ctrl *parallax.Controller

	key   string
	state parallax.State
	xf    parallax.Transform

	artReq  request
	art     *render.Sprite
	artFor  int // Record ID the sprite belongs to
	opacity float64
	drawnAt time.Time

	card    render.Rect
	hovered bool
}

func newDetail(route router.Route, d Deps) *Detail {
	v := &Detail{d: d, key: route.Key, opacity: 1}
	v.ctrl = parallax.NewController(d.Parallax, parallax.Options{
		Scheduler: d.Scheduler,
		Fetcher:   d.Provider,
		Sink:      parallax.SinkFunc(func(t parallax.Transform) { v.xf = t }),
		OnChange:  v.onChange,
		Spawn:     d.Spawn,
		Logger:    d.Log,
	})
	v.state = v.ctrl.State()
	v.xf = v.ctrl.Transform()
	return v
}

// Controller exposes the parallax controller
func (v *Detail) Controller() *parallax.Controller {
	return v.ctrl
}

// Sprite returns the artwork currently drawn, nil before it loads
func (v *Detail) Sprite() *render.Sprite {
	return v.art
}

func (v *Detail) Mount() {
	v.ctrl.Mount()
	v.ctrl.Load(v.key)
}

func (v *Detail) Unmount() {
	v.ctrl.Unmount()
	v.artReq.stop()
}

// Retarget loads another record into the mounted controller, cross-fading to it
func (v *Detail) Retarget(route router.Route) bool {
	if route.Kind != router.Detail {
		return false
	}
	if route.Key != v.key {
		v.key = route.Key
		v.ctrl.Load(v.key)
	}
	return true
}

// onChange mirrors controller state and starts the artwork fetch on reveal
func (v *Detail) onChange(st parallax.State) {
	v.state = st
	if st.Phase == parallax.PhaseFadingIn && st.Entity != nil {
		if v.artFor != st.Entity.ID {
			v.art = nil
		}
		v.loadArtwork(st.Entity)
		v.d.chime()
	}
}

// loadArtwork walks the fallback chain on a worker and installs the first image that decodes
func (v *Detail) loadArtwork(p *pokeapi.Pokemon) {
	tok, ctx := v.artReq.begin()
	urls := p.ArtworkCandidates()
	id, name := p.ID, p.Name
	provider, post, log := v.d.Provider, v.d.Scheduler.Post, v.d.Log

	v.d.spawn(func() {
		var img image.Image
		for _, u := range urls {
			got, err := provider.FetchArtwork(ctx, u)
			if err == nil {
				img = got
				break
			}
			if ctx.Err() != nil {
				return
			}
			log.Debug().Err(err).Str("name", name).Str("url", u).Msg("Artwork unavailable")
		}
		post(func() { v.installArtwork(tok, id, img) })
	})
}

func (v *Detail) installArtwork(tok sched.Token, id int, img image.Image) {
	if !v.ctrl.Mounted() || !v.artReq.current(tok) {
		return
	}
	v.artReq.done()
	sp := render.Prepare(img, artworkMaxSide)
	if sp == nil {
		sp = render.Placeholder(render.White)
	}
	v.art, v.artFor = sp, id
	v.ctrl.Bounce()
}

// --- Input ---

func (v *Detail) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		if v.card.Contains(x, y) {
			v.hovered = true
			v.ctrl.PointerMove(v.bounds(), parallax.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
		} else if v.hovered {
			v.hovered = false
			v.ctrl.PointerLeave()
		}
		return true
	case *tcell.EventFocus:
		if !ev.Focused {
			v.hovered = false
			v.ctrl.PointerLeave()
		}
		return true
	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return false
}

func (v *Detail) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		return v.step(-1)
	case tcell.KeyRight:
		return v.step(1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h', 'p':
			return v.step(-1)
		case 'l', 'n':
			return v.step(1)
		case 'r':
			v.ctrl.Load(v.key)
			return true
		case '/':
			v.d.Nav.Navigate(router.HomeRoute.Path)
			return true
		}
	}
	return false
}

// step navigates to the neighbouring national index
func (v *Detail) step(delta int) bool {
	e := v.state.Entity
	if e == nil {
		return true
	}
	next := e.ID + delta
	if next < 1 {
		return true
	}
	v.d.Nav.Navigate(router.DetailPath(strconv.Itoa(next)))
	return true
}

// bounds is the pointer reference container in cell coordinates
func (v *Detail) bounds() parallax.Bounds {
	return parallax.Bounds{X: float64(v.card.X), Y: float64(v.card.Y), W: float64(v.card.W), H: float64(v.card.H)}
}

// --- Drawing ---

// easeOpacity moves opacity toward the visible flag at a rate of one full fade per FadeInDuration
func (v *Detail) easeOpacity(now time.Time) {
	target := 0.0
	if v.state.Visible {
		target = 1
	}
	if v.drawnAt.IsZero() {
		v.drawnAt = now
	}
	dt := now.Sub(v.drawnAt)
	v.drawnAt = now

	dur := v.d.Parallax.FadeInDuration
	if dur <= 0 {
		v.opacity = target
		return
	}
	step := float64(dt) / float64(dur)
	if v.opacity < target {
		v.opacity = math.Min(target, v.opacity+step)
	} else {
		v.opacity = math.Max(target, v.opacity-step)
	}
}

// Opacity returns the current content opacity
func (v *Detail) Opacity() float64 {
	return v.opacity
}

// backdrop samples the shifting type gradient
func (v *Detail) backdrop(typeName string, area render.Rect, now time.Time) func(x, y int) colorful.Color {
	stops := v.d.Palette.Gradient(typeName)
	phase := float64(now.UnixMilli()%backgroundPeriod.Milliseconds()) / float64(backgroundPeriod.Milliseconds())
	span := float64(max(1, area.W+area.H))
	return func(x, y int) colorful.Color {
		t := float64(x-area.X+y-area.Y)/span + phase
		t -= math.Floor(t)
		// Triangle wave keeps the sweep seamless at the wrap
		return stops.At(1 - math.Abs(2*t-1))
	}
}

func (v *Detail) Draw(s render.Surface, now time.Time) {
	content := Content(s)
	v.easeOpacity(now)

	entity := v.state.Entity
	typeName := pokeapi.DefaultType
	if entity != nil {
		typeName = entity.PrimaryType()
	}
	bg := v.backdrop(typeName, content, now)
	render.FillFunc(s, content, bg)
	if content.W < 12 || content.H < 6 {
		return
	}

	v.card = content.CenterIn(min(content.W-4, detailMaxW), min(content.H-2, detailMaxH))
	panel := func(x, y int) colorful.Color { return render.Darken(bg(x, y), 0.55) }
	render.FillFunc(s, v.card, panel)

	neon := v.d.Palette.Neon(typeName)
	glow := 0.5 + 0.5*math.Sin(2*math.Pi*float64(now.UnixMilli()%2000)/2000)
	render.Box(s, v.card, render.LineRounded, render.Solid(render.Lighten(neon, 0.25*glow)), panel)

	inner := v.card.Inset(2)
	if inner.Empty() {
		return
	}

	switch {
	case v.state.Phase == parallax.PhaseNotFound:
		render.TextCenter(s, inner, inner.Y+inner.H/2-1, NotFoundText, render.Style(render.Red, panel(inner.X, inner.Y)).Bold(true))
		render.TextCenter(s, inner, inner.Y+inner.H/2+1, "esc to go back", render.Style(render.Gray, panel(inner.X, inner.Y)))
		return
	case entity == nil:
		render.TextCenter(s, inner, inner.Y+inner.H/2, LoadingText, render.Style(render.White, panel(inner.X, inner.Y)))
		return
	}

	artH := inner.H - infoRows
	if artH >= 2 {
		art := render.Rect{X: inner.X, Y: inner.Y, W: inner.W, H: artH}
		sprite := v.art
		if v.artFor != entity.ID {
			sprite = nil
		}
		if sprite != nil {
			render.DrawSprite(s, art, sprite, render.SpriteTransform{
				TX: v.xf.TX, TY: v.xf.TY, Scale: v.xf.Scale, Rotation: v.xf.Rotation,
			}, v.opacity, panel)
		} else {
			render.TextCenter(s, art, art.Y+art.H/2, string(Spinner(now)), render.Style(render.Fade(render.White, panel(art.X, art.Y), v.opacity), panel(art.X, art.Y)))
		}
	}
	v.drawInfo(s, render.Rect{X: inner.X, Y: inner.Y + max(0, artH), W: inner.W, H: min(inner.H, infoRows)}, entity, panel)
}

// drawInfo renders name, number, badges, measurements and stats, faded by the current opacity
func (v *Detail) drawInfo(s render.Surface, r render.Rect, p *pokeapi.Pokemon, panel func(x, y int) colorful.Color) {
	back := panel(r.X, r.Y)
	fade := func(c colorful.Color) colorful.Color { return render.Fade(c, back, v.opacity) }
	y := r.Y + 1

	title := DisplayName(p) + "  " + Number(p.ID)
	render.TextCenter(s, r, y, title, render.Style(fade(render.White), back).Bold(true))
	y += 2

	badgesW := 0
	for _, n := range p.TypeNames() {
		badgesW += render.Width(n) + 3
	}
	drawBadges(s, r.X+max(0, (r.W-badgesW+1)/2), y, r.W, p, v.d.Palette, v.opacity, back)
	y += 2

	measures := "Height " + p.HeightText() + " m   Weight " + p.WeightText() + " kg"
	render.TextCenter(s, r, y, measures, render.Style(fade(render.Gray), back))
	y++

	render.TextCenter(s, r, y, strings.TrimSpace(StatLine(p)), render.Style(fade(v.d.Palette.Neon(p.PrimaryType())), back))
}

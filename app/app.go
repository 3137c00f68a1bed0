// Package app owns the terminal screen and the single UI goroutine, routes
// between views and redraws on every frame.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/pokedex/router"
	"github.com/lixenwraith/pokedex/sched"
	"github.com/lixenwraith/pokedex/view"
)

// DefaultFrameInterval is used when Config.FrameInterval is unset
const DefaultFrameInterval = time.Second / 60

// Config wires an App
type Config struct {
	Screen        tcell.Screen
	Router        *router.Router
	Deps          view.Deps // Scheduler and Nav are filled in by the app
	FrameInterval time.Duration
	Clock         sched.Clock
	Log           zerolog.Logger
}

// App runs the event loop and holds the mounted view
type App struct {
	screen tcell.Screen
	loop   *sched.Loop
	sched  sched.Scheduler
	router *router.Router
	deps   view.Deps
	frame  time.Duration
	clock  sched.Clock
	log    zerolog.Logger

	current view.View
	route   router.Route
	redraw  sched.Task
	stop    func()
	stopped bool
}

// New creates an app that drains its work on loop
func New(cfg Config, loop *sched.Loop) *App {
	a := newApp(cfg, loop)
	a.loop = loop
	a.stop = loop.Stop
	return a
}

func newApp(cfg Config, s sched.Scheduler) *App {
	if cfg.Router == nil {
		cfg.Router = router.New("/", 0)
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = sched.SystemClock{}
	}
	a := &App{
		screen: cfg.Screen,
		sched:  s,
		router: cfg.Router,
		frame:  cfg.FrameInterval,
		clock:  cfg.Clock,
		log:    cfg.Log,
	}
	a.deps = cfg.Deps
	a.deps.Scheduler = s
	a.deps.Nav = a
	return a
}

// Run blocks until quit or ctx is done; the screen must already be initialised
func (a *App) Run(ctx context.Context) error {
	if a.loop == nil {
		return errors.New("app: no loop")
	}
	a.screen.EnableMouse(tcell.MouseMotionEvents)
	a.screen.EnableFocus()
	a.screen.HideCursor()

	a.loop.Post(a.start)
	Go(a.poll)

	err := a.loop.Run(ctx)
	a.shutdown()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// poll forwards terminal events to the loop until the screen is finalised
func (a *App) poll() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		a.loop.Post(func() { a.handle(ev) })
	}
}

func (a *App) start() {
	a.show(a.router.Current())
	a.redraw = a.sched.Every(a.frame, a.draw)
	a.draw()
}

func (a *App) shutdown() {
	sched.Cancel(&a.redraw)
	if a.current != nil {
		a.current.Unmount()
		a.current = nil
	}
}

func (a *App) quit() {
	if a.stopped {
		return
	}
	a.stopped = true
	a.log.Info().Msg("quit requested")
	if a.stop != nil {
		a.stop()
	}
}

// --- Navigation ---

// Navigate pushes path; the view switch runs after the current callback returns
func (a *App) Navigate(path string) {
	a.sched.Post(func() {
		a.show(a.router.Navigate(path))
	})
}

// Back returns to the previous route, if any
func (a *App) Back() {
	a.sched.Post(func() {
		route, ok := a.router.Back()
		if !ok {
			return
		}
		a.show(route)
	})
}

// show mounts the view for route, reusing the current one when it can retarget
func (a *App) show(route router.Route) {
	if a.current != nil && route.Kind == a.route.Kind {
		if rt, ok := a.current.(view.Retargeter); ok && rt.Retarget(route) {
			a.route = route
			return
		}
		if route.Path == a.route.Path {
			return
		}
	}
	if a.current != nil {
		a.current.Unmount()
	}
	a.route = route
	a.current = view.New(route, a.deps)
	a.current.Mount()
	a.log.Debug().Str("path", route.Path).Stringer("kind", route.Kind).Int("history", a.router.Depth()).Msg("view mounted")
}

// Route returns the route of the mounted view
func (a *App) Route() router.Route {
	return a.route
}

// View returns the mounted view
func (a *App) View() view.View {
	return a.current
}

// --- Input ---

func (a *App) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		return
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			a.quit()
			return
		}
	}

	if a.current != nil && a.current.HandleEvent(ev) {
		return
	}

	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}
	switch key.Key() {
	case tcell.KeyRune:
		if key.Rune() == 'q' {
			a.quit()
		}
	case tcell.KeyEscape, tcell.KeyBackspace, tcell.KeyBackspace2:
		a.Back()
	}
}

// --- Drawing ---

func (a *App) draw() {
	now := a.clock.Now()
	a.screen.Clear()
	view.DrawHeader(a.screen)
	if a.current != nil {
		a.current.Draw(a.screen, now)
	}
	view.DrawFooter(a.screen, now)
	a.screen.Show()
}

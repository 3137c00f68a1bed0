// Package parallax drives the detail artwork: pointer input is smoothed into a
// per-frame transform, and entity changes are sequenced as a timed cross-fade.
//
// A Controller is confined to the scheduler's goroutine. Only the fetch runs
// elsewhere, and its result re-enters through Scheduler.Post where it is
// checked against the latest request token before it can touch state.
package parallax

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/pokedex/pokeapi"
	"github.com/lixenwraith/pokedex/sched"
)

// Phase is the controller's position in the load/display lifecycle
type Phase uint8

const (
	PhaseIdle      Phase = iota
	PhaseLoading         // Fetch in flight, previous content still shown
	PhaseFadingOut       // Result accepted, content hidden until the fade delay elapses
	PhaseFadingIn        // New entity installed and visible, reveal animation running
	PhaseDisplayed
	PhaseNotFound
	PhaseUnmounted
)

var phaseNames = [...]string{
	PhaseIdle:      "idle",
	PhaseLoading:   "loading",
	PhaseFadingOut: "fading-out",
	PhaseFadingIn:  "fading-in",
	PhaseDisplayed: "displayed",
	PhaseNotFound:  "not-found",
	PhaseUnmounted: "unmounted",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// State is the display state observed by the view
type State struct {
	Phase   Phase
	Visible bool
	Entity  *pokeapi.Pokemon
	Key     string // Most recently requested key
}

// Fetcher is the data provider used by Load
type Fetcher interface {
	FetchPokemon(ctx context.Context, nameOrID string) (*pokeapi.Pokemon, error)
}

// Sink receives the artwork transform every frame
type Sink interface {
	ApplyTransform(Transform)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Transform)

// ApplyTransform calls f
func (f SinkFunc) ApplyTransform(t Transform) { f(t) }

// Options are the controller's collaborators
type Options struct {
	Scheduler sched.Scheduler
	Fetcher   Fetcher
	Sink      Sink         // Optional
	OnChange  func(State)  // Optional, called after every state mutation
	Spawn     func(func()) // Runs fetches; defaults to the go statement
	Logger    zerolog.Logger
}

// Controller owns PointerTarget, CurrentOffset and DisplayState for one mounted view
type Controller struct {
	cfg      Config
	sched    sched.Scheduler
	fetcher  Fetcher
	sink     Sink
	onChange func(State)
	spawn    func(func())
	log      zerolog.Logger

	mounted   bool
	unmounted bool

	target Point
	offset Offset
	bounce float64
	state  State

	seq         sched.Sequence
	cancelFetch context.CancelFunc

	frameTask  sched.Task
	fadeTask   sched.Task
	settleTask sched.Task
	bounceTask sched.Task

	frames uint64
}

// NewController creates a controller; cfg must already be valid
func NewController(cfg Config, opts Options) *Controller {
	spawn := opts.Spawn
	if spawn == nil {
		spawn = func(fn func()) { go fn() }
	}
	return &Controller{
		cfg:      cfg,
		sched:    opts.Scheduler,
		fetcher:  opts.Fetcher,
		sink:     opts.Sink,
		onChange: opts.OnChange,
		spawn:    spawn,
		log:      opts.Logger,
		state:    State{Phase: PhaseIdle, Visible: true},
	}
}

// --- Lifecycle ---

// Mount starts the frame task; mounting twice or after Unmount is a no-op
func (c *Controller) Mount() {
	if c.mounted || c.unmounted {
		return
	}
	c.mounted = true
	c.frameTask = c.sched.Every(c.cfg.FrameInterval, c.FrameTick)
}

// Unmount cancels the frame task, every pending timer and the in-flight fetch
// No state transition is reported afterwards
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	c.unmounted = true

	sched.Cancel(&c.frameTask)
	sched.Cancel(&c.fadeTask)
	sched.Cancel(&c.settleTask)
	sched.Cancel(&c.bounceTask)

	c.seq.Invalidate()
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
	c.state.Phase = PhaseUnmounted
}

// Mounted reports whether the controller is live
func (c *Controller) Mounted() bool {
	return c.mounted
}

// --- Pointer input ---

// PointerMove retargets the offset from a pointer sample over container
func (c *Controller) PointerMove(container Bounds, pointer Point) {
	if !c.mounted || container.Empty() {
		return
	}
	c.target = pointerTarget(c.cfg, container, pointer)
}

// PointerLeave relaxes the offset back to centre
func (c *Controller) PointerLeave() {
	c.target = Point{}
}

// --- Animation ---

// FrameTick advances the smoothed offset one step and writes the transform to the sink
func (c *Controller) FrameTick() {
	if !c.mounted {
		return
	}
	c.offset.TX = approach(c.offset.TX, c.target.X, c.cfg.Smoothing)
	c.offset.TY = approach(c.offset.TY, c.target.Y, c.cfg.Smoothing)
	c.frames++

	if c.sink != nil {
		c.sink.ApplyTransform(c.Transform())
	}
}

// Bounce bumps the scale briefly, used when fresh artwork finishes loading
func (c *Controller) Bounce() {
	if !c.mounted {
		return
	}
	sched.Cancel(&c.bounceTask)
	c.bounce = c.cfg.BounceScale
	c.bounceTask = c.sched.After(c.cfg.BounceDuration, func() {
		c.bounceTask = nil
		c.bounce = 0
	})
}

// --- Entity loading ---

// Load requests the entity for key, superseding any earlier request
func (c *Controller) Load(key string) {
	if !c.mounted {
		return
	}

	tok := c.seq.Next()
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	// A swap scheduled by the superseded request must not run
	sched.Cancel(&c.fadeTask)
	sched.Cancel(&c.settleTask)

	ctx, cancel := context.WithCancel(context.Background())
	c.cancelFetch = cancel

	c.state.Key = key
	c.state.Phase = PhaseLoading
	c.notify()

	c.log.Debug().Str("key", key).Uint64("token", uint64(tok)).Msg("Loading entity")

	fetcher := c.fetcher
	c.spawn(func() {
		p, err := fetcher.FetchPokemon(ctx, key)
		c.sched.Post(func() {
			c.resolve(tok, key, p, err)
		})
	})
}

// resolve applies a fetch result if it is still the latest request
func (c *Controller) resolve(tok sched.Token, key string, p *pokeapi.Pokemon, err error) {
	if !c.mounted || !c.seq.IsCurrent(tok) {
		c.log.Debug().Str("key", key).Uint64("token", uint64(tok)).Msg("Dropping stale response")
		return
	}
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}

	if err != nil {
		c.log.Info().Err(err).Str("key", key).Msg("Entity not found")
		c.state.Entity = nil
		c.state.Visible = true
		c.state.Phase = PhaseNotFound
		c.notify()
		return
	}

	c.state.Visible = false
	c.state.Phase = PhaseFadingOut
	c.notify()

	c.fadeTask = c.sched.After(c.cfg.FadeDelay, func() {
		c.fadeTask = nil
		c.swap(tok, p)
	})
}

// swap installs the entity once the fade-out delay has elapsed
func (c *Controller) swap(tok sched.Token, p *pokeapi.Pokemon) {
	if !c.mounted || !c.seq.IsCurrent(tok) {
		return
	}
	c.state.Entity = p
	c.state.Visible = true
	c.state.Phase = PhaseFadingIn
	c.notify()

	c.settleTask = c.sched.After(c.cfg.FadeInDuration, func() {
		c.settleTask = nil
		if !c.mounted || !c.seq.IsCurrent(tok) {
			return
		}
		c.state.Phase = PhaseDisplayed
		c.notify()
	})
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange(c.state)
	}
}

// --- Accessors ---

// State returns a copy of the display state
func (c *Controller) State() State {
	return c.state
}

// Target returns the current pointer target
func (c *Controller) Target() Point {
	return c.target
}

// Offset returns the smoothed offset
func (c *Controller) Offset() Offset {
	return c.offset
}

// Frames returns the number of frame ticks applied
func (c *Controller) Frames() uint64 {
	return c.frames
}

// Transform returns the transform for the current offset
func (c *Controller) Transform() Transform {
	return Transform{
		TX:       c.offset.TX,
		TY:       c.offset.TY,
		Scale:    c.cfg.Scale + c.bounce,
		Rotation: c.offset.TX * c.cfg.RotationFactor,
	}
}

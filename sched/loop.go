package sched

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrRunning is returned when Run is called on a loop that is already draining
var ErrRunning = errors.New("sched: loop already running")

// Spawner starts fn on a new goroutine
type Spawner func(fn func())

// Loop drains posted callbacks on the goroutine that calls Run
// Timers and tickers run on their own goroutines but only ever enqueue work
type Loop struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}

	spawn Spawner

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
}

// NewLoop creates a loop; spawn starts ticker goroutines and defaults to the go statement
func NewLoop(spawn Spawner) *Loop {
	if spawn == nil {
		spawn = func(fn func()) { go fn() }
	}
	return &Loop{
		wake:     make(chan struct{}, 1),
		spawn:    spawn,
		stopChan: make(chan struct{}),
	}
}

// Post enqueues fn; it never blocks and is safe from any goroutine
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run drains callbacks until ctx is done or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer l.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stopChan:
			return nil
		case <-l.wake:
			l.drain()
		}
	}
}

// Stop makes Run return after the callback currently executing, if any
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}

func (l *Loop) drain() {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, fn := range batch {
		select {
		case <-l.stopChan:
			return
		default:
		}
		fn()
	}
}

// loopTask is cancelled on the loop goroutine; the flag is checked there before every delivery
type loopTask struct {
	cancelled atomic.Bool
	stop      func()
}

func (t *loopTask) Cancel() {
	if t.cancelled.CompareAndSwap(false, true) && t.stop != nil {
		t.stop()
	}
}

// After runs fn once on the loop after d
func (l *Loop) After(d time.Duration, fn func()) Task {
	t := &loopTask{}
	timer := time.AfterFunc(d, func() {
		l.Post(func() {
			if t.cancelled.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	t.stop = func() { timer.Stop() }
	return t
}

// Every runs fn on the loop every d until cancelled
// Ticks are coalesced: a new tick is not queued while the previous one is still pending
func (l *Loop) Every(d time.Duration, fn func()) Task {
	t := &loopTask{}
	done := make(chan struct{})
	var queued atomic.Bool

	l.spawn(func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-l.stopChan:
				return
			case <-ticker.C:
				if !queued.CompareAndSwap(false, true) {
					continue
				}
				l.Post(func() {
					queued.Store(false)
					if !t.cancelled.Load() {
						fn()
					}
				})
			}
		}
	})

	t.stop = func() { close(done) }
	return t
}

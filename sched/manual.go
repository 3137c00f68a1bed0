package sched

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler for tests
// Nothing runs until Flush or Advance is called on the test goroutine
// It is also the Clock its timers run against
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	queue  []func()
	timers []*manualTimer
	seq    uint64
}

var (
	_ Scheduler = (*Manual)(nil)
	_ Clock     = (*Manual)(nil)
)

type manualTimer struct {
	due       time.Time
	every     time.Duration
	fn        func()
	seq       uint64
	cancelled bool
	owner     *Manual
}

func (t *manualTimer) Cancel() {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	t.cancelled = true
}

// NewManual creates a manual scheduler whose clock starts at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the time Advance has reached
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) setNow(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Post queues fn until the next Flush
func (m *Manual) Post(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, fn)
}

// After registers a one-shot timer
func (m *Manual) After(d time.Duration, fn func()) Task {
	return m.add(d, 0, fn)
}

// Every registers a recurring timer
func (m *Manual) Every(d time.Duration, fn func()) Task {
	if d <= 0 {
		d = time.Nanosecond
	}
	return m.add(d, d, fn)
}

func (m *Manual) add(d, every time.Duration, fn func()) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{
		due:   m.now.Add(d),
		every: every,
		fn:    fn,
		seq:   m.seq,
		owner: m,
	}
	m.timers = append(m.timers, t)
	return t
}

// Flush runs queued callbacks, including ones posted while flushing, and returns how many ran
func (m *Manual) Flush() int {
	n := 0
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.mu.Unlock()
			return n
		}
		fn := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()

		fn()
		n++
	}
}

// Advance moves the clock forward by d, firing due timers in deadline order
// Posted callbacks are flushed before and after every timer
func (m *Manual) Advance(d time.Duration) {
	m.Flush()
	end := m.Now().Add(d)

	for {
		t := m.nextDue(end)
		if t == nil {
			break
		}
		m.setNow(t.due)
		t.fn()
		m.Flush()
	}
	m.setNow(end)
}

// nextDue pops the earliest live timer due at or before end, rescheduling recurring ones
func (m *Manual) nextDue(end time.Time) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.timers = live

	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due.Equal(m.timers[j].due) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].due.Before(m.timers[j].due)
	})

	if len(m.timers) == 0 || m.timers[0].due.After(end) {
		return nil
	}

	t := m.timers[0]
	fired := *t
	if t.every > 0 {
		t.due = t.due.Add(t.every)
	} else {
		t.cancelled = true
		m.timers = m.timers[1:]
	}

	// Recurring timers may be cancelled from inside their own callback
	return &manualTimer{due: fired.due, fn: func() {
		m.mu.Lock()
		dead := t.cancelled && t.every > 0
		m.mu.Unlock()
		if !dead {
			fired.fn()
		}
	}}
}

// Pending returns the number of live timers
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

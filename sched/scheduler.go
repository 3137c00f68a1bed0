// Package sched serialises UI work onto a single goroutine and provides
// cancellable one-shot and recurring tasks on top of it.
package sched

import "time"

// Task is a handle to scheduled work
// Cancel is idempotent; once it returns the callback never runs again
type Task interface {
	Cancel()
}

// Scheduler runs callbacks on one logical thread
// Post may be called from any goroutine; After and Every callbacks are delivered through Post
type Scheduler interface {
	Post(fn func())
	After(d time.Duration, fn func()) Task
	Every(d time.Duration, fn func()) Task
}

// Cancel stops a task held in a field and clears the field
func Cancel(t *Task) {
	if t == nil || *t == nil {
		return
	}
	(*t).Cancel()
	*t = nil
}

package sched

import "sync/atomic"

// Token identifies one asynchronous request
// The zero token is never current
type Token uint64

// Sequence issues monotonically increasing request tokens
// Only the most recently issued token is current; results carrying any other token are stale
type Sequence struct {
	current atomic.Uint64
}

// Next issues a new token and makes it current, superseding all earlier tokens
func (s *Sequence) Next() Token {
	return Token(s.current.Add(1))
}

// IsCurrent reports whether t is the latest issued token
func (s *Sequence) IsCurrent(t Token) bool {
	return t != 0 && uint64(t) == s.current.Load()
}

// Invalidate supersedes the current token without issuing a usable one
func (s *Sequence) Invalidate() {
	s.current.Add(1)
}

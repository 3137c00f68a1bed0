// Package render draws text, boxes, gradients and half-block sprites onto a cell surface.
package render

import (
	"github.com/gdamore/tcell/v2"
)

// Surface is the cell grid views draw on; tcell.Screen satisfies it
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// Rect is a cell rectangle
type Rect struct {
	X, Y, W, H int
}

// Empty reports a rectangle with no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inset shrinks r by n cells on every side
func (r Rect) Inset(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// CenterIn returns a w×h rectangle centred in r, clipped to r
func (r Rect) CenterIn(w, h int) Rect {
	if w > r.W {
		w = r.W
	}
	if h > r.H {
		h = r.H
	}
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// Full returns the whole surface as a rectangle
func Full(s Surface) Rect {
	w, h := s.Size()
	return Rect{W: w, H: h}
}

// Set writes one cell, ignoring coordinates outside the surface
func Set(s Surface, x, y int, r rune, style tcell.Style) {
	w, h := s.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	s.SetContent(x, y, r, nil, style)
}

package parallax

// Point is an absolute pointer position
type Point struct {
	X, Y float64
}

// Bounds is the reference container's bounding box
type Bounds struct {
	X, Y, W, H float64
}

// Empty reports a container with no area
func (b Bounds) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Center returns the container centre
func (b Bounds) Center() Point {
	return Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Offset is the smoothed translation applied to the artwork
type Offset struct {
	TX, TY float64
}

// Transform is written to the sink once per frame
type Transform struct {
	TX, TY   float64 // pixels
	Scale    float64
	Rotation float64 // degrees
}

// pointerTarget maps a pointer sample to the desired offset, saturated at ±M horizontally and ±M·k vertically
func pointerTarget(cfg Config, b Bounds, p Point) Point {
	c := b.Center()
	dx := (p.X - c.X) / b.W
	dy := (p.Y - c.Y) / b.H

	maxY := cfg.MaxOffset * cfg.VerticalDamping
	return Point{
		X: clamp(dx*cfg.MaxOffset, -cfg.MaxOffset, cfg.MaxOffset),
		Y: clamp(dy*maxY, -maxY, maxY),
	}
}

// approach closes fraction alpha of the distance from cur to target
func approach(cur, target, alpha float64) float64 {
	return cur + (target-cur)*alpha
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package render

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ReferenceBox is the artwork edge length, in source pixels, that transform offsets are expressed against
const ReferenceBox = 256.0

// SpriteTransform positions artwork within its canvas
type SpriteTransform struct {
	TX, TY   float64 // reference pixels, scaled to the canvas
	Scale    float64
	Rotation float64 // degrees
}

// Sprite is decoded artwork ready for per-frame rasterization
type Sprite struct {
	src *image.NRGBA
}

// Prepare pre-scales img so its longest side is at most maxSide pixels
func Prepare(img image.Image, maxSide int) *Sprite {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	if maxSide > 0 && (w > maxSide || h > maxSide) {
		f := float64(maxSide) / float64(max(w, h))
		w = max(1, int(float64(w)*f+0.5))
		h = max(1, int(float64(h)*f+0.5))
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return &Sprite{src: dst}
}

// Size returns the prepared source dimensions
func (s *Sprite) Size() (int, int) {
	b := s.src.Bounds()
	return b.Dx(), b.Dy()
}

// Matrix builds the source-to-canvas affine transform for a cw×ch pixel canvas
func (s *Sprite) Matrix(cw, ch int, t SpriteTransform) f64.Aff3 {
	sw, sh := s.Size()
	canvasMin := math.Min(float64(cw), float64(ch))
	fit := canvasMin / math.Max(float64(sw), float64(sh))

	scale := t.Scale
	if scale <= 0 {
		scale = 1
	}
	k := fit * scale
	rad := t.Rotation * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	a, b := k*cos, -k*sin
	d, e := k*sin, k*cos

	csx, csy := float64(sw)/2, float64(sh)/2
	cx := float64(cw)/2 + t.TX*canvasMin/ReferenceBox
	cy := float64(ch)/2 + t.TY*canvasMin/ReferenceBox

	return f64.Aff3{
		a, b, cx - (a*csx + b*csy),
		d, e, cy - (d*csx + e*csy),
	}
}

// Rasterize renders the sprite into a fresh cw×ch canvas
func (s *Sprite) Rasterize(cw, ch int, t SpriteTransform) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, cw, ch))
	if cw <= 0 || ch <= 0 {
		return dst
	}
	draw.ApproxBiLinear.Transform(dst, s.Matrix(cw, ch, t), s.src, s.src.Bounds(), draw.Over, nil)
	return dst
}

// DrawSprite rasterizes the sprite into r using half blocks, two pixel rows per cell,
// blended over bg and scaled by opacity
func DrawSprite(sf Surface, r Rect, sp *Sprite, t SpriteTransform, opacity float64, bg func(x, y int) colorful.Color) {
	if sp == nil || r.Empty() {
		return
	}
	canvas := sp.Rasterize(r.W, r.H*2, t)
	for cy := 0; cy < r.H; cy++ {
		for cx := 0; cx < r.W; cx++ {
			x, y := r.X+cx, r.Y+cy
			back := bg(x, y)
			top := over(canvas.NRGBAAt(cx, cy*2), back, opacity)
			bottom := over(canvas.NRGBAAt(cx, cy*2+1), back, opacity)
			Set(sf, x, y, '▀', Style(top, bottom))
		}
	}
}

// over composites a straight-alpha pixel onto back
func over(px color.NRGBA, back colorful.Color, opacity float64) colorful.Color {
	a := float64(px.A) / 255 * opacity
	if a <= 0 {
		return back
	}
	fg := colorful.Color{R: float64(px.R) / 255, G: float64(px.G) / 255, B: float64(px.B) / 255}
	return Fade(fg, back, a)
}

// placeholderGlyph is a 7×7 question mark drawn when artwork is unavailable
var placeholderGlyph = [...]string{
	" ##### ",
	"##   ##",
	"     ##",
	"   ### ",
	"   ##  ",
	"       ",
	"   ##  ",
}

// Placeholder builds a sprite from the question-mark glyph in the given colour
func Placeholder(c colorful.Color) *Sprite {
	const cell = 8
	n := len(placeholderGlyph)
	img := image.NewNRGBA(image.Rect(0, 0, n*cell, n*cell))
	r, g, b := c.Clamped().RGB255()
	ink := color.NRGBA{R: r, G: g, B: b, A: 255}
	for gy, row := range placeholderGlyph {
		for gx, ch := range row {
			if ch != '#' {
				continue
			}
			draw.Draw(img, image.Rect(gx*cell, gy*cell, (gx+1)*cell, (gy+1)*cell), image.NewUniform(ink), image.Point{}, draw.Src)
		}
	}
	return &Sprite{src: img}
}

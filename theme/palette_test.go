package theme

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestDefault_KnownTypes(t *testing.T) {
	p := Default{}
	tests := []struct {
		typ   string
		badge string
		neon  string
	}{
		{"fire", "#fb6c6c", "#ff6b6b"},
		{"grass", "#48d0b0", "#2dd4bf"},
		{"electric", "#f8d030", "#ffd54a"},
	}
	for _, tt := range tests {
		if got := p.Color(tt.typ).Hex(); got != tt.badge {
			t.Errorf("Color(%s) = %s, want %s", tt.typ, got, tt.badge)
		}
		if got := p.Neon(tt.typ).Hex(); got != tt.neon {
			t.Errorf("Neon(%s) = %s, want %s", tt.typ, got, tt.neon)
		}
	}
}

func TestDefault_UnknownTypeFallbacks(t *testing.T) {
	p := Default{}
	if got := p.Color("shadow").Hex(); got != "#666666" {
		t.Errorf("badge fallback = %s", got)
	}
	if got := p.Neon("shadow").Hex(); got != "#aaaaaa" {
		t.Errorf("neon fallback = %s", got)
	}
	if p.Gradient("shadow") != p.Gradient("normal") {
		t.Error("gradient fallback should be normal")
	}
	if p.CardGradient("") != p.CardGradient("normal") {
		t.Error("card gradient fallback should be normal")
	}
}

func TestDefault_EveryTypeCovered(t *testing.T) {
	for _, typ := range Types() {
		if _, ok := badgeColors[typ]; !ok {
			t.Errorf("%s missing badge colour", typ)
		}
		if _, ok := neonColors[typ]; !ok {
			t.Errorf("%s missing neon colour", typ)
		}
		if _, ok := backgroundGradients[typ]; !ok {
			t.Errorf("%s missing background gradient", typ)
		}
		if _, ok := cardGradients[typ]; !ok {
			t.Errorf("%s missing card gradient", typ)
		}
	}
}

func TestStops_AtEndpoints(t *testing.T) {
	s := Default{}.Gradient("water")
	if s.At(0) != s[0] || s.At(-1) != s[0] {
		t.Error("t<=0 must return first stop")
	}
	if s.At(1) != s[2] || s.At(2) != s[2] {
		t.Error("t>=1 must return last stop")
	}
	mid := s.At(0.5)
	if mid.DistanceLab(s[1]) > 1e-4 {
		t.Errorf("midpoint %s should equal middle stop %s", mid.Hex(), s[1].Hex())
	}
}

func TestStops_AtStaysInGamut(t *testing.T) {
	s := Stops{colorful.Color{R: 1}, colorful.Color{G: 1}, colorful.Color{B: 1}}
	for i := 0; i <= 20; i++ {
		c := s.At(float64(i) / 20)
		if !c.IsValid() {
			t.Fatalf("At(%v) out of gamut: %+v", float64(i)/20, c)
		}
	}
}

func TestLipgloss(t *testing.T) {
	c, _ := colorful.Hex("#f8d030")
	if got := Lipgloss(c); string(got) != "#f8d030" {
		t.Fatalf("Lipgloss() = %q, want #f8d030", got)
	}
}

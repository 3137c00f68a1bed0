// Package theme maps Pokémon type names to colours.
// All lookups are pure functions over static tables; unknown types fall back to neutral colours.
package theme

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Stops is a three-colour gradient, start to end
type Stops [3]colorful.Color

// Palette resolves styling data for a type name
type Palette interface {
	Color(typeName string) colorful.Color
	Neon(typeName string) colorful.Color
	Gradient(typeName string) Stops
	CardGradient(typeName string) Stops
}

// Default is the built-in palette
type Default struct{}

var _ Palette = Default{}

// Color returns the badge colour
func (Default) Color(typeName string) colorful.Color {
	if c, ok := badgeColors[typeName]; ok {
		return c
	}
	return fallbackBadge
}

// Neon returns the brighter glow/border colour
func (Default) Neon(typeName string) colorful.Color {
	if c, ok := neonColors[typeName]; ok {
		return c
	}
	return fallbackNeon
}

// Gradient returns the detail background gradient
func (Default) Gradient(typeName string) Stops {
	if g, ok := backgroundGradients[typeName]; ok {
		return g
	}
	return backgroundGradients["normal"]
}

// CardGradient returns the listing card gradient
func (Default) CardGradient(typeName string) Stops {
	if g, ok := cardGradients[typeName]; ok {
		return g
	}
	return cardGradients["normal"]
}

// At samples the gradient at t in [0,1], blending in Lab space
func (s Stops) At(t float64) colorful.Color {
	switch {
	case t <= 0:
		return s[0]
	case t >= 1:
		return s[2]
	case t < 0.5:
		return s[0].BlendLab(s[1], t*2).Clamped()
	default:
		return s[1].BlendLab(s[2], (t-0.5)*2).Clamped()
	}
}

// Types lists every type the tables know, in display order
func Types() []string {
	return []string{
		"normal", "fire", "water", "grass", "electric", "ice",
		"fighting", "poison", "ground", "flying", "psychic", "bug",
		"rock", "ghost", "dragon", "dark", "steel", "fairy",
	}
}

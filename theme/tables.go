package theme

import (
	"github.com/lucasb-eyer/go-colorful"
)

var (
	fallbackBadge = hex("#666666")
	fallbackNeon  = hex("#aaaaaa")
)

var badgeColors = hexMap(map[string]string{
	"grass":    "#48D0B0",
	"fire":     "#FB6C6C",
	"water":    "#76BEFE",
	"bug":      "#A8B820",
	"normal":   "#A8A77A",
	"poison":   "#A040A0",
	"electric": "#F8D030",
	"ground":   "#E0C068",
	"fairy":    "#EE99AC",
	"fighting": "#C22E28",
	"psychic":  "#F95587",
	"rock":     "#B6A136",
	"ghost":    "#735797",
	"ice":      "#96D9D6",
	"dragon":   "#6F35FC",
	"dark":     "#705746",
	"steel":    "#B7B7CE",
	"flying":   "#A98FF3",
})

var neonColors = hexMap(map[string]string{
	"grass":    "#2DD4BF",
	"fire":     "#ff6b6b",
	"water":    "#3db4ff",
	"bug":      "#a3e635",
	"electric": "#ffd54a",
	"ground":   "#e9c46a",
	"rock":     "#f0c987",
	"ice":      "#7ee8fa",
	"dragon":   "#b084ff",
	"ghost":    "#9f7aea",
	"psychic":  "#ff6fb4",
	"dark":     "#9ca3af",
	"steel":    "#cbd5e1",
	"fairy":    "#ff9ad6",
	"poison":   "#c084fc",
	"normal":   "#d1d5db",
	"fighting": "#ff7a5a",
	"flying":   "#93c5fd",
})

var backgroundGradients = stopsMap(map[string][3]string{
	"grass":    {"#bbf7d0", "#34d399", "#059669"},
	"fire":     {"#fed7d7", "#fb7185", "#ef4444"},
	"water":    {"#bfdbfe", "#60a5fa", "#2563eb"},
	"electric": {"#fff7cc", "#fde047", "#f59e0b"},
	"ground":   {"#fff1cc", "#f6d365", "#fda085"},
	"rock":     {"#f1f5f9", "#c7d2fe", "#94a3b8"},
	"bug":      {"#ecfccb", "#a3e635", "#65a30d"},
	"ice":      {"#e6fffa", "#67e8f9", "#0ea5e9"},
	"dragon":   {"#f3e8ff", "#c084fc", "#7c3aed"},
	"ghost":    {"#f3e8ff", "#c7b3ff", "#8b5cf6"},
	"psychic":  {"#fff0f6", "#fbcfe8", "#fb7185"},
	"dark":     {"#e2e8f0", "#94a3b8", "#0f172a"},
	"steel":    {"#f8fafc", "#cbd5e1", "#94a3b8"},
	"fairy":    {"#fff1f2", "#ffd6e0", "#fb7185"},
	"poison":   {"#fbebff", "#e9d5ff", "#c084fc"},
	"normal":   {"#f8fafc", "#e6e7e8", "#cfd3d6"},
	"flying":   {"#eff6ff", "#bfdbfe", "#60a5fa"},
	"fighting": {"#fff7ed", "#ffedd5", "#fb923c"},
})

// Listing card borders, from/via/to
var cardGradients = stopsMap(map[string][3]string{
	"fire":     {"#f97316", "#ef4444", "#facc15"},
	"water":    {"#3b82f6", "#06b6d4", "#93c5fd"},
	"grass":    {"#22c55e", "#84cc16", "#34d399"},
	"electric": {"#facc15", "#fcd34d", "#fdba74"},
	"psychic":  {"#ec4899", "#d946ef", "#f472b6"},
	"ice":      {"#67e8f9", "#bfdbfe", "#cffafe"},
	"dragon":   {"#7e22ce", "#4f46e5", "#3b82f6"},
	"dark":     {"#1f2937", "#374151", "#4b5563"},
	"fairy":    {"#f9a8d4", "#fda4af", "#fbcfe8"},
	"normal":   {"#d1d5db", "#e5e7eb", "#f3f4f6"},
	"fighting": {"#b91c1c", "#c2410c", "#ca8a04"},
	"flying":   {"#a5b4fc", "#7dd3fc", "#d8b4fe"},
	"poison":   {"#9333ea", "#c026d3", "#c084fc"},
	"ground":   {"#a16207", "#d97706", "#f97316"},
	"rock":     {"#854d0e", "#44403c", "#78716c"},
	"bug":      {"#84cc16", "#22c55e", "#a3e635"},
	"steel":    {"#9ca3af", "#d1d5db", "#e5e7eb"},
	"ghost":    {"#4338ca", "#7e22ce", "#4f46e5"},
})

// hex parses a table literal; the tables are static so a bad literal is a programmer error
func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("theme: bad colour literal " + s)
	}
	return c
}

func hexMap(in map[string]string) map[string]colorful.Color {
	out := make(map[string]colorful.Color, len(in))
	for k, v := range in {
		out[k] = hex(v)
	}
	return out
}

func stopsMap(in map[string][3]string) map[string]Stops {
	out := make(map[string]Stops, len(in))
	for k, v := range in {
		out[k] = Stops{hex(v[0]), hex(v[1]), hex(v[2])}
	}
	return out
}

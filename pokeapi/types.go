package pokeapi

import (
	"sort"
	"strconv"
)

// PlaceholderArtworkURL is shown when a record carries no usable sprite
const PlaceholderArtworkURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/0.png"

// DefaultType is assumed when a record lists no types
const DefaultType = "normal"

// NamedResource is the {name, url} pair PokéAPI uses for references
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TypeSlot is one entry of a Pokémon's ordered type list
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// Stat is one base stat
type Stat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// Sprites holds the sprite URLs used for rendering; absent sprites decode to ""
type Sprites struct {
	FrontDefault string `json:"front_default"`
	Other        struct {
		OfficialArtwork struct {
			FrontDefault string `json:"front_default"`
		} `json:"official-artwork"`
	} `json:"other"`
}

// Pokemon is the subset of the /pokemon/{id} resource the application renders
// Height and Weight are in tenths of metres and kilograms
type Pokemon struct {
	ID      int        `json:"id"`
	Name    string     `json:"name"`
	Height  int        `json:"height"`
	Weight  int        `json:"weight"`
	Types   []TypeSlot `json:"types"`
	Stats   []Stat     `json:"stats"`
	Sprites Sprites    `json:"sprites"`
}

// normalize orders types by slot so the first entry is the primary type
func (p *Pokemon) normalize() {
	sort.SliceStable(p.Types, func(i, j int) bool {
		return p.Types[i].Slot < p.Types[j].Slot
	})
}

// PrimaryType returns the first type name, DefaultType if none
func (p *Pokemon) PrimaryType() string {
	if len(p.Types) == 0 || p.Types[0].Type.Name == "" {
		return DefaultType
	}
	return p.Types[0].Type.Name
}

// TypeNames returns type names in slot order
func (p *Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		if t.Type.Name != "" {
			names = append(names, t.Type.Name)
		}
	}
	return names
}

// ArtworkURL picks official artwork, then the basic sprite, then the placeholder
func (p *Pokemon) ArtworkURL() string {
	if u := p.Sprites.Other.OfficialArtwork.FrontDefault; u != "" {
		return u
	}
	if u := p.Sprites.FrontDefault; u != "" {
		return u
	}
	return PlaceholderArtworkURL
}

// ArtworkCandidates lists every artwork URL in fallback order, placeholder last
func (p *Pokemon) ArtworkCandidates() []string {
	urls := make([]string, 0, 3)
	for _, u := range []string{p.Sprites.Other.OfficialArtwork.FrontDefault, p.Sprites.FrontDefault} {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return append(urls, PlaceholderArtworkURL)
}

// TopStats returns the first three base stats in record order
func (p *Pokemon) TopStats() []Stat {
	if len(p.Stats) <= 3 {
		return p.Stats
	}
	return p.Stats[:3]
}

// HeightText returns height in metres
func (p *Pokemon) HeightText() string {
	return FormatTenths(p.Height)
}

// WeightText returns weight in kilograms
func (p *Pokemon) WeightText() string {
	return FormatTenths(p.Weight)
}

// FormatTenths renders a value given in tenths with the shortest exact decimal
func FormatTenths(v int) string {
	return strconv.FormatFloat(float64(v)/10, 'f', -1, 64)
}

// StatLabel returns the short label for the three conventional card stats, "" for anything else
func StatLabel(name string) string {
	switch name {
	case "hp":
		return "HP"
	case "attack":
		return "ATK"
	case "defense":
		return "DEF"
	default:
		return ""
	}
}

// Page is one slice of the national index
type Page struct {
	Limit   int
	Offset  int
	Count   int // Total records upstream
	Entries []*Pokemon
}

// HasNext reports whether records exist past this page
func (p *Page) HasNext() bool {
	return p.Offset+p.Limit < p.Count
}

// listResponse is the /pokemon?limit=&offset= envelope
type listResponse struct {
	Count   int             `json:"count"`
	Next    *string         `json:"next"`
	Results []NamedResource `json:"results"`
}

package pokeapi

import "testing"

func TestFormatTenths(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{7, "0.7"},
		{690, "69"},
		{0, "0"},
		{1, "0.1"},
		{105, "10.5"},
		{9999, "999.9"},
	}
	for _, tt := range tests {
		if got := FormatTenths(tt.in); got != tt.want {
			t.Errorf("FormatTenths(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArtworkURL_Fallbacks(t *testing.T) {
	var p Pokemon
	if got := p.ArtworkURL(); got != PlaceholderArtworkURL {
		t.Errorf("no sprites: got %q", got)
	}

	p.Sprites.FrontDefault = "basic.png"
	if got := p.ArtworkURL(); got != "basic.png" {
		t.Errorf("basic only: got %q", got)
	}

	p.Sprites.Other.OfficialArtwork.FrontDefault = "art.png"
	if got := p.ArtworkURL(); got != "art.png" {
		t.Errorf("with artwork: got %q", got)
	}
}

func TestPrimaryType_SlotOrderAndDefault(t *testing.T) {
	var empty Pokemon
	if got := empty.PrimaryType(); got != DefaultType {
		t.Errorf("empty record primary type = %q", got)
	}

	p := Pokemon{Types: []TypeSlot{
		{Slot: 2, Type: NamedResource{Name: "flying"}},
		{Slot: 1, Type: NamedResource{Name: "fire"}},
	}}
	p.normalize()
	if got := p.PrimaryType(); got != "fire" {
		t.Errorf("primary type = %q, want fire", got)
	}
	names := p.TypeNames()
	if len(names) != 2 || names[0] != "fire" || names[1] != "flying" {
		t.Errorf("type names = %v", names)
	}
}

func TestStatLabel(t *testing.T) {
	for name, want := range map[string]string{
		"hp":              "HP",
		"attack":          "ATK",
		"defense":         "DEF",
		"speed":           "",
		"special-defense": "",
	} {
		if got := StatLabel(name); got != want {
			t.Errorf("StatLabel(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestTopStats_ShortRecord(t *testing.T) {
	p := Pokemon{Stats: []Stat{{BaseStat: 1}}}
	if len(p.TopStats()) != 1 {
		t.Error("expected the single available stat")
	}
}

func TestArtworkCandidates(t *testing.T) {
	var p Pokemon
	p.Sprites.FrontDefault = "front.png"
	p.Sprites.Other.OfficialArtwork.FrontDefault = "official.png"

	got := p.ArtworkCandidates()
	want := []string{"official.png", "front.png", PlaceholderArtworkURL}
	if len(got) != len(want) {
		t.Fatalf("ArtworkCandidates() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ArtworkCandidates()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	var bare Pokemon
	if got := bare.ArtworkCandidates(); len(got) != 1 || got[0] != PlaceholderArtworkURL {
		t.Errorf("bare ArtworkCandidates() = %v", got)
	}
}

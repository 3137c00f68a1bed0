package widget

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/pokedex/render"
)

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func typeString(f *TextField, s string) {
	for _, r := range s {
		f.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestTextField_TypingAndBackspace(t *testing.T) {
	f := NewTextField("", 0)
	typeString(f, "pikachu")
	assert.Equal(t, "pikachu", f.Value())
	assert.Equal(t, 7, f.Cursor)

	assert.True(t, f.HandleKey(key(tcell.KeyBackspace2, tcell.ModNone)))
	assert.Equal(t, "pikach", f.Value())
}

func TestTextField_InsertMidText(t *testing.T) {
	f := NewTextField("mr-mme", 0)
	f.HandleKey(key(tcell.KeyLeft, tcell.ModNone))
	f.HandleKey(key(tcell.KeyLeft, tcell.ModNone))
	typeString(f, "i")
	assert.Equal(t, "mr-mime", f.Value())
}

func TestTextField_Limit(t *testing.T) {
	f := NewTextField("abcdef", 4)
	assert.Equal(t, "abcd", f.Value())
	assert.False(t, f.Insert('x'))
}

func TestTextField_WordDeletion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single word", "pikachu", ""},
		{"hyphenated word", "ho-oh", ""},
		{"trailing space", "ash pikachu ", "ash "},
		{"two words", "ash ketchum", "ash "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTextField(tt.in, 0)
			f.HandleKey(key(tcell.KeyCtrlW, tcell.ModCtrl))
			assert.Equal(t, tt.want, f.Value())
		})
	}
}

func TestTextField_LineEdits(t *testing.T) {
	f := NewTextField("charmander", 0)
	f.Cursor = 4
	assert.True(t, f.DeleteToEnd())
	assert.Equal(t, "char", f.Value())
	assert.True(t, f.DeleteToStart())
	assert.Equal(t, "", f.Value())
	assert.False(t, f.DeleteBackward())
	assert.False(t, f.DeleteForward())
}

func TestTextField_HomeEnd(t *testing.T) {
	f := NewTextField("eevee", 0)
	f.HandleKey(key(tcell.KeyHome, tcell.ModNone))
	assert.Equal(t, 0, f.Cursor)
	f.HandleKey(key(tcell.KeyEnd, tcell.ModNone))
	assert.Equal(t, 5, f.Cursor)
}

func TestTextField_IgnoresUnhandledKeys(t *testing.T) {
	f := NewTextField("x", 0)
	assert.False(t, f.HandleKey(key(tcell.KeyEnter, tcell.ModNone)))
	assert.False(t, f.HandleKey(key(tcell.KeyTab, tcell.ModNone)))
	assert.Equal(t, "x", f.Value())
}

func TestTextField_AdjustScroll(t *testing.T) {
	f := NewTextField("abcdefghij", 0)
	f.AdjustScroll(4)
	assert.Equal(t, 7, f.Scroll)

	f.Cursor = 2
	f.AdjustScroll(4)
	assert.Equal(t, 2, f.Scroll)
}

type cells map[[2]int]rune

type gridSurface struct {
	w, h int
	c    cells
}

func (g *gridSurface) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	g.c[[2]int{x, y}] = r
}

func (g *gridSurface) Size() (int, int) { return g.w, g.h }

func TestTextField_DrawScrolled(t *testing.T) {
	g := &gridSurface{w: 4, h: 1, c: cells{}}
	f := NewTextField("bulbasaur", 0)
	f.Draw(g, render.Rect{W: 4, H: 1}, "", tcell.StyleDefault, tcell.StyleDefault, true)

	got := []rune{g.c[[2]int{0, 0}], g.c[[2]int{1, 0}], g.c[[2]int{2, 0}], g.c[[2]int{3, 0}]}
	assert.Equal(t, "aur ", string(got))
}

func TestTextField_DrawPlaceholder(t *testing.T) {
	g := &gridSurface{w: 6, h: 1, c: cells{}}
	f := NewTextField("", 0)
	f.Draw(g, render.Rect{W: 6, H: 1}, "search", tcell.StyleDefault, tcell.StyleDefault, false)
	assert.Equal(t, 'e', g.c[[2]int{1, 0}])
}

// Package widget holds small interactive terminal controls.
package widget

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pokedex/render"
)

// isWordChar returns true for word-constituent characters; hyphen counts so "mr-mime" is one word
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-'
}

// TextField is a single-line editable query with cursor and horizontal scroll
type TextField struct {
	Text   []rune
	Cursor int // Position before which cursor sits
	Scroll int // First visible rune index
	Limit  int // Maximum runes, 0 for unbounded
}

// NewTextField creates a field holding initial with the cursor at the end
func NewTextField(initial string, limit int) *TextField {
	f := &TextField{Limit: limit}
	f.SetValue(initial)
	return f
}

// --- Value access ---

// Value returns the current text
func (f *TextField) Value() string {
	return string(f.Text)
}

// Empty reports a field with no text
func (f *TextField) Empty() bool {
	return len(f.Text) == 0
}

// SetValue replaces text and moves cursor to end
func (f *TextField) SetValue(s string) {
	f.Text = []rune(s)
	if f.Limit > 0 && len(f.Text) > f.Limit {
		f.Text = f.Text[:f.Limit]
	}
	f.Cursor = len(f.Text)
	f.Scroll = 0
}

// Clear empties the field
func (f *TextField) Clear() {
	f.Text = nil
	f.Cursor = 0
	f.Scroll = 0
}

// --- Editing ---

// Insert adds r at the cursor unless the field is full
func (f *TextField) Insert(r rune) bool {
	if f.Limit > 0 && len(f.Text) >= f.Limit {
		return false
	}
	f.Text = append(f.Text[:f.Cursor], append([]rune{r}, f.Text[f.Cursor:]...)...)
	f.Cursor++
	return true
}

// DeleteBackward removes the rune before the cursor
func (f *TextField) DeleteBackward() bool {
	if f.Cursor == 0 {
		return false
	}
	f.Text = append(f.Text[:f.Cursor-1], f.Text[f.Cursor:]...)
	f.Cursor--
	return true
}

// DeleteForward removes the rune at the cursor
func (f *TextField) DeleteForward() bool {
	if f.Cursor >= len(f.Text) {
		return false
	}
	f.Text = append(f.Text[:f.Cursor], f.Text[f.Cursor+1:]...)
	return true
}

// DeleteWordBackward removes the word before the cursor with any trailing separators
func (f *TextField) DeleteWordBackward() bool {
	if f.Cursor == 0 {
		return false
	}
	start := f.Cursor
	for start > 0 && !isWordChar(f.Text[start-1]) {
		start--
	}
	for start > 0 && isWordChar(f.Text[start-1]) {
		start--
	}
	f.Text = append(f.Text[:start], f.Text[f.Cursor:]...)
	f.Cursor = start
	return true
}

// DeleteToStart removes everything before the cursor
func (f *TextField) DeleteToStart() bool {
	if f.Cursor == 0 {
		return false
	}
	f.Text = f.Text[f.Cursor:]
	f.Cursor = 0
	f.Scroll = 0
	return true
}

// DeleteToEnd removes everything from the cursor on
func (f *TextField) DeleteToEnd() bool {
	if f.Cursor >= len(f.Text) {
		return false
	}
	f.Text = f.Text[:f.Cursor]
	return true
}

// --- Movement ---

func (f *TextField) moveLeft() {
	if f.Cursor > 0 {
		f.Cursor--
	}
}

func (f *TextField) moveRight() {
	if f.Cursor < len(f.Text) {
		f.Cursor++
	}
}

func (f *TextField) moveWordLeft() {
	for f.Cursor > 0 && !isWordChar(f.Text[f.Cursor-1]) {
		f.Cursor--
	}
	for f.Cursor > 0 && isWordChar(f.Text[f.Cursor-1]) {
		f.Cursor--
	}
}

func (f *TextField) moveWordRight() {
	for f.Cursor < len(f.Text) && isWordChar(f.Text[f.Cursor]) {
		f.Cursor++
	}
	for f.Cursor < len(f.Text) && !isWordChar(f.Text[f.Cursor]) {
		f.Cursor++
	}
}

// AdjustScroll keeps the cursor inside a viewport of width columns
func (f *TextField) AdjustScroll(width int) {
	if width <= 0 {
		return
	}
	if f.Cursor < f.Scroll {
		f.Scroll = f.Cursor
	}
	if f.Cursor >= f.Scroll+width {
		f.Scroll = f.Cursor - width + 1
	}
	if f.Scroll < 0 {
		f.Scroll = 0
	}
}

// --- Input ---

// HandleKey applies an editing key, returning true when the event was consumed.
// Enter, Escape and Tab are left to the caller
func (f *TextField) HandleKey(ev *tcell.EventKey) bool {
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	switch ev.Key() {
	case tcell.KeyLeft:
		if ctrl {
			f.moveWordLeft()
		} else {
			f.moveLeft()
		}
		return true
	case tcell.KeyRight:
		if ctrl {
			f.moveWordRight()
		} else {
			f.moveRight()
		}
		return true
	case tcell.KeyHome, tcell.KeyCtrlA:
		f.Cursor = 0
		return true
	case tcell.KeyEnd, tcell.KeyCtrlE:
		f.Cursor = len(f.Text)
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if ctrl {
			return f.DeleteWordBackward()
		}
		return f.DeleteBackward()
	case tcell.KeyDelete:
		return f.DeleteForward()
	case tcell.KeyCtrlK:
		return f.DeleteToEnd()
	case tcell.KeyCtrlU:
		return f.DeleteToStart()
	case tcell.KeyCtrlW:
		return f.DeleteWordBackward()
	case tcell.KeyRune:
		r := ev.Rune()
		if r < 32 {
			return false
		}
		f.Insert(r)
		return true
	}
	return false
}

// Draw renders the visible slice of text into r with a reversed cursor cell when focused
func (f *TextField) Draw(s render.Surface, r render.Rect, placeholder string, style, hint tcell.Style, focused bool) {
	if r.Empty() {
		return
	}
	for x := 0; x < r.W; x++ {
		render.Set(s, r.X+x, r.Y, ' ', style)
	}
	if len(f.Text) == 0 && placeholder != "" {
		render.Text(s, r.X, r.Y, r.W, placeholder, hint)
	}

	f.AdjustScroll(r.W)
	for i := f.Scroll; i < len(f.Text) && i-f.Scroll < r.W; i++ {
		render.Set(s, r.X+i-f.Scroll, r.Y, f.Text[i], style)
	}

	if focused {
		ch := ' '
		if f.Cursor < len(f.Text) {
			ch = f.Text[f.Cursor]
		}
		render.Set(s, r.X+f.Cursor-f.Scroll, r.Y, ch, style.Reverse(true))
	}
}

package view

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pokedex/router"
)

func mountListing(t *testing.T, path string) (*harness, *Listing) {
	t.Helper()
	h := newHarness(t)
	v, ok := New(router.Parse(path), h.deps).(*Listing)
	require.True(t, ok)
	v.Mount()
	return h, v
}

func TestListing_LoadsPage(t *testing.T) {
	h, v := mountListing(t, "/pokedex?page=0")
	assert.Nil(t, v.Entries())
	h.spawner.runAll(h.sched)

	entries := v.Entries()
	require.Len(t, entries, 30)
	assert.Equal(t, 1, entries[0].ID)
	assert.Equal(t, 30, entries[29].ID)
}

func TestListing_PagingNavigates(t *testing.T) {
	h, v := mountListing(t, "/pokedex?page=0")
	h.spawner.runAll(h.sched)

	v.HandleEvent(keyRune('p'))
	assert.Empty(t, h.nav.paths, "no page before the first")

	v.HandleEvent(keyRune('n'))
	assert.Equal(t, "/pokedex?page=1", h.nav.last())
	v.HandleEvent(keyOf(tcell.KeyRight))
	assert.Len(t, h.nav.paths, 2)

	assert.True(t, v.Retarget(router.Parse("/pokedex?page=1")))
	h.spawner.runAll(h.sched)
	assert.Equal(t, 1, v.Page())
	assert.Equal(t, 31, v.Entries()[0].ID)

	v.HandleEvent(keyOf(tcell.KeyLeft))
	assert.Equal(t, "/pokedex?page=0", h.nav.last())
}

func TestListing_LastPage(t *testing.T) {
	h, v := mountListing(t, "/pokedex?page=2")
	h.spawner.runAll(h.sched)

	require.Len(t, v.Entries(), 10)
	assert.Equal(t, 61, v.Entries()[0].ID)

	v.HandleEvent(keyRune('n'))
	assert.Empty(t, h.nav.paths)
}

func TestListing_PastEndIsEmpty(t *testing.T) {
	h, v := mountListing(t, "/pokedex?page=9")
	h.spawner.runAll(h.sched)
	assert.Empty(t, v.Entries())

	s := newScreen(80, 30)
	v.Draw(s, epoch)
	assert.Contains(t, s.text(), "No more Pokémon")
}

func TestListing_StalePageDropped(t *testing.T) {
	h, v := mountListing(t, "/pokedex?page=0")
	h.spawner.runAll(h.sched)

	v.Retarget(router.Parse("/pokedex?page=1"))
	v.Retarget(router.Parse("/pokedex?page=2"))
	require.Len(t, h.spawner.jobs, 2)

	newer := h.spawner.take(1)
	older := h.spawner.take(0)
	newer()
	h.sched.Flush()
	older()
	h.sched.Flush()

	assert.Equal(t, 2, v.Page())
	assert.Equal(t, 61, v.Entries()[0].ID)
}

func TestListing_RetargetOtherKind(t *testing.T) {
	_, v := mountListing(t, "/pokedex")
	assert.False(t, v.Retarget(router.Parse("/pokemon/25")))
}

func TestListing_EnterOpensSelected(t *testing.T) {
	h, v := mountListing(t, "/pokedex?page=0")
	h.spawner.runAll(h.sched)

	v.HandleEvent(keyRune('l'))
	v.HandleEvent(keyRune('l'))
	v.HandleEvent(keyRune('h'))
	v.HandleEvent(keyOf(tcell.KeyEnter))
	assert.Equal(t, "/pokemon/mon2", h.nav.last())
}

func TestListing_SelectionClamped(t *testing.T) {
	h, v := mountListing(t, "/pokedex?page=0")
	h.spawner.runAll(h.sched)

	for i := 0; i < 5; i++ {
		v.HandleEvent(keyRune('h'))
	}
	v.HandleEvent(keyOf(tcell.KeyEnter))
	assert.Equal(t, "/pokemon/mon1", h.nav.last())
}

func TestListing_ClickOpensCard(t *testing.T) {
	h, v := mountListing(t, "/pokedex?page=0")
	h.spawner.runAll(h.sched)

	s := newScreen(120, 40)
	v.Draw(s, epoch)
	require.Greater(t, len(v.cards), 3)
	r := v.cards[3]
	require.False(t, r.Empty())

	assert.True(t, v.HandleEvent(tcell.NewEventMouse(r.X+1, r.Y+1, tcell.Button1, tcell.ModNone)))
	assert.Equal(t, "/pokemon/mon4", h.nav.last())
	assert.Contains(t, s.text(), "Mon1")
}

func TestListing_Failure(t *testing.T) {
	h := newHarness(t)
	h.provider.pageErr = errors.New("offline")
	v := New(router.Parse("/pokedex"), h.deps).(*Listing)
	v.Mount()
	h.spawner.runAll(h.sched)

	s := newScreen(80, 30)
	v.Draw(s, epoch)
	assert.Contains(t, s.text(), "Could not load this page")

	// Retargeting the same page retries after a failure
	h.provider.pageErr = nil
	v.Retarget(router.Parse("/pokedex?page=0"))
	h.spawner.runAll(h.sched)
	assert.Len(t, v.Entries(), 30)
}

func TestListing_UnmountDropsResult(t *testing.T) {
	h, v := mountListing(t, "/pokedex")
	v.Unmount()
	h.spawner.runAll(h.sched)
	assert.Nil(t, v.Entries())
}

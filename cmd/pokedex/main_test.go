package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
}

func pokeServer(t *testing.T, total int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		var results []string
		for id := offset + 1; id <= offset+limit && id <= total; id++ {
			results = append(results, fmt.Sprintf(`{"name":"mon%d","url":""}`, id))
		}
		fmt.Fprintf(w, `{"count":%d,"next":null,"results":[%s]}`, total, strings.Join(results, ","))
	})
	mux.HandleFunc("/pokemon/", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/pokemon/")
		var id int
		switch {
		case key == "pikachu" || key == "25":
			id, key = 25, "pikachu"
		case strings.HasPrefix(key, "mon"):
			id, _ = strconv.Atoi(strings.TrimPrefix(key, "mon"))
		}
		if id == 0 {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `{"id":%d,"name":%q,"height":4,"weight":60,
			"types":[{"slot":1,"type":{"name":"electric","url":""}}],
			"stats":[{"base_stat":35,"stat":{"name":"hp"}},{"base_stat":55,"stat":{"name":"attack"}},{"base_stat":40,"stat":{"name":"defense"}}],
			"sprites":{"front_default":null}}`, id, key)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestShowPrintsCard(t *testing.T) {
	isolate(t)
	srv := pokeServer(t, 30)

	code, out, errOut := runCmd(t, "show", "Pikachu", "--api-url", srv.URL, "--no-cache", "--log-level", "off")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Pikachu")
	assert.Contains(t, out, "#025")
	assert.Contains(t, out, "ELECTRIC")
	assert.Contains(t, out, "HP 35")
}

func TestShowNotFound(t *testing.T) {
	isolate(t)
	srv := pokeServer(t, 30)

	code, _, errOut := runCmd(t, "show", "missingno", "--api-url", srv.URL, "--no-cache", "--log-level", "off")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "not found")
}

func TestShowNeedsOneKey(t *testing.T) {
	isolate(t)
	code, _, errOut := runCmd(t, "show", "--log-level", "off")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "exactly one")
}

func TestListPrintsPage(t *testing.T) {
	isolate(t)
	srv := pokeServer(t, 12)

	code, out, errOut := runCmd(t, "list", "--page", "1", "--api-url", srv.URL, "--no-cache", "--log-level", "off")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "page 2 of 1")

	// Page size defaults to 30, so page 1 is past the end
	assert.Contains(t, out, "No more Pokémon")
}

func TestListUsesConfiguredPageSize(t *testing.T) {
	isolate(t)
	srv := pokeServer(t, 12)
	t.Setenv("POKEDEX_UI_PAGESIZE", "5")

	code, out, errOut := runCmd(t, "list", "--page", "2", "--api-url", srv.URL, "--no-cache", "--log-level", "off")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "page 3 of 3 (12 total)")
	assert.Contains(t, out, "Mon11")
	assert.Contains(t, out, "Mon12")
	assert.NotContains(t, out, "Mon10")
}

func TestListWithCache(t *testing.T) {
	isolate(t)
	srv := pokeServer(t, 3)

	code, out, errOut := runCmd(t, "list", "--api-url", srv.URL, "--log-level", "off")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Mon1")

	// Served from the cache once the server is gone
	srv.Close()
	code, out, errOut = runCmd(t, "list", "--api-url", srv.URL, "--log-level", "off")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Mon3")
}

func TestUnknownCommand(t *testing.T) {
	isolate(t)
	code, _, errOut := runCmd(t, "catch", "--log-level", "off")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown command "catch"`)
	assert.Contains(t, errOut, "Commands:")
}

func TestHelp(t *testing.T) {
	isolate(t)
	code, _, errOut := runCmd(t, "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "show <name|id>")
	assert.Contains(t, errOut, "--no-cache")
}

func TestBadConfigAborts(t *testing.T) {
	isolate(t)
	code, _, errOut := runCmd(t, "list", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "error reading config file")
}

func TestInvalidColorModeAborts(t *testing.T) {
	isolate(t)
	code, _, errOut := runCmd(t, "list", "--color", "sepia", "--log-level", "off")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "colorMode")
}

func TestApplyColorMode(t *testing.T) {
	t.Setenv("TCELL_TRUECOLOR", "")
	t.Setenv("COLORTERM", "")

	require.NoError(t, applyColorMode("auto"))
	assert.Empty(t, os.Getenv("TCELL_TRUECOLOR"))
	assert.Empty(t, os.Getenv("COLORTERM"))

	require.NoError(t, applyColorMode("256"))
	assert.Equal(t, "disable", os.Getenv("TCELL_TRUECOLOR"))

	require.NoError(t, applyColorMode("truecolor"))
	assert.Equal(t, "truecolor", os.Getenv("COLORTERM"))
}

func TestApplyColorMode_ReportsSetenvFailure(t *testing.T) {
	orig := setenv
	t.Cleanup(func() { setenv = orig })
	setenv = func(string, string) error { return errors.New("environment is read-only") }

	err := applyColorMode("256")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TCELL_TRUECOLOR")
	assert.Contains(t, err.Error(), "read-only")

	assert.NoError(t, applyColorMode("auto"), "auto never touches the environment")
}

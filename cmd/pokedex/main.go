// Command pokedex browses PokéAPI in the terminal.
//
// Usage:
//
//	pokedex [browse|show <name|id>|list] [flags]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/pokedex/app"
	"github.com/lixenwraith/pokedex/audio"
	"github.com/lixenwraith/pokedex/cache"
	"github.com/lixenwraith/pokedex/config"
	"github.com/lixenwraith/pokedex/pokeapi"
	"github.com/lixenwraith/pokedex/router"
	"github.com/lixenwraith/pokedex/sched"
	"github.com/lixenwraith/pokedex/theme"
	"github.com/lixenwraith/pokedex/view"
)

// historyDepth bounds how far Esc can walk back
const historyDepth = 64

// cardsPerRow is the width of the printed listing grid
const cardsPerRow = 3

const usage = `Usage: pokedex [command] [flags]

Commands:
  browse            interactive browser (default)
  show <name|id>    print one Pokémon card
  list              print one listing page

Flags:
`

func main() {
	defer func() {
		if r := recover(); r != nil {
			app.HandleCrash(r)
		}
	}()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("pokedex", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.String("config", "", "Config file path (TOML)")
	fs.Int("page", 0, "Listing page to open, 0-based")
	fs.String("api-url", pokeapi.DefaultBaseURL, "PokéAPI base URL")
	fs.Bool("no-cache", false, "Disable the response cache")
	fs.String("log-level", "info", "Log level: trace, debug, info, warn, error, off")
	fs.String("color", config.ColorAuto, "Color mode: auto, truecolor, 256")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	return fs
}

// run parses args, dispatches the command and returns the exit code
func run(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cmd, rest := "browse", fs.Args()
	if len(rest) > 0 {
		cmd, rest = strings.ToLower(rest[0]), rest[1:]
	}

	configPath, _ := fs.GetString("config")
	cfg, err := config.Load(viper.New(), configPath, fs)
	if err != nil {
		fmt.Fprintf(stderr, "pokedex: %v\n", err)
		return 2
	}

	logger, closer, err := setupLogging(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(stderr, "pokedex: %v\n", err)
		return 1
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	meters, shutdownMetrics, err := setupMetrics(cfg.Metrics.File, cfg.Metrics.Interval)
	if err != nil {
		fmt.Fprintf(stderr, "pokedex: %v\n", err)
		return 1
	}
	defer func() {
		if err := shutdownMetrics(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("Metrics shutdown failed")
		}
	}()

	client, cleanup := newClient(ctx, cfg, meters, logger)
	defer cleanup()

	page, _ := fs.GetInt("page")
	if page < 0 {
		page = 0
	}

	switch cmd {
	case "browse":
		start := router.HomeRoute.Path
		if fs.Changed("page") {
			start = router.ListingPath(page)
		}
		err = browse(ctx, cfg, client, start, logger)
	case "show":
		if len(rest) != 1 {
			fmt.Fprintln(stderr, "pokedex: show takes exactly one name or id")
			return 2
		}
		err = show(ctx, stdout, client, rest[0])
	case "list":
		err = list(ctx, stdout, client, cfg.UI.PageSize, page)
	default:
		fmt.Fprintf(stderr, "pokedex: unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}

	if err != nil {
		logger.Error().Err(err).Str("command", cmd).Msg("Command failed")
		fmt.Fprintf(stderr, "pokedex: %v\n", err)
		return 1
	}
	return 0
}

// newClient builds the API client, with the response cache when enabled
// A cache that cannot be opened is logged and skipped
func newClient(ctx context.Context, cfg *config.Config, meters metric.MeterProvider, logger zerolog.Logger) (*pokeapi.Client, func()) {
	opts := []pokeapi.Option{
		pokeapi.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		pokeapi.WithConcurrency(cfg.API.Concurrency),
		pokeapi.WithMeterProvider(meters),
		pokeapi.WithLogger(logger.With().Str("component", "pokeapi").Logger()),
	}
	cleanup := func() {}

	if cfg.Cache.Enabled {
		store, err := cache.Open(cfg.Cache.Path, cfg.Cache.TTL, logger.With().Str("component", "cache").Logger())
		if err != nil {
			logger.Warn().Err(err).Msg("Response cache unavailable, continuing without it")
		} else {
			if n, err := store.Prune(ctx); err != nil {
				logger.Warn().Err(err).Msg("Cache prune failed")
			} else if n > 0 {
				logger.Debug().Int64("removed", n).Msg("Pruned expired cache entries")
			}
			opts = append(opts, pokeapi.WithCache(store))
			cleanup = func() {
				if err := store.Close(); err != nil {
					logger.Warn().Err(err).Msg("Cache close failed")
				}
			}
		}
	}

	return pokeapi.New(cfg.API.BaseURL, opts...), cleanup
}

// browse runs the interactive terminal UI until the user quits
func browse(ctx context.Context, cfg *config.Config, provider view.Provider, start string, logger zerolog.Logger) error {
	if err := applyColorMode(cfg.UI.ColorMode); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	app.SetRestore(screen.Fini)
	defer func() {
		app.SetRestore(nil)
		screen.Fini()
	}()

	player := audio.Open(cfg.Audio.Enabled, cfg.Audio.Volume, logger.With().Str("component", "audio").Logger())
	defer player.Close()

	loop := sched.NewLoop(app.Go)
	a := app.New(app.Config{
		Screen: screen,
		Router: router.New(start, historyDepth),
		Deps: view.Deps{
			Provider: provider,
			Palette:  theme.Default{},
			Parallax: cfg.Parallax,
			PageSize: cfg.UI.PageSize,
			Spawn:    app.Go,
			Audio:    player,
			Log:      logger.With().Str("component", "view").Logger(),
		},
		FrameInterval: cfg.Parallax.FrameInterval,
		Log:           logger,
	}, loop)

	logger.Info().Str("start", start).Str("color", cfg.UI.ColorMode).Msg("Starting browser")
	return a.Run(ctx)
}

// setenv is swapped in tests
var setenv = os.Setenv

// applyColorMode steers tcell's color detection through its environment variables
func applyColorMode(mode string) error {
	var key, value string
	switch mode {
	case config.Color256:
		key, value = "TCELL_TRUECOLOR", "disable"
	case config.ColorTruecolor:
		key, value = "COLORTERM", "truecolor"
	default:
		return nil
	}
	if err := setenv(key, value); err != nil {
		return fmt.Errorf("set %s for color mode %s: %w", key, mode, err)
	}
	return nil
}

// show prints one card
func show(ctx context.Context, w io.Writer, provider view.Provider, key string) error {
	p, err := provider.FetchPokemon(ctx, key)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, view.RenderCard(p, theme.Default{}))
	return err
}

// list prints one listing page
func list(ctx context.Context, w io.Writer, provider view.Provider, pageSize, page int) error {
	route := router.Parse(router.ListingPath(page))
	p, err := provider.FetchPage(ctx, pageSize, route.Offset(pageSize))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, view.RenderPage(p, page, cardsPerRow, theme.Default{}))
	return err
}

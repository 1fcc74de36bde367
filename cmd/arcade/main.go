package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/gridarcade/arcade"
	"github.com/plus3/gridarcade/clock"
	"github.com/plus3/gridarcade/debugui"
	debugui_ebiten "github.com/plus3/gridarcade/debugui/ebiten"
	"github.com/plus3/gridarcade/games/heartbeat"
	"github.com/plus3/gridarcade/games/snake"
	"github.com/plus3/gridarcade/games/tetris"
	"github.com/plus3/gridarcade/input/ebiteninput"
)

func main() {
	defaults := arcade.DefaultConfig()
	game := flag.String("game", heartbeat.Name, "The game to start with: "+strings.Join(newCatalog().Names(), ", ")+".")
	cols := flag.Int("cols", defaults.Columns, "Playfield width in cells.")
	rows := flag.Int("rows", defaults.Rows, "Playfield height in cells.")
	cell := flag.Int("cell", defaults.CellSize, "Cell size in pixels.")
	speed := flag.Float64("speed", defaults.Speed, "Animation speed multiplier.")
	seed := flag.Uint64("seed", 0, "Random seed; 0 picks one.")
	debug := flag.Bool("debug", false, "Show the ImGui debug overlay.")
	level := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	flag.Parse()

	cfg := arcade.Config{
		Columns:  *cols,
		Rows:     *rows,
		CellSize: *cell,
		Speed:    *speed,
		Seed:     *seed,
		Debug:    *debug,
	}
	if err := run(cfg, *game, *level); err != nil {
		log.Fatalf("arcade: %v", err)
	}
}

func run(cfg arcade.Config, game, level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	cfg.LogLevel = lvl
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	grid := arcade.NewGrid(cfg.Columns, cfg.Rows)
	runner, err := arcade.NewRunner(cfg, newCatalog(), clock.New(), grid, logger)
	if err != nil {
		return err
	}

	width, height := cfg.ScreenSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Grid Arcade")

	g := &Game{
		runner: runner,
		grid:   grid,
		poller: ebiteninput.NewPoller(ebiteninput.Ebiten()),
	}
	g.shell = newShell(runner, logger)

	if cfg.Debug {
		g.imgui = debugui_ebiten.NewImguiBackend("Grid Arcade", width+640, height)
		g.overlay = debugui.NewOverlay(runner, 120)
		g.frameTimer = debugui.NewFrameTimer()
	}

	if err := runner.Start(game); err != nil {
		return err
	}
	log.Printf("Starting %s on a %dx%d field...", game, cfg.Columns, cfg.Rows)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	runner.Stop()
	return nil
}

func newCatalog() *arcade.Catalog {
	return arcade.NewCatalog().
		Register(heartbeat.Name, heartbeat.Factory).
		Register(tetris.Name, tetris.Factory).
		Register(snake.Name, snake.Factory)
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", arcade.ErrInvalidConfig, s)
	}
	return lvl, nil
}

package main

import (
	"log/slog"
	"time"

	"github.com/plus3/gridarcade/arcade"
	"github.com/plus3/gridarcade/clock"
	"github.com/plus3/gridarcade/games/heartbeat"
	"github.com/plus3/gridarcade/games/snake"
	"github.com/plus3/gridarcade/games/tetris"
	"github.com/plus3/gridarcade/input"
)

// shell owns the bindings that outlive a single game: picking a game from
// the menu and returning to it.
type shell struct {
	runner *arcade.Runner
	clock  *clock.Clock
	input  *input.Dispatcher
	logger *slog.Logger
	quit   bool
}

func newShell(runner *arcade.Runner, logger *slog.Logger) *shell {
	clk := clock.New()
	sh := &shell{
		runner: runner,
		clock:  clk,
		input:  input.NewDispatcher(clk, input.WithLogger(logger)),
		logger: logger,
	}

	sh.input.
		Bind(input.Key("Digit1", nil), "tetris").
		Bind(input.Key("Digit2", nil), "snake").
		Bind(input.Key("m", nil), "menu").
		Bind(input.Key("q", input.Hold{Threshold: holdToQuit}), "quit").
		Link("tetris", func() { sh.start(tetris.Name) }).
		Link("snake", func() { sh.start(snake.Name) }).
		Link("menu", func() { sh.start(heartbeat.Name) }).
		Link("quit", func() { sh.quit = true })
	return sh
}

// Advance moves the shell's own clock so hold bindings can fire.
func (sh *shell) Advance(dt time.Duration) {
	sh.clock.Advance(dt)
}

// start switches to name. Selecting the game already running is ignored
// unless that round is over, in which case it restarts.
func (sh *shell) start(name string) {
	if g := sh.runner.Game(); g != nil && g.Name() == name {
		if o, ok := g.(interface{ Over() bool }); !ok || !o.Over() {
			return
		}
	}
	if err := sh.runner.Start(name); err != nil {
		sh.logger.Error("start game", "game", name, "err", err)
	}
}

// Handle feeds ev to the shell first, then to the running game.
func (sh *shell) Handle(ev input.Event) {
	sh.input.Handle(ev)
	if s := sh.runner.Session(); s != nil {
		s.Input().Handle(ev)
	}
}

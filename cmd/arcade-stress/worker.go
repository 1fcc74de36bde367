package main

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/plus3/gridarcade/arcade"
	"github.com/plus3/gridarcade/clock"
	"github.com/plus3/gridarcade/games/heartbeat"
	"github.com/plus3/gridarcade/games/snake"
	"github.com/plus3/gridarcade/games/tetris"
	"github.com/plus3/gridarcade/geom"
	"github.com/plus3/gridarcade/input"
)

var rotation = []string{tetris.Name, snake.Name, heartbeat.Name}

var keys = []input.KeyEvent{
	{Key: "ArrowLeft", Code: "ArrowLeft"},
	{Key: "ArrowRight", Code: "ArrowRight"},
	{Key: "ArrowUp", Code: "ArrowUp"},
	{Key: "ArrowDown", Code: "ArrowDown"},
	{Key: "a", Code: "KeyA"},
	{Key: "d", Code: "KeyD"},
	{Key: "s", Code: "KeyS"},
	{Key: "w", Code: "KeyW"},
}

// worker drives one headless arcade with random input, rotating through the
// games and restarting any that end.
type worker struct {
	runner *arcade.Runner
	clock  *clock.Clock
	rng    *rand.Rand

	step   time.Duration
	rotate time.Duration
	events int

	current  int
	started  time.Duration
	held     map[string]bool
	pointer  bool
	updates  int64
	fed      int64
	switches int64
	samples  []time.Duration
}

func newWorker(cfg arcade.Config, seed uint64, step, rotate time.Duration, events int) (*worker, error) {
	clk := clock.New()
	cfg.Seed = seed
	runner, err := arcade.NewRunner(cfg, arcade.NewCatalog().
		Register(tetris.Name, tetris.Factory).
		Register(snake.Name, snake.Factory).
		Register(heartbeat.Name, heartbeat.Factory),
		clk, arcade.NewGrid(cfg.Columns, cfg.Rows), nil)
	if err != nil {
		return nil, err
	}
	w := &worker{
		runner: runner,
		clock:  clk,
		rng:    rand.New(rand.NewPCG(seed, seed>>1)),
		step:   step,
		rotate: rotate,
		events: events,
		held:   map[string]bool{},
	}
	return w, w.start()
}

func (w *worker) start() error {
	w.started = w.clock.Now()
	clear(w.held)
	w.pointer = false
	return w.runner.Start(rotation[w.current])
}

func (w *worker) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.runner.Stop()
			return nil
		default:
			if err := w.tick(); err != nil {
				return err
			}
		}
	}
}

// tick feeds one batch of input and advances the arcade by one step.
func (w *worker) tick() error {
	in := w.runner.Session().Input()
	for range w.events {
		in.Handle(w.event())
		w.fed++
	}

	updateStart := time.Now()
	w.runner.Update(w.step)
	w.samples = append(w.samples, time.Since(updateStart))
	w.updates++

	over := false
	if g, ok := w.runner.Game().(interface{ Over() bool }); ok {
		over = g.Over()
	}
	if over || w.clock.Now()-w.started >= w.rotate {
		w.current = (w.current + 1) % len(rotation)
		w.switches++
		return w.start()
	}
	return nil
}

// event returns a random key toggle, or a touch gesture step.
func (w *worker) event() input.Event {
	if w.rng.IntN(4) == 0 {
		pos := geom.V(w.rng.IntN(240), w.rng.IntN(480))
		switch {
		case !w.pointer:
			w.pointer = true
			return input.PointerEvent{Action: input.PointerDown, Device: input.Touch, Pos: pos}
		case w.rng.IntN(3) == 0:
			w.pointer = false
			return input.PointerEvent{Action: input.PointerUp, Device: input.Touch, Pos: pos}
		default:
			return input.PointerEvent{Action: input.PointerMove, Device: input.Touch, Pos: pos}
		}
	}

	ev := keys[w.rng.IntN(len(keys))]
	if w.held[ev.Code] {
		ev.Action = input.KeyUp
	}
	w.held[ev.Code] = !w.held[ev.Code]
	return ev
}

package arcade

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/plus3/gridarcade/clock"
)

// Game is one playable program. Begin wires the game into a fresh session;
// End is called before the session is torn down.
type Game interface {
	Name() string
	Begin(s *Session, c Canvas) error
	End()
}

// Updater is implemented by games that animate every frame, independent of
// their timers.
type Updater interface {
	Update(dt time.Duration)
}

// Factory builds a game for a configuration.
type Factory func(cfg Config) Game

// Catalog maps game names to factories.
type Catalog struct {
	factories map[string]Factory
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{factories: make(map[string]Factory)}
}

// Register adds a factory. Registering a name twice panics.
func (c *Catalog) Register(name string, f Factory) *Catalog {
	if _, ok := c.factories[name]; ok {
		panic(fmt.Sprintf("arcade: game %q registered twice", name))
	}
	c.factories[name] = f
	return c
}

// New builds the game called name.
func (c *Catalog) New(name string, cfg Config) (Game, error) {
	f, ok := c.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, name)
	}
	return f(cfg), nil
}

// Names returns the registered game names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Runner switches between games, giving each its own Session on a shared
// clock. Only one game runs at a time.
type Runner struct {
	cfg     Config
	catalog *Catalog
	clock   *clock.Clock
	canvas  Canvas
	logger  *slog.Logger

	game    Game
	session *Session
}

// NewRunner validates cfg and prepares a runner painting onto canvas.
func NewRunner(cfg Config, catalog *Catalog, clk *clock.Clock, canvas Canvas, logger *slog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:     cfg,
		catalog: catalog,
		clock:   clk,
		canvas:  canvas,
		logger:  logger,
	}, nil
}

// Start ends the current game, if any, and begins the game called name.
func (r *Runner) Start(name string) error {
	game, err := r.catalog.New(name, r.cfg)
	if err != nil {
		return err
	}
	r.Stop()

	session := NewSession(r.clock, r.cfg.Bounds(), r.logger.With("game", name))
	if err := game.Begin(session, r.canvas); err != nil {
		session.End()
		return fmt.Errorf("begin %s: %w", name, err)
	}
	r.game, r.session = game, session
	session.Logger().Info("session started")
	return nil
}

// Stop ends the running game and its session.
func (r *Runner) Stop() {
	if r.game == nil {
		return
	}
	r.game.End()
	r.session.End()
	r.game, r.session = nil, nil
	if g, ok := r.canvas.(interface{ Clear() }); ok {
		g.Clear()
	}
}

// Update advances the shared clock by dt and animates the running game.
func (r *Runner) Update(dt time.Duration) {
	r.clock.Advance(dt)
	if u, ok := r.game.(Updater); ok {
		u.Update(dt)
	}
}

// Game returns the running game, nil when stopped.
func (r *Runner) Game() Game {
	return r.game
}

// Session returns the running session, nil when stopped.
func (r *Runner) Session() *Session {
	return r.session
}

// Config returns the validated configuration games are built with.
func (r *Runner) Config() Config {
	return r.cfg
}

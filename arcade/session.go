package arcade

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/plus3/gridarcade/clock"
	"github.com/plus3/gridarcade/input"
	"github.com/plus3/gridarcade/physics"
)

// Session is the lifetime of one running game. Everything a game schedules,
// binds or creates goes through its Session so that End can tear it all down
// before the next game starts.
type Session struct {
	id      string
	clock   *clock.Clock
	timers  *clock.Group
	input   *input.Dispatcher
	physics *physics.Registry
	logger  *slog.Logger
	ended   bool
}

// NewSession creates a session whose timers run on clk. A nil logger uses
// slog.Default.
func NewSession(clk *clock.Clock, bounds physics.Bounds, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	logger = logger.With("session", id)

	return &Session{
		id:      id,
		clock:   clk,
		timers:  clk.NewGroup(),
		input:   input.NewDispatcher(clk, input.WithLogger(logger)),
		physics: physics.NewRegistry(bounds),
		logger:  logger,
	}
}

// ID is the unique session id used in log lines.
func (s *Session) ID() string {
	return s.id
}

// Clock returns the shared clock the session schedules on.
func (s *Session) Clock() *clock.Clock {
	return s.clock
}

// Timers is the cancellation scope for game timers such as gravity ticks.
func (s *Session) Timers() *clock.Group {
	return s.timers
}

// Input returns the session dispatcher. End clears it.
func (s *Session) Input() *input.Dispatcher {
	return s.input
}

// Physics returns the session collider registry. End clears it.
func (s *Session) Physics() *physics.Registry {
	return s.physics
}

// Logger returns a logger tagged with the session id.
func (s *Session) Logger() *slog.Logger {
	return s.logger
}

// Ended reports whether End has been called.
func (s *Session) Ended() bool {
	return s.ended
}

// End cancels every game and input timer, drops all bindings and colliders.
// Calling End again does nothing.
func (s *Session) End() {
	if s.ended {
		return
	}
	s.ended = true

	timers := s.timers.Len()
	s.timers.Cancel()
	s.input.Clear()
	colliders := s.physics.Len()
	s.physics.Clear()
	s.logger.Info("session ended", "timers", timers, "colliders", colliders)
}

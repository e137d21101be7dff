package cubie

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures Session behavior.
type Option func(*config)

type config struct {
	moveHistory     bool
	invariantChecks bool
	start           CubeState
	logger          *logrus.Logger
}

func defaultConfig() *config {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &config{
		moveHistory:     true,
		invariantChecks: false,
		start:           Solved(),
		logger:          logger,
	}
}

// WithMoveHistory enables or disables move history tracking.
// When enabled (default), all moves are stored and accessible via Moves()
// and can be undone with Undo().
func WithMoveHistory(enabled bool) Option {
	return func(c *config) {
		c.moveHistory = enabled
	}
}

// WithInvariantChecks verifies the state after every move and panics if a
// move ever produces an unreachable state.
func WithInvariantChecks(enabled bool) Option {
	return func(c *config) {
		c.invariantChecks = enabled
	}
}

// WithStartState starts the session from s instead of the solved state.
// Reset still returns to solved.
func WithStartState(s CubeState) Option {
	return func(c *config) {
		c.start = s
	}
}

// WithLogger sets the logger used for debug output. The default logger
// discards everything.
func WithLogger(l *logrus.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

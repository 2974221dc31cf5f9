// Package session owns the live rooms: who sits on which color, reset
// voting, chat relay, the lobby registry and the handoff of finished
// games to the history archive. All game mutation for a room happens
// under that room's lock, so the engine never sees concurrent access
// and every member observes the same order of broadcasts.
package session

import (
	"time"

	"github.com/hailam/twofold/internal/history"
	"github.com/hailam/twofold/internal/logging"
)

var log = logging.GetLog()

// Sender delivers one event to a connected client. Implementations must
// not block; the transport backs this with a buffered per-connection
// queue and drops the connection on overflow.
type Sender interface {
	Send(event string, data any)
}

// Recorder archives a finished game. Calls must not block and must not
// return errors into the move path; the history writer queues and
// retries behind this interface.
type Recorder interface {
	Record(history.CompletedGame)
}

// Config tunes room lifecycle.
type Config struct {
	// ReconnectGrace is how long a disconnected player's seat is held
	// before the sweeper frees it.
	ReconnectGrace time.Duration
	// IdleTTL expires rooms with no activity.
	IdleTTL time.Duration
	// SweepInterval is how often the sweeper runs.
	SweepInterval time.Duration
	// MaxChatLen clamps chat messages, in runes.
	MaxChatLen int
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		ReconnectGrace: 30 * time.Second,
		IdleTTL:        30 * time.Minute,
		SweepInterval:  5 * time.Second,
		MaxChatLen:     500,
	}
}

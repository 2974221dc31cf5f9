package session

import (
	"time"

	"github.com/hailam/twofold/internal/board"
)

// Member is one seat in a room. A seat outlives its websocket: on
// disconnect it stays reserved until the reconnect grace passes, and a
// rejoin under the same username rebinds it to the new session.
type Member struct {
	SessionID string
	Username  string
	Color     board.Color

	sender    Sender
	connected bool
	gone      time.Time // disconnect instant, meaningful while !connected
}

package history

import (
	"sync/atomic"
	"time"

	"github.com/seekerror/stdlib/pkg/util/mathx"

	"github.com/hailam/twofold/internal/logging"
)

var log = logging.GetLog()

const (
	queueSize   = 64
	maxAttempts = 3
	baseBackoff = 50 * time.Millisecond
	maxBackoff  = time.Second
)

// Writer persists finished games off the move path. Records are queued
// and written by a single goroutine with bounded retries; when the queue
// is full or the store keeps failing, the record is dropped and logged.
type Writer struct {
	store  *Store
	queue  chan CompletedGame
	quit   chan struct{}
	done   chan struct{}
	closed atomic.Bool
}

// NewWriter starts the background writer. The caller keeps ownership of
// the store.
func NewWriter(store *Store) *Writer {
	w := &Writer{
		store: store,
		queue: make(chan CompletedGame, queueSize),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

// Record queues one game for persistence. It never blocks; a full queue
// or a closed writer drops the record.
func (w *Writer) Record(game CompletedGame) {
	if w.closed.Load() {
		log.Warningf("history writer closed, dropping record for room %s", game.Room)
		return
	}
	select {
	case w.queue <- game:
	default:
		log.Warningf("history queue full, dropping record for room %s", game.Room)
	}
}

// Close drains queued records and stops the writer. The store stays
// open.
func (w *Writer) Close() {
	if w.closed.CompareAndSwap(false, true) {
		close(w.quit)
		<-w.done
	}
}

func (w *Writer) run() {
	defer close(w.done)
	for {
		select {
		case game := <-w.queue:
			w.save(game)
		case <-w.quit:
			for {
				select {
				case game := <-w.queue:
					w.save(game)
				default:
					return
				}
			}
		}
	}
}

func (w *Writer) save(game CompletedGame) {
	backoff := baseBackoff
	for attempt := 1; ; attempt++ {
		err := w.store.SaveCompleted(game)
		if err == nil {
			log.Infof("archived game for room %s (winner %s, %d moves)", game.Room, game.Winner, len(game.Moves))
			return
		}
		if attempt == maxAttempts {
			log.Errorf("dropping record for room %s after %d attempts: %v", game.Room, attempt, err)
			return
		}
		log.Warningf("archive attempt %d for room %s failed: %v", attempt, game.Room, err)
		time.Sleep(backoff)
		backoff = mathx.Min(backoff*2, maxBackoff)
	}
}

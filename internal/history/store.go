package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/twofold/internal/twofold"
)

const keyPrefix = "games/"

// CompletedGame is one archived game. Board carries the legacy
// client-reported payload from finish_game; Final holds the
// authoritative snapshot when the server ended the game itself.
type CompletedGame struct {
	Room    string            `json:"room"`
	Winner  string            `json:"winner"`
	Moves   []string          `json:"moves"`
	Board   json.RawMessage   `json:"board,omitempty"`
	Final   *twofold.Snapshot `json:"final,omitempty"`
	SavedAt time.Time         `json:"saved_at"`
}

// Store wraps BadgerDB for the finished-game archive.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the archive in the given directory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// OpenDefault opens the archive in the platform data directory.
func OpenDefault() (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveCompleted archives one finished game. SavedAt is stamped if unset
// and becomes part of the key, so repeated saves for a room append.
func (s *Store) SaveCompleted(g CompletedGame) error {
	if g.SavedAt.IsZero() {
		g.SavedAt = time.Now()
	}

	data, err := json.Marshal(g)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s%s/%d", keyPrefix, g.Room, g.SavedAt.UnixNano())
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Completed returns all archived games in key order (per room, oldest
// first).
func (s *Store) Completed() ([]CompletedGame, error) {
	var games []CompletedGame

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var g CompletedGame
				if err := json.Unmarshal(val, &g); err != nil {
					return err
				}
				games = append(games, g)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return games, err
}

// HasCompleted reports whether the room already has an archived game.
func (s *Store) HasCompleted(room string) (bool, error) {
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix + room + "/")
		it := txn.NewIterator(opts)
		defer it.Close()

		it.Rewind()
		found = it.Valid()
		return nil
	})

	return found, err
}

// Wipe drops every archived game.
func (s *Store) Wipe() error {
	return s.db.DropAll()
}

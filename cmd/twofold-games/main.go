// Command twofold-games lists archived games from the history store.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/hailam/twofold/internal/history"
)

func main() {
	var (
		dir    = flag.String("dir", "", "history database directory (default: per-user data dir)")
		room   = flag.String("room", "", "only games from this room")
		asJSON = flag.Bool("json", false, "print raw JSON records")
	)
	flag.Parse()

	var (
		store *history.Store
		err   error
	)
	if *dir != "" {
		store, err = history.Open(*dir)
	} else {
		store, err = history.OpenDefault()
	}
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	games, err := store.Completed()
	if err != nil {
		log.Fatalf("read games: %v", err)
	}

	shown := 0
	for _, g := range games {
		if *room != "" && g.Room != *room {
			continue
		}
		shown++
		if *asJSON {
			raw, err := json.Marshal(g)
			if err != nil {
				log.Fatalf("encode: %v", err)
			}
			fmt.Println(string(raw))
			continue
		}
		winner := g.Winner
		if winner == "" {
			winner = "unknown"
		}
		fmt.Printf("%s  room=%-12s  winner=%-6s  moves=%d\n",
			g.SavedAt.Format("2006-01-02 15:04:05"), g.Room, winner, len(g.Moves))
	}
	if !*asJSON {
		fmt.Printf("%d game(s)\n", shown)
	}
}

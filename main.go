// Twofold Chess server: the authoritative rules engine for the
// two-board variant plus realtime rooms over websocket.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hailam/twofold/internal/history"
	"github.com/hailam/twofold/internal/logging"
	"github.com/hailam/twofold/internal/server"
	"github.com/hailam/twofold/internal/session"
)

const version = "1.0.0"

var log = logging.GetLog()

func main() {
	if err := run(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr     = flag.String("addr", ":8080", "listen address")
		dataDir  = flag.String("data", "", "history database directory (default: per-user data dir)")
		debug    = flag.Bool("debug", false, "enable the debug endpoints")
		logLevel = flag.String("log-level", "info", "log level (debug, info, warning, error)")
		grace    = flag.Duration("reconnect-grace", 30*time.Second, "how long a disconnected player's seat is held")
		idleTTL  = flag.Duration("idle-ttl", 30*time.Minute, "idle room expiry")
		noStore  = flag.Bool("no-history", false, "disable the finished-game archive")
	)
	flag.Parse()

	if err := logging.SetLevel(*logLevel); err != nil {
		return err
	}

	var (
		store *history.Store
		rec   session.Recorder
	)
	if !*noStore {
		var err error
		if *dataDir != "" {
			store, err = history.Open(*dataDir)
		} else {
			store, err = history.OpenDefault()
		}
		if err != nil {
			return err
		}
		defer store.Close()
		w := history.NewWriter(store)
		defer w.Close()
		rec = w
	}

	cfg := session.DefaultConfig()
	cfg.ReconnectGrace = *grace
	cfg.IdleTTL = *idleTTL
	sessions := session.NewManager(cfg, rec)
	sessions.Start()
	defer sessions.Stop()

	srv := &http.Server{
		Addr:    *addr,
		Handler: server.New(sessions, store, *debug, version).Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warningf("shutdown: %v", err)
		}
	}()

	log.Infof("twofold %s listening on %s (debug=%v)", version, *addr, *debug)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Infof("server stopped")
	return nil
}

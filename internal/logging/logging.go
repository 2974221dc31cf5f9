// Package logging provides the process wide logger.
//
// Packages that log hold a *logging.Logger obtained via GetLog. The
// logger is created on first use with the INFO level; SetLevel adjusts
// it at startup from the command line.
package logging

import (
	"os"
	"sync"

	"github.com/op/go-logging"
)

const module = "twofold"

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{shortpkg:-10.10s} %{level:-7.7s} %{message}`,
)

var (
	mu      sync.Mutex
	log     *logging.Logger
	leveled logging.LeveledBackend
)

// GetLog returns the shared logger, creating it on first use.
func GetLog() *logging.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		initLogger(logging.INFO)
	}
	return log
}

// SetLevel sets the log level by name ("debug", "info", "warning",
// "error", "critical"). Names are case insensitive.
func SetLevel(name string) error {
	level, err := logging.LogLevel(name)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		initLogger(level)
		return nil
	}
	leveled.SetLevel(level, "")
	return nil
}

func initLogger(level logging.Level) {
	backend := logging.NewBackendFormatter(logging.NewLogBackend(os.Stdout, "", 0), format)
	leveled = logging.AddModuleLevel(backend)
	leveled.SetLevel(level, "")

	log = logging.MustGetLogger(module)
	log.SetBackend(leveled)
}

// Package logging writes diagnostics to a rotating file. The TUI owns the
// terminal, so nothing may ever log to stdout or stderr while it runs.
package logging

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *log.Logger
	once   sync.Once
)

// Get returns the singleton file logger, creating it on first use.
func Get() *log.Logger {
	once.Do(func() {
		path := "wikitea.log"
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".config", "wikitea", "wikitea.log")
		}

		logger = log.New(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    5, // megabytes
			MaxBackups: 2,
			MaxAge:     14, // days
		}, "", log.LstdFlags)
	})
	return logger
}

// Errorf logs a formatted error line.
func Errorf(format string, args ...any) {
	Get().Printf("ERROR "+format, args...)
}

// Infof logs a formatted informational line.
func Infof(format string, args ...any) {
	Get().Printf("INFO "+format, args...)
}

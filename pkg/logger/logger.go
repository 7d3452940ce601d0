// Package logger builds the process-wide zerolog logger. Services receive
// it by injection; there is no package-level logger state.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger at the given level. Unknown levels fall back to info.
// In development a console writer is used instead of raw JSON.
func New(level, environment string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(lvl)
	if environment == "development" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return log
}

package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger. It is usable before Init is called.
var Log = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init configures Log. console switches to the human readable writer used in development.
func Init(level string, console bool) {
	var out io.Writer = os.Stdout
	if console {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	Log = zerolog.New(out).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(lvl)

	Log.Debug().Str("level", lvl.String()).Msg("logger initialised")
}

// Discard silences logging, used by tests.
func Discard() {
	Log = zerolog.Nop()
}
